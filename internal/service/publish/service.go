// Package publish mirrors the vocabulary cache into the site database.
package publish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/internal/service/stats"
)

type vocabularyRepo interface {
	UpsertTopics(ctx context.Context, topics []domain.TopicCount) (int, error)
	UpsertWords(ctx context.Context, entries []domain.KeyedEntry) (int, error)
	ReplaceWordTopics(ctx context.Context, entries []domain.KeyedEntry) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultChunkSize is used when a non-positive chunk size is configured.
const DefaultChunkSize = 500

// Result holds publish statistics.
type Result struct {
	Words  int
	Topics int
	Links  int
	Chunks int
}

// Service publishes a cache in one transaction.
type Service struct {
	log       *slog.Logger
	repo      vocabularyRepo
	tx        txManager
	chunkSize int
}

// NewService creates a publish Service.
func NewService(logger *slog.Logger, repo vocabularyRepo, tx txManager, chunkSize int) *Service {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Service{
		log:       logger.With("service", "publish"),
		repo:      repo,
		tx:        tx,
		chunkSize: chunkSize,
	}
}

// Publish upserts every topic and word of c and rewrites the topic links
// of each word. Either the whole cache is published or nothing is.
func (s *Service) Publish(ctx context.Context, c *domain.Cache) (Result, error) {
	st := stats.Compute(c)
	names := c.TopicNames()
	topics := make([]domain.TopicCount, len(names))
	for i, name := range names {
		topics[i] = domain.TopicCount{Name: name, Words: st.Topics[name]}
	}
	entries := c.Entries()

	var result Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		result = Result{}

		n, err := s.repo.UpsertTopics(ctx, topics)
		if err != nil {
			return fmt.Errorf("upsert topics: %w", err)
		}
		result.Topics = n

		for start := 0; start < len(entries); start += s.chunkSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunk := entries[start:min(start+s.chunkSize, len(entries))]

			n, err := s.repo.UpsertWords(ctx, chunk)
			if err != nil {
				return fmt.Errorf("upsert words: %w", err)
			}
			result.Words += n

			n, err = s.repo.ReplaceWordTopics(ctx, chunk)
			if err != nil {
				return fmt.Errorf("link topics: %w", err)
			}
			result.Links += n
			result.Chunks++

			s.log.DebugContext(ctx, "chunk published",
				slog.Int("chunk", result.Chunks),
				slog.Int("words", len(chunk)),
			)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("publish: %w", err)
	}

	s.log.InfoContext(ctx, "cache published",
		slog.Int("words", result.Words),
		slog.Int("topics", result.Topics),
		slog.Int("links", result.Links),
		slog.Int("chunks", result.Chunks),
	)
	return result, nil
}
