// Package scanner walks the topic directories of the user corpus and feeds
// every document into the vocabulary cache.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/internal/service/vocabulary"
	"github.com/heartmarshall/deutschkurs/pkg/ctxutil"
)

type vocabularyService interface {
	AnalyzeText(ctx context.Context, c *domain.Cache, topic, text string) (vocabulary.Analysis, error)
	Save(ctx context.Context, c *domain.Cache) error
}

// Result holds scan statistics.
type Result struct {
	RunID  uuid.UUID
	Topics int
	Files  int
	vocabulary.Analysis
}

// Scanner processes a corpus laid out as <root>/<topic>/<file>.
type Scanner struct {
	log   *slog.Logger
	vocab vocabularyService
	newID func() uuid.UUID
}

// New creates a Scanner.
func New(logger *slog.Logger, vocab vocabularyService) *Scanner {
	return &Scanner{
		log:   logger.With("service", "scanner"),
		vocab: vocab,
		newID: uuid.New,
	}
}

// Scan analyzes every file directly inside each topic directory of root
// and merges its words into c.
//
// Topics and files are visited in lexicographic order. Regular files at
// the top level and directories nested inside a topic are skipped. The
// cache is saved after each file, so an interrupted scan can simply be run
// again. A file that cannot be read aborts the scan.
func (s *Scanner) Scan(ctx context.Context, c *domain.Cache, root string) (Result, error) {
	result := Result{RunID: s.newID()}
	ctx = ctxutil.WithRunID(ctx, result.RunID)

	entries, err := os.ReadDir(root)
	if err != nil {
		return result, fmt.Errorf("scanner: list %s: %w", root, err)
	}
	s.log.InfoContext(ctx, "scan started", slog.String("root", root), slog.Int("entries", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		topic := entry.Name()
		topicPath := filepath.Join(root, topic)
		if !isDir(topicPath) {
			s.log.DebugContext(ctx, "skipping non-directory", slog.String("path", topicPath))
			continue
		}
		if err := s.scanTopic(ctxutil.WithTopic(ctx, topic), c, topic, topicPath, &result); err != nil {
			return result, err
		}
		result.Topics++
	}

	s.log.InfoContext(ctx, "scan complete",
		slog.Int("topics", result.Topics),
		slog.Int("files", result.Files),
		slog.Int("tokens", result.Tokens),
		slog.Int("created", result.Created),
		slog.Int("topic_added", result.TopicAdded),
		slog.Int("enriched", result.Found),
		slog.Int("not_found", result.NotFound),
		slog.Int("enrich_failed", result.Failed),
	)
	return result, nil
}

func (s *Scanner) scanTopic(ctx context.Context, c *domain.Cache, topic, dir string, result *Result) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scanner: list topic %s: %w", topic, err)
	}

	if c.RegisterTopic(topic) {
		if err := s.vocab.Save(ctx, c); err != nil {
			return fmt.Errorf("scanner: register topic %s: %w", topic, err)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, f.Name())
		if isDir(path) {
			s.log.DebugContext(ctx, "skipping nested directory", slog.String("path", path))
			continue
		}

		s.log.InfoContext(ctx, "analyzing file", slog.String("file", f.Name()))
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scanner: read %s: %w", path, err)
		}

		a, err := s.vocab.AnalyzeText(ctx, c, topic, string(data))
		result.Analysis.Add(a)
		if err != nil {
			return fmt.Errorf("scanner: analyze %s: %w", path, err)
		}
		if err := s.vocab.Save(ctx, c); err != nil {
			return fmt.Errorf("scanner: save after %s: %w", path, err)
		}
		result.Files++
	}
	return nil
}

// isDir follows symlinks. Entries that cannot be stat'ed count as files.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
