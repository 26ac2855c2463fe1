// Package vocabulary maintains the vocabulary cache: loading it, merging
// annotated words into it and persisting every change.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/internal/service/enrichment"
)

type cacheStore interface {
	Load(ctx context.Context) (*domain.Cache, error)
	Save(ctx context.Context, c *domain.Cache) error
}

type annotator interface {
	Annotate(ctx context.Context, text string) ([]domain.Token, error)
}

type enricher interface {
	Enrich(ctx context.Context, word string) enrichment.Result
}

// Service is the write-through front of the cache store.
type Service struct {
	log       *slog.Logger
	store     cacheStore
	annotator annotator
	enricher  enricher
}

// NewService creates a vocabulary service.
func NewService(logger *slog.Logger, store cacheStore, annotator annotator, enricher enricher) *Service {
	return &Service{
		log:       logger.With("service", "vocabulary"),
		store:     store,
		annotator: annotator,
		enricher:  enricher,
	}
}

// Load returns the persisted cache. If it cannot be read or parsed, an
// empty cache is created and saved in its place; only a failure to save
// that empty cache is returned.
func (s *Service) Load(ctx context.Context) (*domain.Cache, error) {
	c, err := s.store.Load(ctx)
	if err == nil {
		s.log.InfoContext(ctx, "cache loaded", slog.Int("words", c.Len()), slog.Int("topics", len(c.Topics)))
		return c, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	s.log.WarnContext(ctx, "cache unavailable, starting fresh", slog.String("error", err.Error()))
	c = domain.NewCache()
	if err := s.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("vocabulary: create cache: %w", err)
	}
	return c, nil
}

// Save persists the full cache.
func (s *Service) Save(ctx context.Context, c *domain.Cache) error {
	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("vocabulary: save: %w", err)
	}
	return nil
}

// WordOutcome describes how one token was handled.
type WordOutcome struct {
	// Skipped is set for tokens rejected by domain.Qualifies.
	Skipped bool
	Upsert  domain.UpsertOutcome
	// Enriched is set when the dictionary was consulted; Enrichment holds
	// the result status.
	Enriched   bool
	Enrichment enrichment.Status
}

// UpsertWord merges one annotated token into c under topic.
//
// Nouns not yet cached are enriched first. Any change to c is persisted
// before returning; re-observing a known word under a known topic writes
// nothing.
func (s *Service) UpsertWord(ctx context.Context, c *domain.Cache, topic string, tok domain.Token) (WordOutcome, error) {
	var out WordOutcome
	if !domain.Qualifies(tok) {
		out.Skipped = true
		return out, nil
	}

	var attrs map[string]string
	if tok.Category.IsNoun() && !c.Has(tok.Text) {
		res := s.enricher.Enrich(ctx, tok.Text)
		out.Enriched = true
		out.Enrichment = res.Status
		if res.Status == enrichment.StatusFound {
			attrs = res.Attributes
		}
	}

	out.Upsert = c.Upsert(topic, tok.Text, tok.Category, attrs)
	if !out.Upsert.Changed() {
		return out, nil
	}

	s.log.DebugContext(ctx, "word merged",
		slog.String("word", tok.Text),
		slog.String("topic", topic),
		slog.String("outcome", out.Upsert.String()),
	)
	if err := s.store.Save(ctx, c); err != nil {
		return out, fmt.Errorf("vocabulary: persist %q: %w", tok.Text, err)
	}
	return out, nil
}

// Analysis counts what AnalyzeText did.
type Analysis struct {
	Tokens     int
	Qualified  int
	Created    int
	TopicAdded int
	Found      int
	NotFound   int
	Failed     int
}

// Add accumulates other into a.
func (a *Analysis) Add(other Analysis) {
	a.Tokens += other.Tokens
	a.Qualified += other.Qualified
	a.Created += other.Created
	a.TopicAdded += other.TopicAdded
	a.Found += other.Found
	a.NotFound += other.NotFound
	a.Failed += other.Failed
}

func (a *Analysis) record(o WordOutcome) {
	a.Tokens++
	if o.Skipped {
		return
	}
	a.Qualified++
	switch o.Upsert {
	case domain.UpsertCreated:
		a.Created++
	case domain.UpsertTopicAdded:
		a.TopicAdded++
	}
	if !o.Enriched {
		return
	}
	switch o.Enrichment {
	case enrichment.StatusFound:
		a.Found++
	case enrichment.StatusFailed:
		a.Failed++
	default:
		a.NotFound++
	}
}

// AnalyzeText annotates text and merges every qualifying token into c
// under topic, in document order.
func (s *Service) AnalyzeText(ctx context.Context, c *domain.Cache, topic, text string) (Analysis, error) {
	var a Analysis

	tokens, err := s.annotator.Annotate(ctx, text)
	if err != nil {
		return a, fmt.Errorf("vocabulary: annotate: %w", err)
	}

	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return a, err
		}
		out, err := s.UpsertWord(ctx, c, topic, tok)
		a.record(out)
		if err != nil {
			return a, err
		}
	}
	return a, nil
}
