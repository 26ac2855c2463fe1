// Package enrichment attaches dictionary metadata (article, gender,
// definition) to newly discovered nouns.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

type dictionary interface {
	// Define returns nil, nil when the word is unknown.
	Define(ctx context.Context, word string) (*provider.Definition, error)
	Search(ctx context.Context, word string) ([]string, error)
}

// Config tunes lookups. Zero values disable the timeout and the rate limit.
type Config struct {
	Timeout time.Duration
	// RateLimit is the sustained number of dictionary requests per second.
	RateLimit float64
	Burst     int
}

// Service looks words up in a dictionary and flattens the answer into
// vocabulary attributes. Errors never escape: they are logged and
// reported as StatusFailed.
type Service struct {
	log     *slog.Logger
	dict    dictionary
	timeout time.Duration
	limiter *rate.Limiter
}

// NewService creates an enrichment service. A nil dict disables
// enrichment: every word is reported as not found.
func NewService(logger *slog.Logger, dict dictionary, cfg Config) *Service {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Service{
		log:     logger.With("service", "enrichment"),
		dict:    dict,
		timeout: cfg.Timeout,
		limiter: limiter,
	}
}

// Enrich looks word up exactly, then falls back to the first fuzzy match.
func (s *Service) Enrich(ctx context.Context, word string) Result {
	if s.dict == nil {
		return Result{Status: StatusNotFound}
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	def, err := s.define(ctx, word)
	if err != nil {
		return s.failed(ctx, word, err)
	}
	if def != nil {
		return found(def)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return s.failed(ctx, word, fmt.Errorf("rate limit: %w", err))
	}
	candidates, err := s.dict.Search(ctx, word)
	if err != nil {
		return s.failed(ctx, word, fmt.Errorf("search: %w", err))
	}
	if len(candidates) == 0 {
		s.log.DebugContext(ctx, "no dictionary entry", slog.String("word", word))
		return Result{Status: StatusNotFound}
	}

	s.log.DebugContext(ctx, "using fuzzy match",
		slog.String("word", word),
		slog.String("candidate", candidates[0]),
		slog.Int("candidates", len(candidates)),
	)
	def, err = s.define(ctx, candidates[0])
	if err != nil {
		return s.failed(ctx, word, err)
	}
	if def == nil {
		return Result{Status: StatusNotFound}
	}
	return found(def)
}

func (s *Service) define(ctx context.Context, word string) (*provider.Definition, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	def, err := s.dict.Define(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("define %q: %w", word, err)
	}
	return def, nil
}

func (s *Service) failed(ctx context.Context, word string, err error) Result {
	s.log.WarnContext(ctx, "enrichment failed",
		slog.String("word", word),
		slog.String("error", err.Error()),
	)
	return Result{Status: StatusFailed, Err: err}
}

func found(def *provider.Definition) Result {
	return Result{Status: StatusFound, Attributes: def.Attributes()}
}
