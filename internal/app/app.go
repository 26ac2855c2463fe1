package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutschkurs/internal/adapter/annotator/builtin"
	"github.com/heartmarshall/deutschkurs/internal/adapter/annotator/spacyhttp"
	"github.com/heartmarshall/deutschkurs/internal/adapter/filecache"
	"github.com/heartmarshall/deutschkurs/internal/adapter/postgres"
	vocabularyrepo "github.com/heartmarshall/deutschkurs/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/deutschkurs/internal/adapter/provider/dictapi"
	"github.com/heartmarshall/deutschkurs/internal/adapter/provider/dictd"
	"github.com/heartmarshall/deutschkurs/internal/adapter/provider/personal"
	"github.com/heartmarshall/deutschkurs/internal/config"
	"github.com/heartmarshall/deutschkurs/internal/domain"
	"github.com/heartmarshall/deutschkurs/internal/provider"
	"github.com/heartmarshall/deutschkurs/internal/service/enrichment"
	"github.com/heartmarshall/deutschkurs/internal/service/publish"
	"github.com/heartmarshall/deutschkurs/internal/service/scanner"
	"github.com/heartmarshall/deutschkurs/internal/service/stats"
	"github.com/heartmarshall/deutschkurs/internal/service/vocabulary"
)

// Annotator tags German text.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]domain.Token, error)
}

// Dictionary looks words up.
type Dictionary interface {
	Define(ctx context.Context, word string) (*provider.Definition, error)
	Search(ctx context.Context, word string) ([]string, error)
}

// BuildAnnotator creates the configured annotator backend.
func BuildAnnotator(cfg config.AnnotatorConfig, logger *slog.Logger) (Annotator, error) {
	switch cfg.Backend {
	case config.AnnotatorBuiltin:
		return builtin.New(), nil
	case config.AnnotatorHTTP:
		return spacyhttp.NewClient(cfg.URL, cfg.Model, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown annotator backend %q", cfg.Backend)
	}
}

// BuildDictionary creates the configured lookup backend, wrapped in the
// personal dictionary when enabled. Returns nil for backend "none".
func BuildDictionary(cfg *config.Config, logger *slog.Logger) (Dictionary, error) {
	var dict Dictionary
	switch cfg.Dictionary.Backend {
	case config.DictionaryNone:
		return nil, nil
	case config.DictionaryDictd:
		dict = dictd.NewProvider(dictd.Config{
			Addr:        cfg.Dictionary.Addr,
			Database:    cfg.Dictionary.Database,
			Strategy:    cfg.Dictionary.Strategy,
			DialTimeout: cfg.Dictionary.Timeout,
		}, logger)
	case config.DictionaryHTTP:
		dict = dictapi.NewProvider(cfg.Dictionary.URL, cfg.Dictionary.Timeout, logger)
	default:
		return nil, fmt.Errorf("unknown dictionary backend %q", cfg.Dictionary.Backend)
	}

	if cfg.Dictionary.Personal {
		dict = personal.NewStore(cfg.Paths.PersonalDir, cfg.Dictionary.Database, dict, logger)
	}
	return dict, nil
}

// BuildEnricher creates the enrichment service on top of BuildDictionary.
func BuildEnricher(cfg *config.Config, logger *slog.Logger) (*enrichment.Service, error) {
	dict, err := BuildDictionary(cfg, logger)
	if err != nil {
		return nil, err
	}
	ecfg := enrichment.Config{
		Timeout:   cfg.Dictionary.Timeout,
		RateLimit: cfg.Dictionary.RateLimit,
		Burst:     cfg.Dictionary.Burst,
	}
	// A nil dict disables enrichment.
	return enrichment.NewService(logger, dict, ecfg), nil
}

// Pipeline bundles the services of a scan.
type Pipeline struct {
	Store      *filecache.Store
	Vocabulary *vocabulary.Service
	Scanner    *scanner.Scanner
}

// BuildPipeline wires cache, annotator, enrichment and scanner.
func BuildPipeline(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	annotator, err := BuildAnnotator(cfg.Annotator, logger)
	if err != nil {
		return nil, err
	}
	enricher, err := BuildEnricher(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := filecache.NewStore(cfg.Paths.Cache, logger)
	vocab := vocabulary.NewService(logger, store, annotator, enricher)

	return &Pipeline{
		Store:      store,
		Vocabulary: vocab,
		Scanner:    scanner.New(logger, vocab),
	}, nil
}

// ScanReport is the outcome of RunScan.
type ScanReport struct {
	Scan  scanner.Result
	Stats stats.Report
}

// RunScan loads the cache, scans the user data directory into it and
// computes statistics of the result. On a scan error the statistics still
// describe the partially updated cache.
func RunScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ScanReport, error) {
	p, err := BuildPipeline(cfg, logger)
	if err != nil {
		return ScanReport{}, err
	}

	c, err := p.Vocabulary.Load(ctx)
	if err != nil {
		return ScanReport{}, err
	}

	var report ScanReport
	report.Scan, err = p.Scanner.Scan(ctx, c, cfg.Paths.UserData)
	report.Stats = stats.NewReport(c)
	return report, err
}

// LoadStats reads the persisted cache and computes its statistics.
// Unlike a scan, a missing or corrupt cache is an error here.
func LoadStats(ctx context.Context, cfg *config.Config, logger *slog.Logger) (stats.Report, error) {
	c, err := filecache.NewStore(cfg.Paths.Cache, logger).Load(ctx)
	if err != nil {
		return stats.Report{}, err
	}
	return stats.NewReport(c), nil
}

// RunPublish migrates the database and mirrors the persisted cache into it.
func RunPublish(ctx context.Context, cfg *config.Config, logger *slog.Logger) (publish.Result, error) {
	if err := cfg.Database.Validate(); err != nil {
		return publish.Result{}, err
	}

	c, err := filecache.NewStore(cfg.Paths.Cache, logger).Load(ctx)
	if err != nil {
		return publish.Result{}, err
	}

	dbCfg := cfg.Database
	if dbCfg.ApplicationName == "" {
		dbCfg.ApplicationName = ClientName("publish")
	}
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return publish.Result{}, err
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return publish.Result{}, fmt.Errorf("migrate: %w", err)
	}
	logger.InfoContext(ctx, "database migrated", slog.Int("applied", applied))

	svc := publish.NewService(logger, vocabularyrepo.New(pool), postgres.NewTxManager(pool), cfg.Publish.ChunkSize)
	return svc.Publish(ctx, c)
}

// DictionaryReport lists the personal dictionary by lookup outcome.
func DictionaryReport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (personal.Report, error) {
	return personal.NewStore(cfg.Paths.PersonalDir, cfg.Dictionary.Database, nil, logger).Missing(ctx)
}

// ErrNoProbe is returned by ProbeDictionary for backends without a health check.
var ErrNoProbe = errors.New("dictionary backend has no probe")

// ProbeDictionary checks that the DICT server serves the configured
// database and returns the databases it offers.
func ProbeDictionary(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]string, error) {
	if cfg.Dictionary.Backend != config.DictionaryDictd {
		return nil, fmt.Errorf("%w: %s", ErrNoProbe, cfg.Dictionary.Backend)
	}
	p := dictd.NewProvider(dictd.Config{
		Addr:        cfg.Dictionary.Addr,
		Database:    cfg.Dictionary.Database,
		Strategy:    cfg.Dictionary.Strategy,
		DialTimeout: cfg.Dictionary.Timeout,
	}, logger)
	return p.Check(ctx)
}
