package config

import (
	"fmt"
	"strings"
)

const maxChunkSize = 10000

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.Cache) == "" {
		return fmt.Errorf("paths.cache is required")
	}
	if err := c.Annotator.validate(); err != nil {
		return fmt.Errorf("annotator: %w", err)
	}
	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	if c.Dictionary.Personal && c.Dictionary.Backend != DictionaryNone && strings.TrimSpace(c.Paths.PersonalDir) == "" {
		return fmt.Errorf("paths.personal_dir is required when dictionary.personal is enabled")
	}
	// One chunk is one transaction step; the repository splits its statements below the parameter limit.
	if c.Publish.ChunkSize <= 0 || c.Publish.ChunkSize > maxChunkSize {
		return fmt.Errorf("publish.chunk_size must be in 1..%d (got %d)", maxChunkSize, c.Publish.ChunkSize)
	}
	return nil
}

func (a *AnnotatorConfig) validate() error {
	switch a.Backend {
	case AnnotatorBuiltin:
	case AnnotatorHTTP:
		if a.URL == "" {
			return fmt.Errorf("url is required for backend %q", a.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", a.Backend)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", a.Timeout)
	}
	return nil
}

func (d *DictionaryConfig) validate() error {
	switch d.Backend {
	case DictionaryNone:
		return nil
	case DictionaryDictd:
		if d.Addr == "" {
			return fmt.Errorf("addr is required for backend %q", d.Backend)
		}
		if d.Database == "" {
			return fmt.Errorf("database is required for backend %q", d.Backend)
		}
	case DictionaryHTTP:
		if d.URL == "" {
			return fmt.Errorf("url is required for backend %q", d.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", d.Backend)
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", d.Timeout)
	}
	if d.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %v)", d.RateLimit)
	}
	if d.RateLimit > 0 && d.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 when rate_limit is set (got %d)", d.Burst)
	}
	return nil
}

// Validate checks the settings needed to open a connection pool.
// It is not part of Config.Validate because only publishing needs a database.
func (d DatabaseConfig) Validate() error {
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("database.min_conns must be between 0 and max_conns (got %d)", d.MinConns)
	}
	return nil
}
