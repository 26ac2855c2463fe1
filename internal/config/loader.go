package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "./config.yaml"

// Override changes a loaded configuration before it is validated.
type Override func(*Config)

// WithUserData points the scan at another topic directory root.
// An empty path keeps the configured one.
func WithUserData(path string) Override {
	return func(c *Config) {
		if path != "" {
			c.Paths.UserData = path
		}
	}
}

// WithCache selects another cache file. An empty path keeps the configured one.
func WithCache(path string) Override {
	return func(c *Config) {
		if path != "" {
			c.Paths.Cache = path
		}
	}
}

// Load builds the configuration with priority
// overrides > ENV > YAML > env-default tags, then validates it.
//
// The YAML file is CONFIG_PATH, or DefaultPath when that is unset. A missing
// default file is not an error; a missing CONFIG_PATH file is.
func Load(overrides ...Override) (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path, explicit = DefaultPath, false
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
