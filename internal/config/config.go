package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Annotator  AnnotatorConfig  `yaml:"annotator"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Database   DatabaseConfig   `yaml:"database"`
	Publish    PublishConfig    `yaml:"publish"`
	Log        LogConfig        `yaml:"log"`
}

// Annotator backends.
const (
	AnnotatorBuiltin = "builtin"
	AnnotatorHTTP    = "http"
)

// Dictionary backends.
const (
	DictionaryDictd = "dictd"
	DictionaryHTTP  = "http"
	DictionaryNone  = "none"
)

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	UserData    string `yaml:"userdata"     env:"PATHS_USERDATA"     env-default:"./userdata"`
	Cache       string `yaml:"cache"        env:"PATHS_CACHE"        env-default:"./cache.json"`
	PersonalDir string `yaml:"personal_dir" env:"PATHS_PERSONAL_DIR" env-default:"./dict"`
}

// AnnotatorConfig selects and configures the part-of-speech tagger.
type AnnotatorConfig struct {
	Backend string        `yaml:"backend" env:"ANNOTATOR_BACKEND" env-default:"builtin"`
	URL     string        `yaml:"url"     env:"ANNOTATOR_URL"`
	Model   string        `yaml:"model"   env:"ANNOTATOR_MODEL"   env-default:"de_core_news_sm"`
	Timeout time.Duration `yaml:"timeout" env:"ANNOTATOR_TIMEOUT" env-default:"30s"`
}

// DictionaryConfig holds dictionary lookup settings.
type DictionaryConfig struct {
	Backend   string        `yaml:"backend"    env:"DICT_BACKEND"    env-default:"dictd"`
	Addr      string        `yaml:"addr"       env:"DICT_ADDR"       env-default:"localhost:2628"`
	Database  string        `yaml:"database"   env:"DICT_DATABASE"   env-default:"fd-deu-eng"`
	Strategy  string        `yaml:"strategy"   env:"DICT_STRATEGY"   env-default:"lev"`
	URL       string        `yaml:"url"        env:"DICT_URL"`
	Timeout   time.Duration `yaml:"timeout"    env:"DICT_TIMEOUT"    env-default:"10s"`
	RateLimit float64       `yaml:"rate_limit" env:"DICT_RATE_LIMIT" env-default:"0"`
	Burst     int           `yaml:"burst"      env:"DICT_BURST"      env-default:"1"`
	// Personal records every lookup under paths.personal_dir. Off unless set.
	Personal bool `yaml:"personal" env:"DICT_PERSONAL"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only the publish
// command needs a database.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// ApplicationName is reported to the server. Empty means the command's own name.
	ApplicationName string `yaml:"application_name" env:"DATABASE_APPLICATION_NAME"`
}

// PublishConfig holds settings of the database mirror.
type PublishConfig struct {
	ChunkSize int `yaml:"chunk_size" env:"PUBLISH_CHUNK_SIZE" env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
