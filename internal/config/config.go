package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`

	DBURL             string `envconfig:"DB_URL"`
	DBAutoMigrate     bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	DBMaxConns        int    `envconfig:"DB_MAX_CONNS" default:"20"`
	DBMinConns        int    `envconfig:"DB_MIN_CONNS" default:"2"`
	DBMaxIdleSecs     int    `envconfig:"DB_MAX_CONN_IDLE_SECS" default:"300"`
	DBMaxLifeSecs     int    `envconfig:"DB_MAX_CONN_LIFETIME_SECS" default:"3600"`
	DBConnTimeoutSecs int    `envconfig:"DB_CONN_TIMEOUT_SECS" default:"10"`
	DBStatementCache  int    `envconfig:"DB_STATEMENT_CACHE_CAPACITY" default:"256"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"movie_reviews"`

	OMDBURL         string `envconfig:"OMDB_URL" default:"https://www.omdbapi.com"`
	OMDBAPIKey      string `envconfig:"OMDB_API_KEY"`
	OMDBTimeoutSecs int    `envconfig:"OMDB_TIMEOUT_SECS" default:"5"`

	ReadTimeoutSecs  int `envconfig:"SERVER_READ_TIMEOUT" default:"15"`
	WriteTimeoutSecs int `envconfig:"SERVER_WRITE_TIMEOUT" default:"15"`
	IdleTimeoutSecs  int `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`

	AuthRequired      bool   `envconfig:"AUTH_REQUIRED" default:"false"`
	SessionSecret     string `envconfig:"SESSION_SECRET"`
	SessionMaxAgeSecs int    `envconfig:"SESSION_MAX_AGE_SECS" default:"604800"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

// Load reads configuration from the environment (and a .env file when one
// exists), applying defaults and validation.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (cfg Config) Validate() error {
	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required")
		}
		if cfg.DBMaxConns <= 0 {
			return fmt.Errorf("DB_MAX_CONNS must be positive")
		}
		if cfg.DBMinConns < 0 {
			return fmt.Errorf("DB_MIN_CONNS must be non-negative")
		}
		if cfg.DBMinConns > cfg.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
		}
		if cfg.DBStatementCache < 0 {
			return fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
		if cfg.MongoDatabase == "" {
			return fmt.Errorf("MONGODB_DATABASE is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", DriverPostgres, DriverMongo)
	}

	if cfg.OMDBURL == "" {
		return fmt.Errorf("OMDB_URL is required")
	}
	if cfg.OMDBAPIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required")
	}
	if cfg.OMDBTimeoutSecs <= 0 {
		return fmt.Errorf("OMDB_TIMEOUT_SECS must be positive")
	}
	if cfg.AuthRequired && cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when AUTH_REQUIRED is set")
	}
	if cfg.SessionMaxAgeSecs <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE_SECS must be positive")
	}
	return nil
}

// Development reports whether the service runs in a development environment.
func (cfg Config) Development() bool {
	return cfg.AppEnv == "development" || cfg.AppEnv == "dev"
}
