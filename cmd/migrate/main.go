package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/Clark-Hu/movie-reviews/internal/logging"
	"github.com/Clark-Hu/movie-reviews/internal/store"
)

// migrateConfig is the subset of the server configuration the migrator needs.
type migrateConfig struct {
	DBURL    string `envconfig:"DB_URL" required:"true"`
	AppEnv   string `envconfig:"APP_ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func main() {
	down := flag.Bool("down", false, "roll back every applied migration")
	flag.Parse()

	_ = godotenv.Load()
	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv == "development")
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	total, err := store.Migrate(cfg.DBURL, direction)
	if err != nil {
		logger.Fatalw("cannot execute migration", "error", err)
	}
	logger.Infow("applied migrations", "total", total, "down", *down)
}
