package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/config"
	httpserver "github.com/Clark-Hu/movie-reviews/internal/http"
	"github.com/Clark-Hu/movie-reviews/internal/logging"
	"github.com/Clark-Hu/movie-reviews/internal/omdb"
	"github.com/Clark-Hu/movie-reviews/internal/repository"
	"github.com/Clark-Hu/movie-reviews/internal/service"
	"github.com/Clark-Hu/movie-reviews/internal/store"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Fatalw("init sentry", "error", err)
		}
		defer sentry.Flush(sentryFlushTimeout)
	}

	repo, health, closeStore := openStorage(ctx, cfg, logger)
	defer closeStore()

	lookup, err := omdb.NewHTTPClient(cfg.OMDBURL, cfg.OMDBAPIKey, time.Duration(cfg.OMDBTimeoutSecs)*time.Second, logger)
	if err != nil {
		logger.Fatalw("init omdb client", "error", err)
	}

	validate := service.NewValidator()
	search := service.NewSearchWorkflow(lookup, repo.Reviews, repo.Bookmarks, logger)
	deps := httpserver.Deps{
		Health:        health,
		Search:        search,
		Reviews:       service.NewReviewWorkflow(repo.Reviews, search, validate, logger),
		Bookmarks:     service.NewBookmarkWorkflow(repo.Bookmarks, logger),
		Auth:          service.NewAuthWorkflow(repo.Users, validate, logger),
		Authenticator: httpserver.NewSessionAuthenticator(repo.Users, sessionSecret(cfg, logger), cfg.SessionMaxAgeSecs, !cfg.Development()),
	}
	server := httpserver.New(cfg, deps, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "error", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("graceful shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// openStorage connects the configured backend and returns its repositories,
// health checker and a close function.
func openStorage(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*repository.Repository, httpserver.HealthChecker, func()) {
	dbCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DBConnTimeoutSecs)*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := store.NewMongo(dbCtx, cfg.MongoURI, cfg.MongoDatabase, time.Duration(cfg.DBConnTimeoutSecs)*time.Second, logger)
		if err != nil {
			logger.Fatalw("connect mongo", "error", err)
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.Close(closeCtx)
		}
		return repository.NewMongo(m), m, closeFn

	default:
		if cfg.DBAutoMigrate {
			n, err := store.Migrate(cfg.DBURL, migrate.Up)
			if err != nil {
				logger.Fatalw("apply migrations", "error", err)
			}
			logger.Infow("applied migrations", "total", n)
		}

		st, err := store.New(ctx, cfg.DBURL, store.OptionsFromConfig(cfg, logger))
		if err != nil {
			logger.Fatalw("connect database", "error", err)
		}
		return repository.New(st), st, st.Close
	}
}

// sessionSecret falls back to a per-process random key when none is
// configured. Sessions then do not survive a restart.
func sessionSecret(cfg config.Config, logger *zap.SugaredLogger) string {
	if cfg.SessionSecret != "" {
		return cfg.SessionSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatalw("generate session secret", "error", err)
	}
	logger.Warn("SESSION_SECRET not set; using an ephemeral key")
	return hex.EncodeToString(buf)
}
