package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/config"
)

// ErrClosed is returned by HealthCheck on a store that was never opened or has
// been closed.
var ErrClosed = errors.New("store: postgres pool not initialized")

// Options tunes the review database pool.
type Options struct {
	MaxConns               int32
	MinConns               int32
	MaxConnIdleTime        time.Duration
	MaxConnLifetime        time.Duration
	ConnTimeout            time.Duration
	StatementCacheCapacity int
	// ConnectAttempts bounds how often the initial ping is retried while the
	// database is still starting. Zero means a single attempt.
	ConnectAttempts int
	RetryBackoff    time.Duration
	Logger          *zap.SugaredLogger
}

// OptionsFromConfig maps the DB_* settings onto pool options.
func OptionsFromConfig(cfg config.Config, logger *zap.SugaredLogger) Options {
	return Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		ConnectAttempts:        5,
		RetryBackoff:           time.Second,
		Logger:                 logger,
	}
}

// poolConfig parses dbURL and overlays every option that is set.
func (o Options) poolConfig(dbURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 {
		cfg.MinConns = o.MinConns
	}
	if o.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.StatementCacheCapacity > 0 {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
		cfg.ConnConfig.StatementCacheCapacity = o.StatementCacheCapacity
	} else {
		// No cache: plain protocol works behind transaction poolers.
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	}
	return cfg, nil
}

func (o Options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.ConnTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.ConnTimeout)
}

// Store owns the Postgres pool that backs reviews, bookmarks and accounts.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
	opts   Options
}

// New opens the pool and pings it, retrying while the server comes up.
func New(ctx context.Context, dbURL string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	cfg, err := opts.poolConfig(dbURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	s := &Store{pool: pool, logger: logger, opts: opts}
	if err := s.waitReady(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Infow("store: postgres ready",
		"database", cfg.ConnConfig.Database,
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
		"stmt_cache", cfg.ConnConfig.StatementCacheCapacity,
	)
	return s, nil
}

func (s *Store) waitReady(ctx context.Context) error {
	attempts := s.opts.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = s.HealthCheck(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		s.logger.Warnw("store: postgres not ready", "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping postgres: %w", ctx.Err())
		case <-time.After(s.opts.RetryBackoff * time.Duration(i)):
		}
	}
	return fmt.Errorf("ping postgres after %d attempts: %w", attempts, err)
}

// NewWithPool wraps an existing pool, mostly for tests.
func NewWithPool(pool *pgxpool.Pool, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{pool: pool, logger: logger}
}

// Close releases the pool. It is safe on a nil store.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.logger.Info("store: closing postgres pool")
	s.pool.Close()
}

// HealthCheck pings the database within ConnTimeout.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return ErrClosed
	}
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the pgx pool to the repositories.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Stats reports pool usage for /healthz.
func (s *Store) Stats() *pgxpool.Stat {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Stat()
}
