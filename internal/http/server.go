package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/config"
	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/service"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Searcher runs the movie search workflow.
type Searcher interface {
	Search(ctx context.Context, query string) service.SearchResult
}

// ReviewService mutates reviews and re-renders the affected movie.
type ReviewService interface {
	Submit(ctx context.Context, input domain.ReviewInput) (service.SearchResult, error)
	Edit(ctx context.Context, id string, update domain.ReviewUpdate) (service.SearchResult, error)
	Remove(ctx context.Context, id, fallbackTitle string) (service.SearchResult, error)
	React(ctx context.Context, id string, reaction domain.Reaction) (service.SearchResult, error)
}

// BookmarkService toggles and lists bookmarks.
type BookmarkService interface {
	Toggle(ctx context.Context, title string) (bool, error)
	List(ctx context.Context) ([]domain.Bookmark, error)
}

// AuthService registers accounts and checks credentials.
type AuthService interface {
	Register(ctx context.Context, creds service.Credentials) (domain.User, error)
	Login(ctx context.Context, creds service.Credentials) (domain.User, error)
}

// Deps bundles the collaborators the handlers call into.
type Deps struct {
	Health        HealthChecker
	Search        Searcher
	Reviews       ReviewService
	Bookmarks     BookmarkService
	Auth          AuthService
	Authenticator Authenticator
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	deps    Deps
	logger  *zap.SugaredLogger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, deps Deps, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		router: r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/search", s.handleSearch)
	s.router.Get("/bookmarks", s.handleListBookmarks)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/bookmark", s.handleToggleBookmark)
		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", s.handleSubmitReview)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.handleEditReview)
				r.Delete("/", s.handleRemoveReview)
				r.Post("/like", s.handleReact(domain.ReactionLike))
				r.Post("/dislike", s.handleReact(domain.ReactionDislike))
			})
		})
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("http: listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

type healthResponse struct {
	Status      string `json:"status"`
	Connections *int32 `json:"connections,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.deps.Health == nil {
		s.respondError(w, http.StatusServiceUnavailable, "unavailable", "Storage is not configured")
		return
	}
	if err := s.deps.Health.HealthCheck(ctx); err != nil {
		s.logger.Warnw("http: health check failed", "error", err)
		s.respondError(w, http.StatusServiceUnavailable, "unavailable", "Storage is unreachable")
		return
	}

	resp := healthResponse{Status: "ok"}
	if st, ok := s.deps.Health.(interface{ Stats() *pgxpool.Stat }); ok {
		if stat := st.Stats(); stat != nil {
			total := stat.TotalConns()
			resp.Connections = &total
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}
