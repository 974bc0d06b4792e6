// Package server is the composition root: it opens the session backend,
// builds services and handlers, mounts routes and runs the HTTP server.
//
// DEPENDENCY FLOW:
//
//	config.Config
//	  → session repository (sqlite | postgres | redis | memory)
//	  → session.Manager + auth.TokenService → auth.Sessions middleware
//	  → catalog.Catalog → services → handlers → chi routes
//
// Nothing below this package knows which backend was chosen.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/catalog"
	"github.com/sakif/skillsync/internal/config"
	"github.com/sakif/skillsync/internal/handler"
	"github.com/sakif/skillsync/internal/identity"
	"github.com/sakif/skillsync/internal/middleware"
	"github.com/sakif/skillsync/internal/repository"
	"github.com/sakif/skillsync/internal/repository/memory"
	"github.com/sakif/skillsync/internal/repository/postgres"
	"github.com/sakif/skillsync/internal/repository/redis"
	"github.com/sakif/skillsync/internal/repository/sqlite"
	"github.com/sakif/skillsync/internal/service"
	"github.com/sakif/skillsync/internal/session"
)

// limiterSweep is how often idle rate-limit buckets are dropped.
const limiterSweep = 3 * time.Minute

// Server owns the router and every resource that must be released on
// shutdown: the session backend and the rate limiter's sweep goroutine.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	repo    repository.SessionRepository
	closer  func() error
	limiter *middleware.IPRateLimiter
}

// New opens the configured backend and wires the application. On error
// anything already opened is released.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	repo, closer, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		repo:    repo,
		closer:  closer,
		limiter: middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst, limiterSweep, logger),
	}

	if err := s.setupRoutes(); err != nil {
		s.release()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// openRepository returns the session backend named by cfg.Driver and a
// function that closes it.
func openRepository(ctx context.Context, cfg config.StorageConfig) (repository.SessionRepository, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	case config.DriverRedis:
		store, err := redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// setupRoutes mounts middleware and routes.
//
// Middleware order:
//  1. RequestID, RealIP: the logger and the rate limiter read what they set
//  2. Logger, Recoverer: a panic is logged as a 500 rather than lost
//  3. auth.Sessions: every page and API call sees its session Store
//
// CORS and the rate limiter are scoped to the API.
func (s *Server) setupRoutes() error {
	cfg := s.config

	tokens, err := auth.NewTokenService(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return err
	}
	sessions := session.NewManager(s.repo, identity.NewResolver(cfg.AdminEmail), s.logger,
		session.WithValidator(service.ValidateProfile),
		session.WithDelay(cfg.Session.LoginDelay),
	)

	c, err := catalog.Load()
	if err != nil {
		return err
	}

	// === Services ===
	accounts := service.NewAccountService(cfg.MaxPhotoBytes, s.logger)
	directory := service.NewDirectoryService(c)
	feedback := service.NewFeedbackService(c, s.logger)
	requests := service.NewRequestService(c, s.logger)
	leaderboard := service.NewLeaderboardService(c)
	dashboard := service.NewDashboardService(c, directory)
	admin := service.NewAdminService(c, s.logger)

	// === Handlers ===
	pages, err := handler.NewPageHandler(handler.PageServices{
		Directory:   directory,
		Feedback:    feedback,
		Requests:    requests,
		Leaderboard: leaderboard,
		Dashboard:   dashboard,
		Admin:       admin,
	}, s.logger)
	if err != nil {
		return err
	}
	accountHandler := handler.NewAccountHandler(accounts, cfg.MaxPhotoBytes, s.logger)
	directoryHandler := handler.NewDirectoryHandler(directory)
	feedbackHandler := handler.NewFeedbackHandler(feedback)
	requestHandler := handler.NewRequestHandler(requests)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboard)
	dashboardHandler := handler.NewDashboardHandler(dashboard)
	adminHandler := handler.NewAdminHandler(admin, s.logger)

	var pinger handler.Pinger
	if p, ok := s.repo.(handler.Pinger); ok {
		pinger = p
	}
	healthHandler := handler.NewHealthHandler(pinger, s.logger)

	// === Global middleware ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(auth.Sessions(tokens, sessions, auth.CookieOptions{Secure: cfg.Session.SecureCookie}, s.logger))

	// === Pages ===
	s.router.Get("/", pages.HandleHome)
	s.router.Get("/login", pages.HandleLogin)
	s.router.Get("/register", pages.HandleRegister)
	s.router.Get("/dashboard", pages.HandleDashboard)
	s.router.Get("/browse", pages.HandleBrowse)
	s.router.Get("/requests", pages.HandleRequests)
	s.router.Get("/feedback", pages.HandleFeedback)
	s.router.Get("/leaderboard", pages.HandleLeaderboard)
	s.router.Get("/profile", pages.HandleProfile)
	s.router.Get("/admin", pages.HandleAdmin)
	s.router.Get("/admin/login", pages.HandleAdminLogin)
	s.router.NotFound(pages.HandleNotFound)

	// === JSON API ===
	apiCORS := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(apiCORS.Handler)

		r.Get("/health", healthHandler.HandleHealth)
		r.Get("/session", accountHandler.HandleSession)

		r.Route("/auth", func(r chi.Router) {
			r.Use(s.limiter.Middleware)
			r.Post("/login", accountHandler.HandleLogin)
			r.Post("/register", accountHandler.HandleRegister)
			r.Post("/logout", accountHandler.HandleLogout)
			r.Post("/admin/login", accountHandler.HandleAdminLogin)
		})

		r.Patch("/profile", accountHandler.HandleUpdateProfile)
		r.Post("/profile/photo", accountHandler.HandleUploadPhoto)

		r.Get("/members", directoryHandler.HandleMembers)
		r.Get("/members/skills", directoryHandler.HandleSkills)
		r.Get("/members/locations", directoryHandler.HandleLocations)

		r.Get("/feedback", feedbackHandler.HandleList)
		r.Get("/feedback/stats", feedbackHandler.HandleStats)
		r.Get("/feedback/sessions", feedbackHandler.HandleRecentSessions)
		r.Post("/feedback", feedbackHandler.HandleSubmit)

		r.Get("/leaderboard", leaderboardHandler.HandleRankings)
		r.Get("/leaderboard/badges", leaderboardHandler.HandleBadges)

		r.Get("/theme", handler.HandleGetTheme)
		r.Put("/theme", handler.HandleSetTheme)

		// Member-only.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/dashboard", dashboardHandler.HandleDashboard)
			r.Get("/requests", requestHandler.HandleList)
			r.Post("/requests", requestHandler.HandlePropose)
			r.Post("/requests/{id}/accept", requestHandler.HandleAccept)
			r.Post("/requests/{id}/reject", requestHandler.HandleReject)
			r.Delete("/requests/{id}", requestHandler.HandleCancel)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/stats", adminHandler.HandleStats)
			r.Get("/users", adminHandler.HandleUsers)
			r.Get("/swaps", adminHandler.HandleSwaps)
			r.Get("/reports", adminHandler.HandleReports)
			r.Get("/spam", adminHandler.HandleSpam)
			r.Post("/users/{id}/ban", adminHandler.HandleBan)
			r.Post("/users/{id}/unban", adminHandler.HandleUnban)
			r.Post("/swaps/{id}/{action}", adminHandler.HandleSwapAction)
			r.Post("/reports/{id}/{action}", adminHandler.HandleReportAction)
			r.Post("/spam/{id}/reject", adminHandler.HandleRejectSpam)
			r.Post("/broadcast", adminHandler.HandleBroadcast)
			r.Get("/export/{kind}", adminHandler.HandleExport)
		})
	})

	return nil
}

// Handler exposes the router so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the rate limiter and the session backend. Start calls it
// on the way out; call it directly when Start was never reached.
func (s *Server) Close() error {
	return s.release()
}

func (s *Server) release() error {
	s.limiter.Stop()
	if s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	return closer()
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to the configured shutdown timeout and closes
// the session backend.
func (s *Server) Start(ctx context.Context) error {
	defer func() {
		if err := s.release(); err != nil {
			s.logger.Error("closing session storage", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTP.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.HTTP.ReadTimeout,
		WriteTimeout: s.config.HTTP.WriteTimeout,
		IdleTimeout:  s.config.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			slog.Int("port", s.config.HTTP.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.HTTP.Port)),
			slog.String("storage", s.config.Storage.Driver),
			slog.String("environment", s.config.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
