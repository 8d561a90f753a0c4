package internal

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
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/halvard/skald/internal/api"
	"github.com/halvard/skald/internal/auth"
	"github.com/halvard/skald/internal/blogservice"
	"github.com/halvard/skald/internal/mcpserver"
	"github.com/halvard/skald/internal/models"
	"github.com/halvard/skald/internal/poststore"
	"github.com/halvard/skald/internal/sse"
	"github.com/halvard/skald/internal/storage"
	"github.com/halvard/skald/internal/uploads"
	"github.com/halvard/skald/internal/userstore"
	"github.com/halvard/skald/internal/watcher"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.String("uploads_path", cfg.Uploads.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure data directory exists.
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Record collections.
	posts := poststore.New(storage.NewCollection[models.Post](filepath.Join(cfg.Data.Path, "posts.json")))
	users := userstore.New(storage.NewCollection[models.User](filepath.Join(cfg.Data.Path, "users.json")))

	// Bootstrap the admin account on first start.
	if err := users.Bootstrap(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin user: %w", err)
	}

	// Auth: signing key is loaded once here and never mutated.
	tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL())
	authSvc := auth.NewService(users, tokens)

	// Uploaded image blobs.
	blobs, err := storage.NewBlobDir(cfg.Uploads.Path)
	if err != nil {
		return fmt.Errorf("init uploads: %w", err)
	}
	registrar := uploads.NewRegistrar(blobs)

	// SSE broker and the content service feeding it.
	broker := sse.NewBroker()
	defer broker.Close()

	svc := blogservice.NewService(posts, registrar, broker.PublishContentEvent)

	if app.mcp {
		logger.Info("Starting MCP stdio server")
		return mcpserver.New(svc).ServeStdio()
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, authSvc, broker))

	// Serve uploaded images.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(blobs.Root()))))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory for external edits to the collections.
	g.Go(func() error {
		if err := watcher.Watch(gCtx, cfg.Data.Path, logger, func(name string) {
			broker.PublishContentEvent("content-changed", "")
		}); err != nil {
			logger.Warn("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
