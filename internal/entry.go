// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/kakeru/folio/internal/api"
	"github.com/kakeru/folio/internal/content"
	"github.com/kakeru/folio/internal/events"
	"github.com/kakeru/folio/internal/i18n"
	"github.com/kakeru/folio/internal/integrations"
	"github.com/kakeru/folio/internal/kvstore"
	"github.com/kakeru/folio/internal/markdown"
	"github.com/kakeru/folio/internal/pages"
	"github.com/kakeru/folio/internal/subscribers"
	"github.com/kakeru/folio/internal/uistate"
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
		slog.String("content_path", cfg.Content.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Load the content snapshot; a site with invalid content must not start.
	snap, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	store := content.NewStore(snap)

	// Durable key/value store.
	kv, err := kvstore.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("open kv store: %w", err)
	}
	defer kv.Close()

	// Translations and language preference.
	bundles, err := i18n.LoadBundles(cfg.Content.LocalesPath)
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	resolver := i18n.NewResolver(bundles, kv, logger)

	theme := uistate.NewTheme(kv, logger)

	// SSE broker, fed by language, theme and content changes.
	broker := events.NewBroker(time.Second)
	resolver.OnChange(broker.PublishLanguageChange)
	theme.OnChange(broker.PublishThemeChange)

	// Outbound integrations.
	httpClient := &http.Client{Timeout: 5 * time.Second}
	contrib := integrations.NewContributionsClient(
		cfg.Metrics.ContributionsBase, cfg.Metrics.GithubUser, httpClient, logger)
	visits := integrations.NewVisitCounter(
		cfg.Metrics.CounterBase, cfg.Metrics.CounterNamespace, cfg.Metrics.CounterKey,
		httpClient, kv, logger)
	mailer := integrations.NewMailer(
		cfg.Email.Endpoint, cfg.Email.ServiceID, cfg.Email.TemplateID, cfg.Email.PublicKey,
		nil, logger)

	subs := subscribers.NewStore(kv)

	// Page composition and routing.
	pageSvc := pages.NewService(store, resolver, markdown.NewRenderer(), contrib, visits, logger)
	handler := api.NewHandler(pageSvc, store, subs, mailer, contrib, visits, resolver, theme)
	appRouter := api.NewRouter(handler, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated). Readiness is gated by the
	// splash delay, a fixed startup phase that simply elapses.
	readyAt := time.Now().Add(cfg.App.SplashDelay())
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if time.Now().Before(readyAt) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"starting"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Pages at the root, REST under /api.
	r.Mount("/", appRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.Int("posts", len(store.AllPosts())),
		slog.Int("projects", len(store.AllProjects())))

	g, gCtx := errgroup.WithContext(ctx)

	// Start content watcher with SSE callback.
	g.Go(func() error {
		err := content.Watch(gCtx, store, cfg.Content.Path, logger, func() {
			broker.PublishContentUpdate(
				store.Fingerprint(),
				len(store.AllPosts()),
				len(store.AllProjects()))
		})
		if err != nil {
			logger.Warn("content watcher failed", slog.String("error", err.Error()))
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
		broker.Close()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
