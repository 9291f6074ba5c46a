package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gemini-proxy/internal/api"
	"github.com/phrazzld/gemini-proxy/internal/config"
	"github.com/phrazzld/gemini-proxy/internal/generation"
	"github.com/phrazzld/gemini-proxy/internal/platform/gemini"
	"github.com/phrazzld/gemini-proxy/internal/service"
	"github.com/phrazzld/gemini-proxy/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// httpClient is shared by every upstream call.
	httpClient *http.Client

	keys      auth.KeySource
	generator generation.Generator
	service   service.ProxyService
	handler   *api.ProxyHandler
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		httpClient: gemini.NewHTTPClient(time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second),
	}

	var err error
	app.keys, err = auth.NewKeySource(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key source: %w", err)
	}
	logger.Info("Key source initialized", "mode", cfg.Auth.Mode)

	app.generator, err = gemini.NewGenerator(
		app.httpClient,
		cfg.Upstream,
		logger.With("component", "gemini_generator"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	logger.Info("Gemini generator initialized",
		"backend", cfg.Upstream.Backend,
		"base_url", cfg.Upstream.BaseURL,
		"api_version", cfg.Upstream.APIVersion)

	app.service, err = service.NewProxyService(app.keys, app.generator, cfg.Upstream.DefaultModel, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy service: %w", err)
	}

	app.handler = api.NewProxyHandler(app.service, cfg.Server.MaxBodyBytes, api.NewServiceInfo(cfg.Auth.Mode))

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.httpClient != nil {
		app.httpClient.CloseIdleConnections()
	}
}
