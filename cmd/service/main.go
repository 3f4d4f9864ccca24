// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotedeck/quotedeck/internal/adapters/clients"
	"github.com/quotedeck/quotedeck/internal/adapters/clients/acl"
	server "github.com/quotedeck/quotedeck/internal/adapters/http"
	"github.com/quotedeck/quotedeck/internal/adapters/http/handlers"
	"github.com/quotedeck/quotedeck/internal/adapters/postgres"
	"github.com/quotedeck/quotedeck/internal/app"
	"github.com/quotedeck/quotedeck/internal/platform/config"
	"github.com/quotedeck/quotedeck/internal/platform/logging"
	"github.com/quotedeck/quotedeck/internal/platform/telemetry"
	"github.com/quotedeck/quotedeck/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Run migrations and connect to the database
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepo(pool)

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	if err := healthRegistry.Register(postgres.NewHealthCheck(pool)); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 7. Create HTTP client for the generation service
	apiKey := cfg.Services.Gemini.APIKey
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Gemini.BaseURL,
		ServiceName: "gemini",
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc: func(req *http.Request) {
			req.Header.Set("x-goog-api-key", apiKey)
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	// 8. Create generation client adapter (ACL pattern)
	geminiClient := acl.NewGeminiClient(acl.GeminiClientConfig{
		Client: httpClient,
		Model:  cfg.Services.Gemini.Model,
		Logger: logger,
	})

	if err := healthRegistry.Register(geminiClient); err != nil {
		return fmt.Errorf("registering generation client health check: %w", err)
	}

	// 9. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Generator: geminiClient,
		Users:     userRepo,
		Logger:    logger,
	})
	userService := app.NewUserService(app.UserServiceConfig{
		Users:  userRepo,
		Logger: logger,
	})
	favoritesService := app.NewFavoritesService(app.FavoritesServiceConfig{
		Users:  userRepo,
		Logger: logger,
	})

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)

	// 11. Create HTTP server
	srv := server.New(&cfg.Server, logger)

	// 12. Setup router with all middleware and routes
	routerCfg := server.NewDefaultRouterConfig(logger, &cfg.App, &cfg.Auth, healthHandler).
		WithHandlers(
			handlers.NewQuoteHandler(quoteService),
			handlers.NewUserHandler(userService),
			handlers.NewFavoritesHandler(favoritesService),
		)
	server.SetupRouter(srv.Engine(), routerCfg)

	// 13. Start server (non-blocking)
	serverErr := srv.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, srv, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	srv *server.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
