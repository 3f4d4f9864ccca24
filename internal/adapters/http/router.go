package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/adapters/http/handlers"
	"github.com/quotedeck/quotedeck/internal/adapters/http/middleware"
	"github.com/quotedeck/quotedeck/internal/platform/config"
	"github.com/quotedeck/quotedeck/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig contains authentication header configuration.
	AuthConfig *config.AuthConfig

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler handles quote generation endpoints.
	QuoteHandler *handlers.QuoteHandler

	// FavoritesHandler handles per-user favorites endpoints.
	FavoritesHandler *handlers.FavoritesHandler

	// UserHandler handles user registration and history endpoints.
	UserHandler *handlers.UserHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. Timeout - request deadline (applied per-route or globally)
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): Business endpoints, auth as needed
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no auth, no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	// Setup API v1 routes with timeout
	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	// Register API routes
	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes.
// Identity is anonymous (user ids minted at registration), so routes stay
// public unless gateway auth is enabled in config.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	api := rg.Group("")
	if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
		api.Use(middleware.RequireAuth(cfg.AuthConfig))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}

	if cfg.UserHandler != nil {
		cfg.UserHandler.RegisterUserRoutes(api)
	}

	if cfg.FavoritesHandler != nil {
		cfg.FavoritesHandler.RegisterFavoriteRoutes(api)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	authCfg *config.AuthConfig,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AuthConfig:    authCfg,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}

// WithHandlers attaches the business handlers to the router config.
func (cfg RouterConfig) WithHandlers(
	quotes *handlers.QuoteHandler,
	users *handlers.UserHandler,
	favorites *handlers.FavoritesHandler,
) RouterConfig {
	cfg.QuoteHandler = quotes
	cfg.UserHandler = users
	cfg.FavoritesHandler = favorites

	return cfg
}
