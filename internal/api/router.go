package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/cryptopulse/internal/middleware"
)

// BasePath is the prefix of every business route.
const BasePath = "/crypto/api/v1"

// RouterConfig holds the tunables of the HTTP layer.
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	AuthRequired   bool
	RequestTimeout time.Duration
}

// DefaultRouterConfig mirrors the configuration defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimitRPS:   1,
		RateLimitBurst: 60,
		AuthRequired:   true,
		RequestTimeout: 10 * time.Second,
	}
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (RequestTimeout, 10 seconds by default).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures recommendation routes under /crypto/api/v1, guarded by RequireAuthorization.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//   - /recommendations/top and /recommendations/symbols take precedence over /:symbol.
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - cfg (RouterConfig): rate limit, auth and timeout settings.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	// ─── Timeout ──────────────────────────────────
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group(BasePath, middleware.RequireAuthorization(cfg.AuthRequired))
	{
		v1.GET("/recommendations", handler.GetRecommendations)
		v1.GET("/recommendations/top", handler.GetTopRecommendation)
		v1.GET("/recommendations/symbols", handler.GetSymbols)
		v1.GET("/recommendations/:symbol", handler.GetSymbolStats)
	}

	return router
}
