package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/food-storage/internal/metrics"
	"github.com/guttosm/food-storage/internal/middleware"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// APIKeys are accepted in X-API-Key when EnableAuth is set and JWTSecret is empty.
	APIKeys    map[string]bool
	EnableAuth bool
	// JWTSecret, when set, requires an HS256 bearer token on every /api route.
	JWTSecret         []byte
	EnableIdempotency bool
	IdempotencyTTL    time.Duration
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		IdempotencyTTL: middleware.IdempotencyKeyTTL,
	}
}

// NewRouter creates and configures the Gin router for the food storage API.
// The returned function stops the background goroutines owned by the
// router's middleware and must be called on shutdown.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) (*gin.Engine, func()) {
	router := gin.New()
	var stops []func()

	stops = append(stops, configureGlobalMiddleware(router, &cfg)...)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	stops = append(stops, configureAPIMiddleware(api, &cfg)...)

	if handler != nil {
		for _, group := range []RouteGroup{NewPantryRoutes(handler), NewAuditRoutes(handler)} {
			group.RegisterRoutes(api)
		}
	}

	return router, func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) []func() {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", middleware.IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit <= 0 {
		return nil
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	router.Use(limiter.RateLimit())
	return []func(){limiter.Stop}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up authentication, the per-actor rate limit
// and idempotency for the API group, in that order, so both the limiter and
// the idempotency cache see the resolved actor.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) []func() {
	var stops []func()

	switch {
	case len(cfg.JWTSecret) > 0:
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	case cfg.EnableAuth && len(cfg.APIKeys) > 0:
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	if cfg.RateLimit > 0 && (len(cfg.JWTSecret) > 0 || cfg.EnableAuth) {
		actorLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		api.Use(actorLimiter.ActorRateLimit())
		stops = append(stops, actorLimiter.Stop)
	}

	if cfg.EnableIdempotency {
		idempotencyCfg := middleware.NewIdempotencyConfig(cfg.IdempotencyTTL)
		api.Use(middleware.Idempotency(idempotencyCfg))
		stops = append(stops, idempotencyCfg.Cache.Stop)
	}

	return stops
}
