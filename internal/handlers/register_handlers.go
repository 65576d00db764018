package handlers

import (
	"log/slog"

	"github.com/fixedops/asset_management_app/cmd/docs"
	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/fixedops/asset_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Trigger routes for external schedulers, authenticated by shared secret
	setupTriggerRoutes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerExampleRoutes(v1)

	// Every domain route is scoped to a business unit
	bu := v1.Group("/business-units/:business_unit_id")
	registerAssetRoutes(bu, services.Asset)
	registerDepreciationRoutes(bu, services.Depreciation)
	registerRetirementRoutes(bu, services.Retirement)
}

// setupTriggerRoutes configures the /triggers group for unattended batch
// runs. Cron callers present a shared secret instead of a JWT, and the group
// is rate limited so a misconfigured scheduler cannot stack runs.
func setupTriggerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	store := memory.NewStore()
	ipLimiter := limiter.New(store, triggerRate(cfg.TriggerRateLimit))

	triggers := r.Group("/triggers",
		middleware.CronAuthMiddleware(cfg.CronTriggerSecret),
		middleware.RateLimit(ipLimiter),
	)
	registerTriggerRoutes(triggers, services.Depreciation)
}

const defaultTriggerRate = "10-M"

// triggerRate parses the configured trigger rate limit, falling back to the
// default when the operator-supplied value does not parse.
func triggerRate(formatted string) limiter.Rate {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid TRIGGER_RATE_LIMIT value, using default",
			slog.String("value", formatted),
			slog.String("default", defaultTriggerRate),
		)
		rate, _ = limiter.NewRateFromFormatted(defaultTriggerRate)
	}
	return rate
}

// registerExampleRoutes registers the example '/helloworld' route
func registerExampleRoutes(group *gin.RouterGroup) {
	eg := group.Group("/example")
	eg.GET("/helloworld", getHome)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
