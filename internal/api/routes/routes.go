package routes

import (
	_ "embed"
	"net/http"

	"jobportal/internal/api/handlers"
	"jobportal/internal/api/middleware"
	"jobportal/internal/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// OpenAPISpec is the API document served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPISpec []byte

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")
	log := app.Logger

	//Create handlers
	authHandler := handlers.NewAuthHandler(app.Auth, handlers.CookieOptions{
		Lifetime: app.Config.JWT.CookieLifetime,
		Secure:   app.Config.Server.CookieSecure,
	}, log)
	jobHandler := handlers.NewJobHandler(app.Jobs, log)
	applicationHandler := handlers.NewApplicationHandler(app.Applications, log)
	profileHandler := handlers.NewProfileHandler(app.Profiles, log)
	savedJobHandler := handlers.NewSavedJobHandler(app.SavedJobs, log)

	// --- Middleware ---
	authMiddleware := middleware.Authenticate(app.Tokens, log)
	optionalAuth := middleware.OptionalAuthenticate(app.Tokens)
	rateLimit := func(c *gin.Context) { c.Next() }
	if app.Config.RateLimit.Enabled {
		rateLimit = middleware.RateLimit(app.Limiter, app.Config.RateLimit.Limit, app.Config.RateLimit.Window, log)
	}

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler, rateLimit)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware, optionalAuth)
	RegisterApplicationRoutes(apiV1, applicationHandler, authMiddleware)
	RegisterProfileRoutes(apiV1, profileHandler, authMiddleware)
	RegisterSavedJobRoutes(apiV1, savedJobHandler, authMiddleware)
	apiV1.GET("/ping", handlers.Ping)

	// --- Health and metrics ---
	checks := make(map[string]handlers.HealthCheck, len(app.Checks))
	for name, check := range app.Checks {
		checks[name] = handlers.HealthCheck(check)
	}
	router.GET("/health", handlers.NewHealthHandler(checks).Health)
	router.GET("/metrics", app.Metrics.Handler())

	if app.UploadsDir != "" {
		router.Static("/uploads", app.UploadsDir)
	}

	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", OpenAPISpec)
	})
	log.Debug("configuring swagger UI", zap.String("doc", "/openapi.yaml"))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.yaml")))
}
