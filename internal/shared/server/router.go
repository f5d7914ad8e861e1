package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"apacheck-backend/internal/documents"
	"apacheck-backend/internal/shared/config"
	"apacheck-backend/internal/shared/metrics"
	"apacheck-backend/internal/shared/server/middleware"
	"apacheck-backend/internal/shared/server/respond"
	"apacheck-backend/internal/validations"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	DocumentHandler   *documents.Handler
	ValidationHandler *validations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Registered before the middleware chain so scrapers skip auth.
	r.GET("/metrics", metrics.Handler())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ValidationHandler != nil {
		deps.ValidationHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimits throttles validation runs harder than report polling.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/validations/:id" {
				return "POLLING"
			}
			if c.Request.Method == http.MethodPost && (c.FullPath() == "/api/v1/validations" || c.FullPath() == "/api/v1/validations/upload") {
				return "VALIDATE"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":  {Rate: 5, Burst: 20},
			"POLLING":  {Rate: 10, Burst: 30},
			"VALIDATE": {Rate: 1, Burst: 5},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
