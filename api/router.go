package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gassafe/api/handler"
	"github.com/use-agent/gassafe/api/middleware"
	"github.com/use-agent/gassafe/config"
	"github.com/use-agent/gassafe/engine"
	"github.com/use-agent/gassafe/metrics"
	"github.com/use-agent/gassafe/models"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger → CORS
//	API:     Auth(policy) → RateLimit
//
// Health and metrics are outside /api so monitoring probes always work.
func NewRouter(strategy engine.Strategy, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.CustomRecovery(recoverInternal))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", handler.Health(cfg.Server.ServiceName))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.Use(middleware.Auth(middleware.PolicyFromKey(cfg.Auth.APIKey)))
	api.Use(middleware.RateLimit(cfg.RateLimit))

	api.POST("/gas-safe-scrape", handler.Scrape(strategy))

	return r
}

// recoverInternal answers a panic with a plain 500; the stack trace goes to
// the log only.
func recoverInternal(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    models.ErrCodeInternal,
	})
}
