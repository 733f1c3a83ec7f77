package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gassafe/models"
)

// Health returns a handler for GET /health.
//
// The payload is fixed; it never touches the browser pool so liveness probes
// stay cheap while every session is busy.
func Health(service string) gin.HandlerFunc {
	resp := models.HealthResponse{Status: "ok", Service: service}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
