// File: handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/utils"
)

// HealthHandler handles GET /health. The database is load-bearing; a
// dead redis only degrades notification delivery.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()

	code := http.StatusOK
	overall := "ok"
	switch {
	case !status.Database:
		code = http.StatusServiceUnavailable
		overall = "unavailable"
	case !status.Redis:
		overall = "degraded"
	}

	c.JSON(code, gin.H{
		"status":    overall,
		"database":  status.Database,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}
