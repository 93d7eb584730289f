// File: handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/services/admin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Admin admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc admin.AdminService) *AdminHandler {
	return &AdminHandler{Admin: adminSvc}
}

// ClearCacheHandler handles POST /api/admin/cache/clear. An empty body
// clears everything; olderThanMinutes narrows the cut.
func (ah *AdminHandler) ClearCacheHandler(c *gin.Context) {
	var input struct {
		OlderThanMinutes *int `json:"olderThanMinutes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}

	report, err := ah.Admin.ClearCache(c.Request.Context(), input.OlderThanMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RefreshAllDataHandler handles POST /api/admin/refresh-all.
func (ah *AdminHandler) RefreshAllDataHandler(c *gin.Context) {
	report, err := ah.Admin.RefreshAllData(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
