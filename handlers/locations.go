// File: handlers/locations.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/services/locations"
)

// LocationHandler serves the tracked club endpoints.
type LocationHandler struct {
	Locations locations.LocationService
}

func NewLocationHandler(locationSvc locations.LocationService) *LocationHandler {
	return &LocationHandler{Locations: locationSvc}
}

// AddLocationHandler handles POST /api/locations. The club is onboarded
// by its booking platform slug.
func (h *LocationHandler) AddLocationHandler(c *gin.Context) {
	var input struct {
		Slug     string `json:"slug" binding:"required"`
		Provider string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	location, courts, created, err := h.Locations.AddBySlug(c.Request.Context(), input.Provider, input.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"location": location, "courts": courts, "created": created})
}

// ListLocationsHandler handles GET /api/locations.
func (h *LocationHandler) ListLocationsHandler(c *gin.Context) {
	list, err := h.Locations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": list})
}

// GetLocationHandler handles GET /api/locations/:id.
func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	location, err := h.Locations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// GetLocationCourtsHandler handles GET /api/locations/:id/courts.
func (h *LocationHandler) GetLocationCourtsHandler(c *gin.Context) {
	courts, err := h.Locations.GetCourts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": courts})
}

// DeleteLocationHandler handles DELETE /api/locations/:id.
func (h *LocationHandler) DeleteLocationHandler(c *gin.Context) {
	if err := h.Locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
