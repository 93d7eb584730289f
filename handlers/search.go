// File: handlers/search.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/middleware"
	"padelwatch/services/search"
)

// SearchHandler serves the synchronous search endpoint.
type SearchHandler struct {
	Search search.SearchService
}

func NewSearchHandler(searchSvc search.SearchService) *SearchHandler {
	return &SearchHandler{Search: searchSvc}
}

// RunSearchHandler handles POST /api/search.
func (h *SearchHandler) RunSearchHandler(c *gin.Context) {
	var input searchSpecInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	spec, err := input.toSpec()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Search.Search(c.Request.Context(), middleware.IdentityFrom(c), spec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
