// File: handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"padelwatch/courtfinder"
	"padelwatch/models"
	"padelwatch/services/notification"
	"padelwatch/services/orders"
	"padelwatch/services/search"
	"padelwatch/services/tasks"
	"padelwatch/utils"
)

// statusForError maps service error codes onto HTTP statuses. Unknown
// errors are internal.
func statusForError(err error) int {
	switch search.CodeOf(err) {
	case search.ErrCodeInvalidParameter:
		return http.StatusBadRequest
	case search.ErrCodeLocationNotFound:
		return http.StatusNotFound
	case search.ErrCodeCacheWriteConflict:
		return http.StatusInternalServerError
	}
	switch orders.CodeOf(err) {
	case orders.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case orders.ErrCodeForbidden:
		return http.StatusForbidden
	}
	switch notification.CodeOf(err) {
	case notification.ErrCodeNotificationNotFound:
		return http.StatusNotFound
	case notification.ErrCodeForbidden:
		return http.StatusForbidden
	}
	if tasks.CodeOf(err) == tasks.ErrCodeTaskNotFound {
		return http.StatusNotFound
	}
	if courtfinder.CodeOf(err) != "" {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes the error as the standard JSON body. Internal
// errors are logged here so handlers stay thin.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// searchSpecInput is the wire shape of a search specification. Times are
// wall clock strings; duration defaults to a standard padel booking.
type searchSpecInput struct {
	Date            string   `json:"date" binding:"required"`
	StartTime       string   `json:"startTime" binding:"required"`
	EndTime         string   `json:"endTime" binding:"required"`
	DurationMinutes int      `json:"durationMinutes"`
	LocationIDs     []string `json:"locationIds"`
	CourtType       string   `json:"courtType"`
	CourtConfig     string   `json:"courtConfig"`
	LiveSearch      *bool    `json:"liveSearch"`
	ForceLiveSearch bool     `json:"forceLiveSearch"`
}

func (in searchSpecInput) toSpec() (models.SearchSpec, error) {
	start, err := models.ParseClock(in.StartTime)
	if err != nil {
		return models.SearchSpec{}, search.NewInvalidParameterError(err.Error())
	}
	end, err := models.ParseClock(in.EndTime)
	if err != nil {
		return models.SearchSpec{}, search.NewInvalidParameterError(err.Error())
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = 90
	}
	live := true
	if in.LiveSearch != nil {
		live = *in.LiveSearch
	}

	return models.SearchSpec{
		Date:            in.Date,
		Window:          models.Window{Start: start, End: end},
		DurationMinutes: duration,
		LocationIDs:     in.LocationIDs,
		CourtType:       in.CourtType,
		CourtConfig:     in.CourtConfig,
		LiveSearch:      live,
		ForceLiveSearch: in.ForceLiveSearch,
	}, nil
}
