// File: handlers/tasks.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padelwatch/middleware"
	"padelwatch/services/tasks"
)

// TaskHandler serves the background search task endpoints.
type TaskHandler struct {
	Tasks tasks.TaskService
}

func NewTaskHandler(taskSvc tasks.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: taskSvc}
}

// StartSearchTaskHandler handles POST /api/search/tasks. The search runs
// in the background; the reply carries the id to poll.
func (h *TaskHandler) StartSearchTaskHandler(c *gin.Context) {
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

	taskID, err := h.Tasks.Start(middleware.IdentityFrom(c), spec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"taskId": taskID})
}

// GetSearchTaskHandler handles GET /api/search/tasks/:id.
func (h *TaskHandler) GetSearchTaskHandler(c *gin.Context) {
	task, err := h.Tasks.Status(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CancelSearchTaskHandler handles POST /api/search/tasks/:id/cancel.
// Cancelling a finished task changes nothing; the reply carries the
// task as it stands.
func (h *TaskHandler) CancelSearchTaskHandler(c *gin.Context) {
	taskID := c.Param("id")
	if err := h.Tasks.Cancel(taskID); err != nil {
		respondError(c, err)
		return
	}
	task, err := h.Tasks.Status(taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
