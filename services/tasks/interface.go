// File: services/tasks/interface.go
package tasks

import (
	"fmt"
	"time"

	"padelwatch/models"
	"padelwatch/services/search"
)

// TaskService runs searches in the background and exposes a pollable
// status handle per task. Start never blocks on the search itself.
type TaskService interface {
	Start(identity models.Identity, spec models.SearchSpec) (string, error)
	Status(taskID string) (*models.SearchTask, error)
	Cancel(taskID string) error
	PruneOlderThan(maxAge time.Duration) int
}

// DefaultTaskService implements TaskService on top of the search
// service, driving its per-location loop so progress is visible
// between locations.
type DefaultTaskService struct {
	Search search.SearchService
	store  *taskStore
}

func NewDefaultTaskService(searchSvc search.SearchService) (*DefaultTaskService, error) {
	if searchSvc == nil {
		return nil, fmt.Errorf("task service initialization error: search service is nil")
	}
	return &DefaultTaskService{Search: searchSvc, store: newTaskStore()}, nil
}
