// File: services/tasks/runner.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"padelwatch/models"
	"padelwatch/services/search"
	"padelwatch/utils"
)

// Progress checkpoints. The span between resolving and assembling is
// divided evenly across locations.
const (
	progressResolving  = 5
	progressSearchSpan = 80
	progressAssembling = 85
)

// Start validates the spec, records a pending task and schedules its
// execution. The returned id is the polling handle.
func (s *DefaultTaskService) Start(identity models.Identity, spec models.SearchSpec) (string, error) {
	if err := search.ValidateSpec(spec); err != nil {
		return "", err
	}

	task := &models.SearchTask{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Status:      models.TaskStatusPending,
		CurrentStep: "queued",
		CreatedAt:   time.Now().UTC(),
	}
	s.store.put(task)

	go s.run(task.ID, identity, spec)

	utils.GetLogger().Info("search task started",
		zap.String("taskID", task.ID),
		zap.String("userID", identity.UserID),
		zap.String("date", spec.Date))
	return task.ID, nil
}

// Status returns a snapshot of the task. Polling a terminal task is
// idempotent and side-effect free.
func (s *DefaultTaskService) Status(taskID string) (*models.SearchTask, error) {
	task, ok := s.store.get(taskID)
	if !ok {
		return nil, NewTaskNotFoundError(taskID)
	}
	return &task, nil
}

// Cancel marks a pending or running task cancelled. The execution loop
// observes the state between locations; per-location work already
// issued runs to completion. Cancelling a terminal task is a no-op.
func (s *DefaultTaskService) Cancel(taskID string) error {
	if _, ok := s.store.get(taskID); !ok {
		return NewTaskNotFoundError(taskID)
	}
	if s.store.update(taskID, func(t *models.SearchTask) {
		now := time.Now().UTC()
		t.Status = models.TaskStatusCancelled
		t.CurrentStep = "cancelled"
		t.CompletedAt = &now
	}) {
		utils.GetLogger().Info("search task cancelled", zap.String("taskID", taskID))
	}
	return nil
}

// PruneOlderThan drops terminal tasks older than maxAge and returns the
// number removed.
func (s *DefaultTaskService) PruneOlderThan(maxAge time.Duration) int {
	return s.store.pruneOlderThan(time.Now().UTC().Add(-maxAge))
}

// run drives the search one location at a time. It uses a detached
// context: the task outlives the request that started it, and
// cancellation is cooperative between locations, never preemptive.
func (s *DefaultTaskService) run(taskID string, identity models.Identity, spec models.SearchSpec) {
	logger := utils.GetLogger()
	ctx := context.Background()

	s.store.update(taskID, func(t *models.SearchTask) {
		now := time.Now().UTC()
		t.Status = models.TaskStatusRunning
		t.StartedAt = &now
		t.CurrentStep = "resolving locations"
		t.Progress = progressResolving
	})

	locations, err := s.Search.ResolveLocations(ctx, spec.LocationIDs)
	if err != nil {
		s.finishFailed(taskID, err)
		return
	}
	s.store.update(taskID, func(t *models.SearchTask) {
		t.TotalLocations = len(locations)
	})

	result := &models.SearchResult{
		Date:            spec.Date,
		Window:          spec.Window,
		DurationMinutes: spec.DurationMinutes,
	}

	for i, loc := range locations {
		if s.isCancelled(taskID) {
			logger.Info("search task stopped at cancellation point",
				zap.String("taskID", taskID),
				zap.Int("processed", i))
			return
		}

		name := loc.Name
		s.store.update(taskID, func(t *models.SearchTask) {
			t.CurrentStep = fmt.Sprintf("searching %s", name)
		})

		lr, err := s.Search.SearchLocation(ctx, identity, loc, spec)
		if err != nil {
			logger.Warn("task location search failed",
				zap.String("taskID", taskID),
				zap.String("locationID", loc.ID),
				zap.Error(err))
			result.Failures = append(result.Failures, models.LocationFailure{
				LocationID: loc.ID,
				Code:       search.FailureCode(err),
				Message:    err.Error(),
			})
		} else {
			result.Locations = append(result.Locations, lr)
			result.TotalSlots += search.SlotCount(lr)
		}

		processed := i + 1
		s.store.update(taskID, func(t *models.SearchTask) {
			t.ProcessedLocations = processed
			t.Progress = progressResolving + progressSearchSpan*processed/len(locations)
		})
	}

	if s.isCancelled(taskID) {
		logger.Info("search task cancelled after last location", zap.String("taskID", taskID))
		return
	}

	s.store.update(taskID, func(t *models.SearchTask) {
		t.CurrentStep = "assembling results"
		t.Progress = progressAssembling
	})
	result.PerformedAt = time.Now().UTC()

	if s.store.update(taskID, func(t *models.SearchTask) {
		now := time.Now().UTC()
		t.Status = models.TaskStatusCompleted
		t.CurrentStep = "completed"
		t.Progress = 100
		t.Result = result
		t.CompletedAt = &now
	}) {
		logger.Info("search task completed",
			zap.String("taskID", taskID),
			zap.Int("locations", len(result.Locations)),
			zap.Int("failures", len(result.Failures)),
			zap.Int("totalSlots", result.TotalSlots))
	}
}

func (s *DefaultTaskService) isCancelled(taskID string) bool {
	task, ok := s.store.get(taskID)
	return !ok || task.Status == models.TaskStatusCancelled
}

// finishFailed records the terminal failed state with a readable
// message. A task never stays in running after its goroutine exits.
func (s *DefaultTaskService) finishFailed(taskID string, err error) {
	utils.GetLogger().Warn("search task failed",
		zap.String("taskID", taskID),
		zap.Error(err))
	s.store.update(taskID, func(t *models.SearchTask) {
		now := time.Now().UTC()
		t.Status = models.TaskStatusFailed
		t.CurrentStep = "failed"
		t.Error = err.Error()
		t.CompletedAt = &now
	})
}
