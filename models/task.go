package models

import "time"

// Search task states. Pending and running are the only non-terminal
// states; a task in a terminal state never changes again.
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
	TaskStatusCancelled = "cancelled"
)

// SearchTask is the pollable status handle of one asynchronous search.
// Tasks live in memory only and do not survive a restart.
type SearchTask struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"userId"`
	Status             string        `json:"status"`
	Progress           int           `json:"progress"`
	CurrentStep        string        `json:"currentStep,omitempty"`
	TotalLocations     int           `json:"totalLocations"`
	ProcessedLocations int           `json:"processedLocations"`
	Error              string        `json:"error,omitempty"`
	Result             *SearchResult `json:"result,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	StartedAt          *time.Time    `json:"startedAt,omitempty"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty"`
}

// Terminal reports whether the task has reached a final state.
func (t *SearchTask) Terminal() bool {
	switch t.Status {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		return true
	}
	return false
}
