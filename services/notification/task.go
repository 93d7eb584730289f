package notification

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeMatchDispatch = "notification:dispatch"

// MatchPayload is the queue payload for delivering one match alert.
type MatchPayload struct {
	NotificationID string `json:"notificationId"`
}

func NewMatchDispatchTask(payload MatchPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMatchDispatch, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}
