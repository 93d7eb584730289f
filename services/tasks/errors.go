package tasks

import (
	"errors"
	"fmt"
)

const ErrCodeTaskNotFound = "task_not_found"

// TaskError carries a stable machine code for the transport layer.
type TaskError struct {
	Code    string
	Message string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewTaskNotFoundError(id string) error {
	return &TaskError{Code: ErrCodeTaskNotFound, Message: fmt.Sprintf("task %q not found", id)}
}

// CodeOf extracts the machine code from a task error, or "" when the
// error did not originate here.
func CodeOf(err error) string {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
