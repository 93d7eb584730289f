// File: services/notification/errors.go
package notification

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeNotificationNotFound marks lookups for an unknown notification id.
	ErrCodeNotificationNotFound = "notification_not_found"
	// ErrCodeForbidden marks access to a notification on another user's order.
	ErrCodeForbidden = "forbidden"
)

// NotificationError is the standard error shape for this service.
type NotificationError struct {
	Code    string
	Message string
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotificationNotFoundError(id string) *NotificationError {
	return &NotificationError{
		Code:    ErrCodeNotificationNotFound,
		Message: fmt.Sprintf("notification %q not found", id),
	}
}

func NewForbiddenError(id string) *NotificationError {
	return &NotificationError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("notification %q belongs to another user", id),
	}
}

// CodeOf extracts the notification error code, or "" for foreign errors.
func CodeOf(err error) string {
	var ne *NotificationError
	if errors.As(err, &ne) {
		return ne.Code
	}
	return ""
}
