// File: services/orders/errors.go
package orders

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeOrderNotFound marks lookups for an order id that does not exist.
	ErrCodeOrderNotFound = "order_not_found"
	// ErrCodeForbidden marks access to an order owned by another user.
	ErrCodeForbidden = "forbidden"
)

// OrderError is the standard error shape for the orders service.
type OrderError struct {
	Code    string
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewOrderNotFoundError(orderID string) *OrderError {
	return &OrderError{
		Code:    ErrCodeOrderNotFound,
		Message: fmt.Sprintf("search order %q not found", orderID),
	}
}

func NewForbiddenError(orderID string) *OrderError {
	return &OrderError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("search order %q belongs to another user", orderID),
	}
}

// CodeOf extracts the order error code, or "" for foreign errors.
func CodeOf(err error) string {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}
