package search

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidParameter   = "invalid_parameter"
	ErrCodeLocationNotFound   = "location_not_found"
	ErrCodeCacheWriteConflict = "cache_write_conflict"
)

// SearchError carries a stable machine code alongside the message so
// the transport layer can map failures without string matching.
type SearchError struct {
	Code    string
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func NewInvalidParameterError(msg string) error {
	return &SearchError{Code: ErrCodeInvalidParameter, Message: msg}
}

func NewLocationNotFoundError(id string) error {
	return &SearchError{Code: ErrCodeLocationNotFound, Message: fmt.Sprintf("location %q not found", id)}
}

func NewCacheWriteConflictError(locationID, date string, err error) error {
	return &SearchError{
		Code:    ErrCodeCacheWriteConflict,
		Message: fmt.Sprintf("conflicting cache write for location %s on %s", locationID, date),
		Err:     err,
	}
}

// CodeOf extracts the machine code from a search error, or "" when the
// error did not originate here.
func CodeOf(err error) string {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
