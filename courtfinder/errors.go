package courtfinder

import (
	"errors"
	"fmt"
)

// Platform error codes.
const (
	ErrCodeUnavailable = "upstream_unavailable" // network or timeout failure
	ErrCodeRejected    = "upstream_rejected"    // non-2xx response
	ErrCodeMalformed   = "upstream_malformed"   // body could not be parsed at all
)

// Error describes a failed call to a booking platform.
type Error struct {
	Code     string
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Provider, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the platform error code, or "" for other errors.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsRetryable reports whether the call may succeed on a retry. Malformed
// payloads are not retried; the platform would return the same body.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeUnavailable, ErrCodeRejected:
		return true
	}
	return false
}
