package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden  = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// Booking admission control.
	ErrWeeklyLimit     = New("WEEKLY_LIMIT_EXCEEDED", http.StatusConflict, "teacher reached the weekly booking limit (6 periods)")
	ErrDailyLimit      = New("DAILY_LIMIT_EXCEEDED", http.StatusConflict, "teacher reached the daily booking limit (3 periods)")
	ErrSlotTaken       = New("SLOT_TAKEN", http.StatusConflict, "slot already holds a booking")
	ErrMissingFields   = New("MISSING_FIELDS", http.StatusBadRequest, "please complete all required fields")
	ErrUnknownTeacher  = New("UNKNOWN_TEACHER", http.StatusBadRequest, "teacher is not on the roster")
	ErrWeekUnavailable = New("WEEK_UNAVAILABLE", http.StatusBadRequest, "this week is not open for booking yet")

	// Protected-action gate.
	ErrGateRequired = New("GATE_REQUIRED", http.StatusUnauthorized, "password confirmation required")
	ErrWrongPIN     = New("WRONG_PIN", http.StatusUnauthorized, "incorrect password")

	// Remote synchronization.
	ErrNotConfigured  = New("REMOTE_NOT_CONFIGURED", http.StatusPreconditionFailed, "remote endpoint is not configured")
	ErrRemoteAuth     = New("REMOTE_UNAUTHORIZED", http.StatusBadGateway, "remote endpoint rejected the access key")
	ErrRemoteNotFound = New("REMOTE_NOT_FOUND", http.StatusBadGateway, "remote document does not exist")
	ErrRemoteRejected = New("REMOTE_REJECTED", http.StatusBadGateway, "remote endpoint rejected the payload")
	ErrRemoteFailed   = New("REMOTE_FAILED", http.StatusBadGateway, "remote request failed")
	ErrRemoteShape    = New("REMOTE_SHAPE", http.StatusBadGateway, "remote document has an unexpected shape")
	ErrOffline        = New("OFFLINE", http.StatusServiceUnavailable, "no network connectivity")
	ErrNetwork        = New("NETWORK_FAILURE", http.StatusServiceUnavailable, "network request failed")

	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the given error code.
func Is(err error, code string) bool {
	e := FromError(err)
	return e != nil && e.Code == code
}
