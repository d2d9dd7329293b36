// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Push delivery errors.
var (
	// ErrPushSendFailed is returned when a notification fails to be delivered.
	ErrPushSendFailed = errors.New("failed to send notification")

	// ErrMissingPushTarget is returned when no delivery target is configured.
	ErrMissingPushTarget = errors.New("no delivery target configured")

	// ErrInvalidPushTemplate is returned when a reminder template cannot be rendered.
	ErrInvalidPushTemplate = errors.New("invalid notification template")
)

// PushErrorCode defines error codes for push delivery errors.
// Format: PUSH-XXYYYY where XX is category and YYYY is specific error.
type PushErrorCode string

const (
	// Target errors (01XXXX)
	ErrCodeMissingPushTarget PushErrorCode = "PUSH-010001"

	// Send errors (02XXXX)
	ErrCodePushSendFailed       PushErrorCode = "PUSH-020001"
	ErrCodePermanentPushFailure PushErrorCode = "PUSH-020002"
	ErrCodeTemporaryPushFailure PushErrorCode = "PUSH-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidPushTemplate PushErrorCode = "PUSH-030001"
)

// PushError represents a push delivery error with code and message.
type PushError struct {
	Code    PushErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PushError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PushError) Unwrap() error {
	return e.Err
}

// NewPushError creates a new PushError with the given code and message.
func NewPushError(code PushErrorCode, message string, err error) *PushError {
	return &PushError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
