// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Reminder domain errors.
var (
	// ErrReminderConfigNotFound is returned when no reminder configuration is stored for a user.
	ErrReminderConfigNotFound = errors.New("reminder configuration not found")

	// ErrInvalidTimeOfDay is returned when the time of day is not in HH:MM format.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrInvalidDaysBeforeDue is returned when days before due is negative.
	ErrInvalidDaysBeforeDue = errors.New("invalid days before due")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: RMD-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTimeOfDay     ReminderErrorCode = "RMD-010001"
	ErrCodeInvalidDaysBeforeDue ReminderErrorCode = "RMD-010002"
	ErrCodeMissingReminderField ReminderErrorCode = "RMD-010003"

	// Check errors (02XXXX)
	ErrCodeReminderCheckFailed ReminderErrorCode = "RMD-020001"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
