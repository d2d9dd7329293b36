// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Recurring schedule domain errors.
var (
	// ErrRecurringScheduleNotFound is returned when a recurring schedule is not found.
	ErrRecurringScheduleNotFound = errors.New("recurring schedule not found")

	// ErrUnauthorizedScheduleAccess is returned when a user accesses a schedule they do not own.
	ErrUnauthorizedScheduleAccess = errors.New("unauthorized access to recurring schedule")

	// ErrInvalidScheduleAmount is returned when the amount is zero or negative.
	ErrInvalidScheduleAmount = errors.New("invalid schedule amount")

	// ErrInvalidFrequency is returned when the frequency is not weekly, monthly, quarterly or yearly.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidAnchorDay is returned when a day-of-week or day-of-month anchor is out of range.
	ErrInvalidAnchorDay = errors.New("invalid anchor day")

	// ErrInvalidScheduleKind is returned when the kind is neither expense nor income.
	ErrInvalidScheduleKind = errors.New("invalid schedule kind")

	// ErrInvalidScheduleDates is returned when the end date precedes the start date.
	ErrInvalidScheduleDates = errors.New("end date must not be before start date")

	// ErrMissingDescription is returned when the description is empty.
	ErrMissingDescription = errors.New("description is required")

	// ErrInvalidHorizon is returned when the projection horizon is out of range.
	ErrInvalidHorizon = errors.New("invalid horizon")

	// ErrScheduleConflict is returned when a schedule was advanced concurrently by another writer.
	ErrScheduleConflict = errors.New("recurring schedule was modified concurrently")

	// ErrDuplicateOccurrence is returned when an occurrence was already recorded in the transaction store.
	ErrDuplicateOccurrence = errors.New("occurrence already generated")
)

// RecurringErrorCode defines error codes for recurring schedule errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeScheduleNotFound      RecurringErrorCode = "REC-010001"
	ErrCodeUnauthorizedSchedule  RecurringErrorCode = "REC-010002"
	ErrCodeInvalidScheduleAmount RecurringErrorCode = "REC-010003"
	ErrCodeInvalidFrequency      RecurringErrorCode = "REC-010004"
	ErrCodeInvalidAnchorDay      RecurringErrorCode = "REC-010005"
	ErrCodeInvalidScheduleKind   RecurringErrorCode = "REC-010006"
	ErrCodeInvalidScheduleDates  RecurringErrorCode = "REC-010007"
	ErrCodeMissingScheduleFields RecurringErrorCode = "REC-010008"
	ErrCodeInvalidHorizon        RecurringErrorCode = "REC-010009"

	// Processing errors (02XXXX)
	ErrCodeScheduleConflict    RecurringErrorCode = "REC-020001"
	ErrCodeDuplicateOccurrence RecurringErrorCode = "REC-020002"
	ErrCodeDueProcessingFailed RecurringErrorCode = "REC-020003"
)

// RecurringError represents a recurring schedule error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
