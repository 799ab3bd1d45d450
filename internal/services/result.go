package services

import (
	"errors"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

// Result is the uniform envelope every service operation returns. The cause
// of a failure is kept for logging and status mapping but never serialized.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`

	err error
}

// Ok returns a successful result carrying data
func Ok(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail returns a failed result whose message is safe to show to clients.
// Validation failures carry their field errors as data.
func Fail(err error) Result {
	r := Result{Success: false, Message: apperrors.GetUserMessage(err), err: err}

	var ve *validation.ValidationError
	if errors.As(err, &ve) && ve.HasErrors() {
		r.Data = ve.Errors
	}
	return r
}

// Err returns the cause of a failed result
func (r Result) Err() error {
	return r.err
}

// ErrorType returns the application error type of a failed result
func (r Result) ErrorType() (apperrors.ErrorType, bool) {
	if appErr, ok := apperrors.AsAppError(r.err); ok {
		return appErr.Type, true
	}
	return 0, false
}

// invalid wraps a field-level validation failure in the error taxonomy
func invalid(err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return apperrors.NewValidationError(err.Error(), err)
}
