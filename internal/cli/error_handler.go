package cli

import (
	"errors"
	"fmt"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler turns command failures into messages fit for a terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) && !apperrors.IsAppError(err) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if apperrors.IsAppError(err) {
		return fmt.Errorf("failed to %s: %s", operation, apperrors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}
