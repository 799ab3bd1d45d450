package services

import (
	"github.com/rs/zerolog"

	apperrors "task-manager/internal/errors"
)

type serviceBase struct {
	logger zerolog.Logger
}

// fail logs the cause when it is not a client error and wraps it in a Result
func (b serviceBase) fail(operation, userID string, err error) Result {
	if apperrors.ShouldLogError(err) {
		b.logger.Error().
			Err(err).
			Str("operation", operation).
			Str("user_id", userID).
			Str("code", apperrors.GetErrorCode(err)).
			Msg("operation failed")
	} else {
		b.logger.Debug().
			Err(err).
			Str("operation", operation).
			Str("user_id", userID).
			Msg("rejected request")
	}
	return Fail(err)
}

func (b serviceBase) ok(operation, userID, message string, data interface{}) Result {
	b.logger.Debug().
		Str("operation", operation).
		Str("user_id", userID).
		Msg(message)
	return Ok(message, data)
}
