package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/services"
)

// statusFor maps a service result onto an HTTP status.
func statusFor(r services.Result, success int) int {
	if r.Success {
		return success
	}
	errType, ok := r.ErrorType()
	if !ok {
		return http.StatusInternalServerError
	}
	switch errType {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respond(c *gin.Context, success int, r services.Result) {
	c.JSON(statusFor(r, success), r)
}

// reject answers a request the transport could not decode.
func reject(c *gin.Context, err error) {
	respond(c, http.StatusOK, services.Fail(err))
}

func (h *handlerImpl) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		reject(c, apperrors.NewInvalidInputError("body", nil, "request body must be valid JSON"))
		return false
	}
	return true
}

// queryDate reads a required date query parameter in the handler's location.
func (h *handlerImpl) queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		reject(c, apperrors.NewInvalidInputError("date", nil, "is required"))
		return time.Time{}, false
	}
	date, err := domain.ParseDateTime(raw, h.loc)
	if err != nil {
		reject(c, apperrors.NewInvalidInputError("date", raw, "expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return date, true
}

// queryDays reads the optional days parameter; nil when absent.
func queryDays(c *gin.Context) (*int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return nil, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		reject(c, apperrors.NewInvalidInputError("days", raw, "must be a whole number"))
		return nil, false
	}
	return &days, true
}

// parseDate converts an optional wire date into the domain form.
func (h *handlerImpl) parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := domain.ParseDateTime(*raw, h.loc)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(field, *raw, "expected RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// parseOptionalDate converts a patch date, keeping omitted and null intact.
func (h *handlerImpl) parseOptionalDate(field string, raw domain.Optional[string]) (domain.Optional[time.Time], error) {
	if !raw.HasValue() {
		return domain.Optional[time.Time]{Set: raw.Set, Null: raw.Null}, nil
	}
	t, err := domain.ParseDateTime(raw.Value, h.loc)
	if err != nil {
		return domain.Optional[time.Time]{}, apperrors.NewInvalidInputError(field, raw.Value, "expected RFC3339 or YYYY-MM-DD")
	}
	return domain.Some(t), nil
}
