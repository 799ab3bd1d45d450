package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/aggregate"
	"task-manager/internal/validation"
)

// agendaServiceImpl implements the AgendaService interface
type agendaServiceImpl struct {
	serviceBase
	engine      *aggregate.Engine
	validator   *validation.TaskValidator
	defaultDays int
}

// NewAgendaService creates a new AgendaService instance. defaultDays is used
// when a nearing-due request does not name a window.
func NewAgendaService(engine *aggregate.Engine, validator *validation.TaskValidator, logger zerolog.Logger, defaultDays int) AgendaService {
	if defaultDays <= 0 {
		defaultDays = aggregate.DefaultNearingDueDays
	}
	return &agendaServiceImpl{
		serviceBase: serviceBase{logger: logger},
		engine:      engine,
		validator:   validator,
		defaultDays: defaultDays,
	}
}

// TasksByDate returns the user's tasks starting on date
func (s *agendaServiceImpl) TasksByDate(ctx context.Context, userID string, date time.Time) Result {
	const op = "tasks by date"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	tasks, err := s.engine.TasksByDate(ctx, userID, date)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Tasks retrieved successfully", tasks)
}

// TasksByDateInFolder returns the folder's tasks starting on date, grouped by status
func (s *agendaServiceImpl) TasksByDateInFolder(ctx context.Context, userID, folderID string, date time.Time) Result {
	const op = "folder tasks by date"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	buckets, err := s.engine.TasksByDateInFolder(ctx, userID, folderID, date)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Tasks retrieved successfully", buckets)
}

// NearingDueTasks returns open tasks due within days. A nil days selects the
// configured default window; zero keeps only tasks due right now.
func (s *agendaServiceImpl) NearingDueTasks(ctx context.Context, userID string, days *int) Result {
	const op = "nearing due tasks"
	window := s.defaultDays
	if days != nil {
		window = *days
	}
	ve := validation.NewValidationError()
	if window < 0 {
		ve.AddInvalidRangeError("days", window, "must not be negative")
	}
	ve.Merge(s.validator.ValidateIDs(map[string]string{"user_id": userID}))
	if err := ve.ErrOrNil(); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	tasks, err := s.engine.NearingDueTasks(ctx, userID, window)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Tasks retrieved successfully", tasks)
}
