// Package aggregate builds the date and deadline views over a user's tasks.
package aggregate

import (
	"context"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/repository"
)

// DefaultNearingDueDays is the window used for a negative threshold.
const DefaultNearingDueDays = 3

// Engine derives views from the folder and task repositories.
type Engine struct {
	folders repository.FolderRepository
	tasks   repository.TaskRepository
	now     func() time.Time
	loc     *time.Location
	limit   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for the nearing-due window.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocation sets the location in which calendar days are compared.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithFanOutLimit caps the number of folders read concurrently. Zero or a
// negative value means no limit.
func WithFanOutLimit(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// NewEngine creates an aggregation engine.
func NewEngine(folders repository.FolderRepository, tasks repository.TaskRepository, opts ...Option) *Engine {
	e := &Engine{
		folders: folders,
		tasks:   tasks,
		now:     time.Now,
		loc:     time.Local,
		limit:   -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the location calendar days are compared in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// TasksByDate returns every task of the user whose start date falls on the
// same calendar day as date.
func (e *Engine) TasksByDate(ctx context.Context, userID string, date time.Time) ([]domain.Task, error) {
	all, err := e.tasks.ListAllTasksForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Task, 0)
	for _, t := range all {
		if t.StartsOn(date, e.loc) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// TasksByDateInFolder applies the same day filter to each status bucket of
// one folder.
func (e *Engine) TasksByDateInFolder(ctx context.Context, userID, folderID string, date time.Time) (domain.TaskBuckets, error) {
	buckets, err := e.tasks.ListTasksInFolder(ctx, userID, folderID, repository.DefaultOrderField)
	if err != nil {
		return domain.TaskBuckets{}, err
	}
	return buckets.Filter(func(t domain.Task) bool {
		return t.StartsOn(date, e.loc)
	}), nil
}

// NearingDueTasks returns the open tasks whose end date lies between now and
// thresholdDays from now, inclusive. Zero keeps only tasks due right now; a
// negative threshold uses DefaultNearingDueDays.
func (e *Engine) NearingDueTasks(ctx context.Context, userID string, thresholdDays int) ([]domain.Task, error) {
	if thresholdDays < 0 {
		thresholdDays = DefaultNearingDueDays
	}

	ids, err := e.folders.ListFolderIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	perFolder, err := repository.FanOut(ctx, e.limit, "nearing due tasks", ids, func(ctx context.Context, i int) ([]domain.Task, error) {
		buckets, err := e.tasks.ListTasksInFolder(ctx, userID, ids[i], repository.DefaultOrderField)
		if err != nil {
			return nil, err
		}
		return nearingDue(buckets, now, float64(thresholdDays)), nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Task, 0)
	for _, tasks := range perFolder {
		result = append(result, tasks...)
	}
	return result, nil
}

func nearingDue(buckets domain.TaskBuckets, now time.Time, threshold float64) []domain.Task {
	open := make([]domain.Task, 0, len(buckets.Pending)+len(buckets.InProgress))
	open = append(open, buckets.Pending...)
	open = append(open, buckets.InProgress...)

	due := make([]domain.Task, 0)
	for _, t := range open {
		days, ok := t.DaysUntilDue(now)
		if ok && days >= 0 && days <= threshold {
			due = append(due, t)
		}
	}
	return due
}
