// Package repository reads and writes task folders and tasks through the
// document store, translating store outcomes into the application's error
// taxonomy.
package repository

import (
	"context"
	"time"

	"task-manager/internal/domain"
)

// FolderRepository defines the folder operations used by the services.
type FolderRepository interface {
	ListFolders(ctx context.Context, userID string) ([]domain.FolderWithStats, error)
	GetFolder(ctx context.Context, userID, folderID string) (*domain.TaskFolder, error)
	CreateFolder(ctx context.Context, userID string, folder domain.TaskFolder) (*domain.TaskFolder, error)
	UpdateFolder(ctx context.Context, userID, folderID string, patch domain.FolderPatch) error
	DeleteFolder(ctx context.Context, userID, folderID string) error
	ListFolderIDs(ctx context.Context, userID string) ([]string, error)
}

// TaskRepository defines the task operations used by the services and the
// aggregation engine.
type TaskRepository interface {
	ListAllTasksForUser(ctx context.Context, userID string) ([]domain.Task, error)
	ListTasksInFolder(ctx context.Context, userID, folderID, orderField string) (domain.TaskBuckets, error)
	GetTask(ctx context.Context, userID, folderID, taskID string) (*domain.Task, error)
	CreateTask(ctx context.Context, userID, folderID string, task domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, folderID, taskID string, patch domain.TaskPatch) error
	DeleteTask(ctx context.Context, userID, folderID, taskID string) error
}

// DefaultOrderField is the field ListTasksInFolder sorts by when none is given.
const DefaultOrderField = domain.FieldStartDate

// Option configures a repository.
type Option func(*options)

type options struct {
	now         func() time.Time
	fanOutLimit int
	loc         *time.Location
}

func defaultOptions() options {
	return options{now: time.Now, fanOutLimit: -1, loc: time.UTC}
}

// WithClock sets the clock used to stamp new folders.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithFanOutLimit caps the number of concurrent per-folder reads. Zero or a
// negative value means no limit.
func WithFanOutLimit(n int) Option {
	return func(o *options) {
		o.fanOutLimit = n
	}
}

// WithLocation sets the zone stored dates without one are read in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
