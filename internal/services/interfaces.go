package services

import (
	"context"
	"time"

	"task-manager/internal/domain"
)

// CreateFolderInput carries the client-supplied fields of a new folder
type CreateFolderInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateTaskInput carries the client-supplied fields of a new task. Empty
// Status and Priority select Pending and Medium.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// FolderService handles folder lifecycle operations
type FolderService interface {
	ListFolders(ctx context.Context, userID string) Result
	GetFolder(ctx context.Context, userID, folderID string) Result
	CreateFolder(ctx context.Context, userID string, input CreateFolderInput) Result
	UpdateFolder(ctx context.Context, userID, folderID string, patch domain.FolderPatch) Result
	DeleteFolder(ctx context.Context, userID, folderID string) Result
}

// TaskService handles task lifecycle operations
type TaskService interface {
	ListAllTasks(ctx context.Context, userID string) Result
	ListTasksInFolder(ctx context.Context, userID, folderID, orderBy string) Result
	GetTask(ctx context.Context, userID, folderID, taskID string) Result
	CreateTask(ctx context.Context, userID, folderID string, input CreateTaskInput) Result
	UpdateTask(ctx context.Context, userID, folderID, taskID string, patch domain.TaskPatch) Result
	CompleteTask(ctx context.Context, userID, folderID, taskID string) Result
	DeleteTask(ctx context.Context, userID, folderID, taskID string) Result
}

// AgendaService handles the date and deadline views
type AgendaService interface {
	TasksByDate(ctx context.Context, userID string, date time.Time) Result
	TasksByDateInFolder(ctx context.Context, userID, folderID string, date time.Time) Result
	NearingDueTasks(ctx context.Context, userID string, days *int) Result
}
