package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	serviceBase
	tasks     repository.TaskRepository
	validator *validation.TaskValidator
	now       func() time.Time
}

// NewTaskService creates a new TaskService instance
func NewTaskService(tasks repository.TaskRepository, validator *validation.TaskValidator, logger zerolog.Logger, now func() time.Time) TaskService {
	if now == nil {
		now = time.Now
	}
	return &taskServiceImpl{
		serviceBase: serviceBase{logger: logger},
		tasks:       tasks,
		validator:   validator,
		now:         now,
	}
}

// ListAllTasks returns every task of the user across folders
func (s *taskServiceImpl) ListAllTasks(ctx context.Context, userID string) Result {
	const op = "list all tasks"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	tasks, err := s.tasks.ListAllTasksForUser(ctx, userID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Tasks retrieved successfully", tasks)
}

// ListTasksInFolder returns the folder's tasks grouped by status
func (s *taskServiceImpl) ListTasksInFolder(ctx context.Context, userID, folderID, orderBy string) Result {
	const op = "list folder tasks"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}
	if err := s.validator.ValidateOrderField(orderBy); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	buckets, err := s.tasks.ListTasksInFolder(ctx, userID, folderID, orderBy)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Tasks retrieved successfully", buckets)
}

// GetTask returns a single task
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, folderID, taskID string) Result {
	const op = "get task"
	if err := s.validateTaskIDs(userID, folderID, taskID); err != nil {
		return s.fail(op, userID, err)
	}

	task, err := s.tasks.GetTask(ctx, userID, folderID, taskID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	if task == nil {
		return s.fail(op, userID, apperrors.NewNotFoundError("task", taskID))
	}
	return s.ok(op, userID, "Task retrieved successfully", task)
}

// CreateTask validates and stores a new task, applying the default status
// and priority when they are omitted
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, folderID string, input CreateTaskInput) Result {
	const op = "create task"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	task := domain.NewTask(folderID, input.Title)
	task.Description = input.Description
	task.StartDate = input.StartDate
	task.EndDate = input.EndDate
	if strings.TrimSpace(input.Status) != "" {
		task.Status = domain.Status(input.Status)
		if status, ok := domain.ParseStatus(input.Status); ok {
			task.Status = status
		}
	}
	if strings.TrimSpace(input.Priority) != "" {
		task.Priority = domain.Priority(input.Priority)
		if priority, ok := domain.ParsePriority(input.Priority); ok {
			task.Priority = priority
		}
	}

	if err := s.validator.ValidateTaskForCreation(task); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	created, err := s.tasks.CreateTask(ctx, userID, folderID, task)
	if err != nil {
		return s.fail(op, userID, err)
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("folder_id", folderID).
		Str("task_id", created.ID).
		Msg("created task")
	return Ok("Task created successfully", created)
}

// UpdateTask applies a partial update and returns the updated task
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, folderID, taskID string, patch domain.TaskPatch) Result {
	const op = "update task"
	if err := s.validateTaskIDs(userID, folderID, taskID); err != nil {
		return s.fail(op, userID, err)
	}
	if err := s.validator.ValidateTaskPatch(patch); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	return s.applyPatch(ctx, op, userID, folderID, taskID, patch, "Task updated successfully")
}

// CompleteTask marks the task completed and stamps its done date
func (s *taskServiceImpl) CompleteTask(ctx context.Context, userID, folderID, taskID string) Result {
	const op = "complete task"
	if err := s.validateTaskIDs(userID, folderID, taskID); err != nil {
		return s.fail(op, userID, err)
	}

	patch := domain.TaskPatch{
		Status:   domain.Some(domain.StatusCompleted.String()),
		DoneDate: domain.Some(s.now()),
	}
	return s.applyPatch(ctx, op, userID, folderID, taskID, patch, "Task completed successfully")
}

// DeleteTask removes a single task
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, folderID, taskID string) Result {
	const op = "delete task"
	if err := s.validateTaskIDs(userID, folderID, taskID); err != nil {
		return s.fail(op, userID, err)
	}

	if err := s.tasks.DeleteTask(ctx, userID, folderID, taskID); err != nil {
		return s.fail(op, userID, err)
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("folder_id", folderID).
		Str("task_id", taskID).
		Msg("deleted task")
	return Ok("Task deleted successfully", nil)
}

func (s *taskServiceImpl) applyPatch(ctx context.Context, op, userID, folderID, taskID string, patch domain.TaskPatch, message string) Result {
	if err := s.tasks.UpdateTask(ctx, userID, folderID, taskID, patch); err != nil {
		return s.fail(op, userID, err)
	}
	task, err := s.tasks.GetTask(ctx, userID, folderID, taskID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	if task == nil {
		return s.fail(op, userID, apperrors.NewNotFoundError("task", taskID))
	}
	return s.ok(op, userID, message, task)
}

func (s *taskServiceImpl) validateTaskIDs(userID, folderID, taskID string) error {
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID, "task_id": taskID}); err != nil {
		return invalid(err)
	}
	return nil
}
