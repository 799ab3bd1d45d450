package repository

import (
	"context"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/store"
)

// DocumentTaskRepository stores tasks at
// users/{uid}/task_folders/{fid}/tasks/{tid}.
type DocumentTaskRepository struct {
	store   store.Store
	mapper  *domain.Mapper
	folders *DocumentFolderRepository
	opts    options
}

// NewTaskRepository creates a task repository backed by s.
func NewTaskRepository(s store.Store, opts ...Option) *DocumentTaskRepository {
	o := applyOptions(opts)
	return &DocumentTaskRepository{
		store:   s,
		mapper:  domain.NewMapperIn(o.loc),
		folders: NewFolderRepository(s, opts...),
		opts:    o,
	}
}

// ListAllTasksForUser reads every folder's tasks concurrently and flattens
// them in folder order. If any folder read fails the whole call fails.
func (r *DocumentTaskRepository) ListAllTasksForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	docs, err := r.store.List(ctx, store.FoldersCollection(userID))
	if err != nil {
		return nil, apperrors.NewPersistenceError("list folders", err)
	}

	ids := make([]string, len(docs))
	titles := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		if title, ok := doc.Data[domain.FieldTitle].(string); ok {
			titles[i] = title
		}
	}

	perFolder, err := FanOut(ctx, r.opts.fanOutLimit, "list tasks", ids, func(ctx context.Context, i int) ([]domain.Task, error) {
		return r.readFolderTasks(ctx, userID, ids[i], titles[i])
	})
	if err != nil {
		return nil, err
	}

	all := make([]domain.Task, 0)
	for _, tasks := range perFolder {
		all = append(all, tasks...)
	}
	return all, nil
}

// readFolderTasks returns the tasks of one folder annotated with folderTitle.
// Store failures are returned unwrapped so fan-out callers can attribute them.
func (r *DocumentTaskRepository) readFolderTasks(ctx context.Context, userID, folderID, folderTitle string) ([]domain.Task, error) {
	docs, err := r.store.List(ctx, store.TasksCollection(userID, folderID))
	if err != nil {
		return nil, err
	}
	tasks, err := r.mapper.Task.FromDocuments(docs, folderID)
	if err != nil {
		return nil, err
	}
	annotate(tasks, folderTitle)
	return tasks, nil
}

// ListTasksInFolder returns the folder's tasks sorted ascending by orderField
// and grouped by status.
func (r *DocumentTaskRepository) ListTasksInFolder(ctx context.Context, userID, folderID, orderField string) (domain.TaskBuckets, error) {
	if orderField == "" {
		orderField = DefaultOrderField
	}

	folder, err := r.folders.GetFolder(ctx, userID, folderID)
	if err != nil {
		return domain.TaskBuckets{}, err
	}
	if folder == nil {
		return domain.TaskBuckets{}, apperrors.NewNotFoundError("folder", folderID)
	}

	docs, err := r.store.OrderBy(ctx, store.TasksCollection(userID, folderID), orderField, store.Ascending)
	if err != nil {
		return domain.TaskBuckets{}, apperrors.NewPersistenceError("list tasks", err)
	}
	tasks, err := r.mapper.Task.FromDocuments(docs, folderID)
	if err != nil {
		return domain.TaskBuckets{}, apperrors.NewPersistenceError("decode task", err)
	}
	annotate(tasks, folder.Title)

	return domain.PartitionTasks(tasks), nil
}

// GetTask returns the task, or nil when it does not exist.
func (r *DocumentTaskRepository) GetTask(ctx context.Context, userID, folderID, taskID string) (*domain.Task, error) {
	doc, err := getDocument(ctx, r.store, store.TaskPath(userID, folderID, taskID))
	if err != nil || doc == nil {
		return nil, err
	}
	t, err := r.mapper.Task.FromDocument(doc, folderID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode task", err)
	}
	return &t, nil
}

// CreateTask stores a new task in an existing folder and returns it as read
// back from the store.
func (r *DocumentTaskRepository) CreateTask(ctx context.Context, userID, folderID string, task domain.Task) (*domain.Task, error) {
	folder, err := r.folders.GetFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, apperrors.NewNotFoundError("folder", folderID)
	}

	id, err := r.store.Add(ctx, store.TasksCollection(userID, folderID), r.mapper.Task.ToDocument(task))
	if err != nil {
		return nil, apperrors.NewPersistenceError("create task", err)
	}

	created, err := r.GetTask(ctx, userID, folderID, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperrors.NewPersistenceError("create task", apperrors.NewNotFoundError("task", id))
	}
	created.FolderSource = folder.Title
	return created, nil
}

// UpdateTask merges the supplied fields into the task.
func (r *DocumentTaskRepository) UpdateTask(ctx context.Context, userID, folderID, taskID string, patch domain.TaskPatch) error {
	path := store.TaskPath(userID, folderID, taskID)
	if patch.IsEmpty() {
		return requireDocument(ctx, r.store, path, "task", taskID)
	}
	err := r.store.Update(ctx, path, r.mapper.Task.PatchToDocument(patch))
	return handleWriteError(err, "task", taskID, "update task")
}

// DeleteTask removes a single task.
func (r *DocumentTaskRepository) DeleteTask(ctx context.Context, userID, folderID, taskID string) error {
	err := r.store.Delete(ctx, store.TaskPath(userID, folderID, taskID))
	return handleWriteError(err, "task", taskID, "delete task")
}

func annotate(tasks []domain.Task, folderTitle string) {
	for i := range tasks {
		tasks[i].FolderSource = folderTitle
	}
}

var _ TaskRepository = (*DocumentTaskRepository)(nil)
