package repository

import (
	"context"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/store"
)

// DocumentFolderRepository stores folders at users/{uid}/task_folders/{fid}.
type DocumentFolderRepository struct {
	store  store.Store
	mapper *domain.Mapper
	opts   options
}

// NewFolderRepository creates a folder repository backed by s.
func NewFolderRepository(s store.Store, opts ...Option) *DocumentFolderRepository {
	o := applyOptions(opts)
	return &DocumentFolderRepository{
		store:  s,
		mapper: domain.NewMapperIn(o.loc),
		opts:   o,
	}
}

// ListFolders returns every folder of the user with its task counters. The
// counters are recomputed from each folder's tasks on every call.
func (r *DocumentFolderRepository) ListFolders(ctx context.Context, userID string) ([]domain.FolderWithStats, error) {
	docs, err := r.store.List(ctx, store.FoldersCollection(userID))
	if err != nil {
		return nil, apperrors.NewPersistenceError("list folders", err)
	}

	folders := make([]domain.TaskFolder, len(docs))
	ids := make([]string, len(docs))
	for i, doc := range docs {
		f, err := r.mapper.Folder.FromDocument(doc, userID)
		if err != nil {
			return nil, apperrors.NewPersistenceError("decode folder", err)
		}
		folders[i] = f
		ids[i] = f.ID
	}

	return FanOut(ctx, r.opts.fanOutLimit, "count folder tasks", ids, func(ctx context.Context, i int) (domain.FolderWithStats, error) {
		taskDocs, err := r.store.List(ctx, store.TasksCollection(userID, ids[i]))
		if err != nil {
			return domain.FolderWithStats{}, err
		}
		statuses := make([]domain.Status, len(taskDocs))
		for j, doc := range taskDocs {
			statuses[j] = r.mapper.Task.StatusOf(doc)
		}
		return domain.NewFolderWithStats(folders[i], statuses), nil
	})
}

// ListFolderIDs returns the ids of the user's folders.
func (r *DocumentFolderRepository) ListFolderIDs(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.store.List(ctx, store.FoldersCollection(userID))
	if err != nil {
		return nil, apperrors.NewPersistenceError("list folders", err)
	}
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids, nil
}

// GetFolder returns the folder, or nil when it does not exist.
func (r *DocumentFolderRepository) GetFolder(ctx context.Context, userID, folderID string) (*domain.TaskFolder, error) {
	doc, err := getDocument(ctx, r.store, store.FolderPath(userID, folderID))
	if err != nil || doc == nil {
		return nil, err
	}
	f, err := r.mapper.Folder.FromDocument(doc, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("decode folder", err)
	}
	return &f, nil
}

// CreateFolder stores a new folder and returns it as read back from the store.
func (r *DocumentFolderRepository) CreateFolder(ctx context.Context, userID string, folder domain.TaskFolder) (*domain.TaskFolder, error) {
	if folder.Timestamp.IsZero() {
		folder.Timestamp = r.opts.now()
	}

	id, err := r.store.Add(ctx, store.FoldersCollection(userID), r.mapper.Folder.ToDocument(folder))
	if err != nil {
		return nil, apperrors.NewPersistenceError("create folder", err)
	}

	created, err := r.GetFolder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, apperrors.NewPersistenceError("create folder", apperrors.NewNotFoundError("folder", id))
	}
	return created, nil
}

// UpdateFolder merges the supplied fields into the folder.
func (r *DocumentFolderRepository) UpdateFolder(ctx context.Context, userID, folderID string, patch domain.FolderPatch) error {
	path := store.FolderPath(userID, folderID)
	if patch.IsEmpty() {
		return requireDocument(ctx, r.store, path, "folder", folderID)
	}
	err := r.store.Update(ctx, path, r.mapper.Folder.PatchToDocument(patch))
	return handleWriteError(err, "folder", folderID, "update folder")
}

// DeleteFolder removes the folder together with all of its tasks.
func (r *DocumentFolderRepository) DeleteFolder(ctx context.Context, userID, folderID string) error {
	path := store.FolderPath(userID, folderID)
	doc, err := getDocument(ctx, r.store, path)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFoundError("folder", folderID)
	}

	if err := r.store.RecursiveDelete(ctx, path); err != nil {
		return apperrors.NewPersistenceError("delete folder", err)
	}
	return nil
}

var _ FolderRepository = (*DocumentFolderRepository)(nil)
