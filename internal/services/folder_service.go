package services

import (
	"context"

	"github.com/rs/zerolog"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// folderServiceImpl implements the FolderService interface
type folderServiceImpl struct {
	serviceBase
	folders   repository.FolderRepository
	validator *validation.FolderValidator
}

// NewFolderService creates a new FolderService instance
func NewFolderService(folders repository.FolderRepository, validator *validation.FolderValidator, logger zerolog.Logger) FolderService {
	return &folderServiceImpl{
		serviceBase: serviceBase{logger: logger},
		folders:     folders,
		validator:   validator,
	}
}

// ListFolders returns the user's folders with their task counters
func (s *folderServiceImpl) ListFolders(ctx context.Context, userID string) Result {
	const op = "list folders"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	folders, err := s.folders.ListFolders(ctx, userID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	return s.ok(op, userID, "Folders retrieved successfully", folders)
}

// GetFolder returns a single folder
func (s *folderServiceImpl) GetFolder(ctx context.Context, userID, folderID string) Result {
	const op = "get folder"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	folder, err := s.folders.GetFolder(ctx, userID, folderID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	if folder == nil {
		return s.fail(op, userID, apperrors.NewNotFoundError("folder", folderID))
	}
	return s.ok(op, userID, "Folder retrieved successfully", folder)
}

// CreateFolder validates and stores a new folder
func (s *folderServiceImpl) CreateFolder(ctx context.Context, userID string, input CreateFolderInput) Result {
	const op = "create folder"
	folder := domain.TaskFolder{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}
	if err := s.validator.ValidateFolderForCreation(folder); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	created, err := s.folders.CreateFolder(ctx, userID, folder)
	if err != nil {
		return s.fail(op, userID, err)
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("folder_id", created.ID).
		Msg("created folder")
	return Ok("Folder created successfully", created)
}

// UpdateFolder applies a partial update and returns the updated folder
func (s *folderServiceImpl) UpdateFolder(ctx context.Context, userID, folderID string, patch domain.FolderPatch) Result {
	const op = "update folder"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}
	if err := s.validator.ValidateFolderPatch(patch); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	if err := s.folders.UpdateFolder(ctx, userID, folderID, patch); err != nil {
		return s.fail(op, userID, err)
	}
	folder, err := s.folders.GetFolder(ctx, userID, folderID)
	if err != nil {
		return s.fail(op, userID, err)
	}
	if folder == nil {
		return s.fail(op, userID, apperrors.NewNotFoundError("folder", folderID))
	}
	return s.ok(op, userID, "Folder updated successfully", folder)
}

// DeleteFolder removes a folder and all of its tasks
func (s *folderServiceImpl) DeleteFolder(ctx context.Context, userID, folderID string) Result {
	const op = "delete folder"
	if err := s.validator.ValidateIDs(map[string]string{"user_id": userID, "folder_id": folderID}); err != nil {
		return s.fail(op, userID, invalid(err))
	}

	if err := s.folders.DeleteFolder(ctx, userID, folderID); err != nil {
		return s.fail(op, userID, err)
	}
	s.logger.Info().
		Str("user_id", userID).
		Str("folder_id", folderID).
		Msg("deleted folder")
	return Ok("Folder deleted successfully", nil)
}
