package validation

import (
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// FolderValidator provides validation for folder operations
type FolderValidator struct {
	tasks *TaskValidator
}

// NewFolderValidator creates a new folder validator
func NewFolderValidator() *FolderValidator {
	return &FolderValidator{tasks: NewTaskValidator()}
}

// NewFolderValidatorWithConfig creates a folder validator using configured limits
func NewFolderValidatorWithConfig(cfg *config.Config) *FolderValidator {
	return &FolderValidator{tasks: NewTaskValidatorWithConfig(cfg)}
}

// ValidateFolderForCreation validates a folder about to be stored
func (fv *FolderValidator) ValidateFolderForCreation(folder domain.TaskFolder) error {
	validationError := NewValidationError()
	v := fv.tasks.validator
	fv.tasks.checkText(validationError, domain.FieldTitle, folder.Title, v.TitleMaxLength())
	fv.tasks.checkText(validationError, domain.FieldDescription, folder.Description, v.DescriptionMaxLength())
	return validationError.ErrOrNil()
}

// ValidateFolderPatch validates a partial folder update
func (fv *FolderValidator) ValidateFolderPatch(patch domain.FolderPatch) error {
	validationError := NewValidationError()
	v := fv.tasks.validator
	fv.tasks.checkOptionalText(validationError, domain.FieldTitle, patch.Title, v.TitleMaxLength())
	fv.tasks.checkOptionalText(validationError, domain.FieldDescription, patch.Description, v.DescriptionMaxLength())
	if patch.IsDeleted.Set && patch.IsDeleted.Null {
		validationError.AddNullNotAllowedError(domain.FieldIsDeleted)
	}
	return validationError.ErrOrNil()
}

// ValidateIDs validates path identifiers keyed by field name
func (fv *FolderValidator) ValidateIDs(ids map[string]string) error {
	return fv.tasks.ValidateIDs(ids)
}
