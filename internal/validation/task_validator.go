package validation

import (
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task or folder title
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	tv.checkText(validationError, domain.FieldTitle, title, tv.validator.TitleMaxLength())
	return validationError.ErrOrNil()
}

// ValidateTaskForCreation validates a task about to be stored. Status and
// priority must already carry their defaults.
func (tv *TaskValidator) ValidateTaskForCreation(task domain.Task) error {
	validationError := NewValidationError()

	tv.checkText(validationError, domain.FieldTitle, task.Title, tv.validator.TitleMaxLength())
	tv.checkText(validationError, domain.FieldDescription, task.Description, tv.validator.DescriptionMaxLength())

	if !tv.validator.IsValidStatus(string(task.Status)) {
		validationError.AddInvalidValueError(domain.FieldStatus, task.Status, "must be Pending, In Progress or Completed")
	}
	if !tv.validator.IsValidPriority(string(task.Priority)) {
		validationError.AddInvalidValueError(domain.FieldPriority, task.Priority, "must be High, Medium or Low")
	}
	if !tv.validator.IsValidDateRange(task.StartDate, task.EndDate) {
		validationError.AddInvalidRangeError(domain.FieldEndDate, task.EndDate, "end_date cannot be before start_date")
	}

	return validationError.ErrOrNil()
}

// ValidateTaskPatch validates a partial update. Omitted fields are not
// checked; title, description, status and priority may not be set to null.
// The date range is only checked when both dates are supplied.
func (tv *TaskValidator) ValidateTaskPatch(patch domain.TaskPatch) error {
	validationError := NewValidationError()

	tv.checkOptionalText(validationError, domain.FieldTitle, patch.Title, tv.validator.TitleMaxLength())
	tv.checkOptionalText(validationError, domain.FieldDescription, patch.Description, tv.validator.DescriptionMaxLength())

	switch {
	case !patch.Status.Set:
	case patch.Status.Null:
		validationError.AddNullNotAllowedError(domain.FieldStatus)
	case !tv.validator.IsValidStatus(patch.Status.Value):
		validationError.AddInvalidValueError(domain.FieldStatus, patch.Status.Value, "must be Pending, In Progress or Completed")
	}

	switch {
	case !patch.Priority.Set:
	case patch.Priority.Null:
		validationError.AddNullNotAllowedError(domain.FieldPriority)
	case !tv.validator.IsValidPriority(patch.Priority.Value):
		validationError.AddInvalidValueError(domain.FieldPriority, patch.Priority.Value, "must be High, Medium or Low")
	}

	if patch.StartDate.HasValue() && patch.EndDate.HasValue() &&
		!tv.validator.IsValidDateRange(&patch.StartDate.Value, &patch.EndDate.Value) {
		validationError.AddInvalidRangeError(domain.FieldEndDate, patch.EndDate.Value, "end_date cannot be before start_date")
	}

	return validationError.ErrOrNil()
}

// ValidateOrderField validates the sort field of a folder listing. An empty
// field selects the default order.
func (tv *TaskValidator) ValidateOrderField(field string) error {
	if field == "" || tv.validator.IsValidOrderField(field) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("order_by", field, "unsupported sort field")
	return validationError
}

// ValidateIDs validates path identifiers keyed by field name
func (tv *TaskValidator) ValidateIDs(ids map[string]string) error {
	validationError := NewValidationError()
	for field, id := range ids {
		if !tv.validator.IsNonEmptyString(id) {
			validationError.AddRequiredError(field)
			continue
		}
		if !tv.validator.IsValidID(id) {
			validationError.AddInvalidCharacterError(field, id)
		}
	}
	return validationError.ErrOrNil()
}

func (tv *TaskValidator) checkText(ve *ValidationError, field, value string, max int) {
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return
	}
	if !tv.validator.IsValidStringLength(value, 1, max) {
		ve.AddInvalidLengthError(field, value, 1, max)
	}
}

func (tv *TaskValidator) checkOptionalText(ve *ValidationError, field string, value domain.Optional[string], max int) {
	switch {
	case !value.Set:
	case value.Null:
		ve.AddNullNotAllowedError(field)
	default:
		tv.checkText(ve, field, value.Value, max)
	}
}
