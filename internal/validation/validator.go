package validation

import (
	"strings"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/store"
)

const (
	defaultTitleMaxLength       = 200
	defaultDescriptionMaxLength = 5000
)

// orderFields are the task fields a folder listing may be sorted by.
var orderFields = map[string]bool{
	domain.FieldStartDate: true,
	domain.FieldEndDate:   true,
	domain.FieldDoneDate:  true,
	domain.FieldTitle:     true,
	domain.FieldPriority:  true,
	domain.FieldStatus:    true,
}

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}



// IsValidStatus checks if a status is one of the known spellings
func (v *Validator) IsValidStatus(status string) bool {
	_, ok := domain.ParseStatus(status)
	return ok
}

// IsValidPriority checks if a priority is High, Medium or Low
func (v *Validator) IsValidPriority(priority string) bool {
	_, ok := domain.ParsePriority(priority)
	return ok
}

// IsValidDateRange checks that end is not before start. Open ranges are valid.
func (v *Validator) IsValidDateRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !end.Before(*start)
}

// IsValidID checks that an id can be used as a single path segment
func (v *Validator) IsValidID(id string) bool {
	return store.ValidSegment(id)
}

// IsValidOrderField checks a folder listing sort field against the allow-list
func (v *Validator) IsValidOrderField(field string) bool {
	return orderFields[field]
}


// TitleMaxLength returns the configured maximum title length or the default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil && v.config.Validation.TitleMaxLength > 0 {
		return v.config.Validation.TitleMaxLength
	}
	return defaultTitleMaxLength
}

// DescriptionMaxLength returns the configured maximum description length or the default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}
