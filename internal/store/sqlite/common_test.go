package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-manager/internal/store"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database is locked")
	result := HandleDatabaseError("insert document", originalErr)

	assert.Contains(t, result.Error(), "insert document")
	assert.ErrorIs(t, result, originalErr)
}

func TestHandleNoRowsError(t *testing.T) {
	assert.ErrorIs(t, HandleNoRowsError(sql.ErrNoRows), store.ErrNoDocument)

	other := errors.New("some other error")
	assert.Equal(t, other, HandleNoRowsError(other))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name           string
		result         sql.Result
		expectError    bool
		expectNotFound bool
	}{
		{
			name:   "Successful update",
			result: &MockResult{rowsAffected: 1},
		},
		{
			name:           "No rows affected",
			result:         &MockResult{rowsAffected: 0},
			expectError:    true,
			expectNotFound: true,
		},
		{
			name:        "Error getting rows affected",
			result:      &MockResult{rowsErr: errors.New("database error")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result)

			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.expectNotFound {
				assert.ErrorIs(t, err, store.ErrNoDocument)
			} else {
				assert.Contains(t, err.Error(), "database error")
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `users/u\_1/task\_folders/f\%`, escapeLike("users/u_1/task_folders/f%"))
}
