package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "Time with timezone is stored as UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "Time with nanoseconds",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTime(tt.input))
		})
	}
}

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, FormatTimePtr(nil))

	ts := time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15T17:00:00Z", FormatTimePtr(&ts))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "Valid RFC3339 time",
			input:    "2024-01-15T10:30:45Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "Valid RFC3339 time with timezone",
			input:    "2024-06-15T14:30:00-05:00",
			expected: time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC),
		},
		{
			name:        "Invalid time format",
			input:       "2024-01-15 10:30:45",
			expectError: true,
		},
		{
			name:        "Empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "Invalid date",
			input:       "2024-13-45T10:30:45Z",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTime(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, result.IsZero())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	// RFC3339 drops sub-second precision
	originalTime := time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)

	parsed, err := ParseTime(FormatTime(originalTime))

	assert.NoError(t, err)
	assert.True(t, originalTime.Equal(parsed))
}
