package domain

import "strings"

// Status is the closed set of task states. Stored documents may spell a
// status in several ways; NormalizeStatus maps them all onto these three.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

var statusSpellings = map[string]Status{
	"pending":     StatusPending,
	"in progress": StatusInProgress,
	"completed":   StatusCompleted,
}

// statusKey lower-cases, trims and treats underscores like spaces, so
// "IN_PROGRESS", "in progress" and " In  Progress " share one key.
func statusKey(raw string) string {
	key := strings.ToLower(strings.ReplaceAll(raw, "_", " "))
	return strings.Join(strings.Fields(key), " ")
}

// ParseStatus accepts only the known spellings of a status.
func ParseStatus(raw string) (Status, bool) {
	s, ok := statusSpellings[statusKey(raw)]
	return s, ok
}

// NormalizeStatus maps a stored status onto its bucket. Anything that is not
// a known spelling is treated as Pending rather than dropped.
func NormalizeStatus(raw string) Status {
	if s, ok := ParseStatus(raw); ok {
		return s
	}
	return StatusPending
}

func (s Status) String() string {
	return string(s)
}

// IsOpen reports whether work on the task is still outstanding.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts High, Medium and Low in any case.
func ParsePriority(raw string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return "", false
}

func (p Priority) String() string {
	return string(p)
}
