package domain

import "time"

// Task is a single to-do item owned by a task folder.
type Task struct {
	ID           string     `json:"id"`
	TaskFolderID string     `json:"task_folder_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       Status     `json:"status"`
	Priority     Priority   `json:"priority"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	DoneDate     *time.Time `json:"done_date"`

	// FolderSource is the owning folder's title, resolved at read time.
	FolderSource string `json:"folder_source,omitempty"`
}

// IsOpen reports whether the task is pending or in progress.
func (t Task) IsOpen() bool {
	return t.Status.IsOpen()
}

// StartsOn reports whether the task's start date falls on the same calendar
// day as day, both seen in loc. Tasks without a start date never match.
func (t Task) StartsOn(day time.Time, loc *time.Location) bool {
	if t.StartDate == nil {
		return false
	}
	return SameDay(*t.StartDate, day, loc)
}

// DaysUntilDue returns the fractional number of days from now to the end
// date. ok is false when the task has no end date.
func (t Task) DaysUntilDue(now time.Time) (days float64, ok bool) {
	if t.EndDate == nil {
		return 0, false
	}
	return DaysBetween(now, *t.EndDate), true
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// NewTask returns a task with the default status and priority.
func NewTask(folderID, title string) Task {
	return Task{
		TaskFolderID: folderID,
		Title:        title,
		Status:       StatusPending,
		Priority:     PriorityMedium,
	}
}
