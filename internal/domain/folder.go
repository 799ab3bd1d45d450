package domain

import "time"

// TaskFolder groups tasks for a single user.
type TaskFolder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	IsDeleted   bool      `json:"is_deleted"`
}

// FolderWithStats is a folder together with counters derived from its tasks.
type FolderWithStats struct {
	TaskFolder
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// NewFolderWithStats counts the tasks of a folder from their statuses.
func NewFolderWithStats(folder TaskFolder, statuses []Status) FolderWithStats {
	stats := FolderWithStats{TaskFolder: folder, TotalTasks: len(statuses)}
	for _, s := range statuses {
		if s == StatusCompleted {
			stats.CompletedTasks++
		}
	}
	return stats
}
