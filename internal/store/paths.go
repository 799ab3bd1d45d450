package store

import "strings"

const (
	usersCollection   = "users"
	foldersCollection = "task_folders"
	tasksCollection   = "tasks"
)

// Join builds a path from its segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

// FoldersCollection is the collection holding a user's task folders.
func FoldersCollection(userID string) string {
	return Join(usersCollection, userID, foldersCollection)
}

// FolderPath is the path of a single task folder.
func FolderPath(userID, folderID string) string {
	return Join(FoldersCollection(userID), folderID)
}

// TasksCollection is the collection holding the tasks of one folder.
func TasksCollection(userID, folderID string) string {
	return Join(FolderPath(userID, folderID), tasksCollection)
}

// TaskPath is the path of a single task.
func TaskPath(userID, folderID, taskID string) string {
	return Join(TasksCollection(userID, folderID), taskID)
}

// Parent returns the collection a document path belongs to.
func Parent(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

// Base returns the last segment of a path, which is the document id.
func Base(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// Depth returns the number of segments in a path.
func Depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

// IsWithin reports whether path is root itself or lies beneath it.
func IsWithin(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

// ValidSegment reports whether s can be used as a single path segment.
func ValidSegment(s string) bool {
	return s != "" && !strings.Contains(s, "/")
}
