package domain

import "time"

// FolderPatch lists the folder fields to change. Omitted fields are left alone.
type FolderPatch struct {
	Title       Optional[string]
	Description Optional[string]
	IsDeleted   Optional[bool]
}

// IsEmpty reports whether the patch changes nothing.
func (p FolderPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.IsDeleted.Set
}

// TaskPatch lists the task fields to change. Status and Priority carry the
// raw client spelling until validation has accepted them.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[string]
	Priority    Optional[string]
	StartDate   Optional[time.Time]
	EndDate     Optional[time.Time]
	DoneDate    Optional[time.Time]
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.Priority.Set &&
		!p.StartDate.Set && !p.EndDate.Set && !p.DoneDate.Set
}
