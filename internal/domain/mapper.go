package domain

import (
	"fmt"
	"time"

	"task-manager/internal/store"
)

// Document field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldDoneDate    = "done_date"
	FieldTimestamp   = "timestamp"
	FieldIsDeleted   = "is_deleted"

	// LegacyFieldBackground is the name older folder documents use for the
	// description.
	LegacyFieldBackground = "background"
)

// TaskMapper handles conversion between domain tasks and stored documents.
// Stored dates without a zone are read in loc.
type TaskMapper struct {
	loc *time.Location
}

// NewTaskMapper creates a TaskMapper that reads zone-less dates as UTC.
func NewTaskMapper() *TaskMapper {
	return NewTaskMapperIn(time.UTC)
}

// NewTaskMapperIn creates a TaskMapper that reads zone-less dates in loc.
func NewTaskMapperIn(loc *time.Location) *TaskMapper {
	return &TaskMapper{loc: locationOrUTC(loc)}
}

// ToDocument converts a domain Task to document data. The id, folder and
// folder_source are positional or derived, so they are not stored.
func (m *TaskMapper) ToDocument(t Task) store.Data {
	return store.Data{
		FieldTitle:       t.Title,
		FieldDescription: t.Description,
		FieldStatus:      NormalizeStatus(string(t.Status)).String(),
		FieldPriority:    t.Priority.String(),
		FieldStartDate:   store.FormatTimePtr(t.StartDate),
		FieldEndDate:     store.FormatTimePtr(t.EndDate),
		FieldDoneDate:    store.FormatTimePtr(t.DoneDate),
	}
}

// FromDocument converts a stored document to a domain Task.
func (m *TaskMapper) FromDocument(doc *store.Document, folderID string) (Task, error) {
	t := Task{
		ID:           doc.ID,
		TaskFolderID: folderID,
		Title:        stringField(doc.Data, FieldTitle),
		Description:  stringField(doc.Data, FieldDescription),
		Status:       NormalizeStatus(stringField(doc.Data, FieldStatus)),
		Priority:     Priority(stringField(doc.Data, FieldPriority)),
	}
	if p, ok := ParsePriority(string(t.Priority)); ok {
		t.Priority = p
	}

	var err error
	if t.StartDate, err = timeField(doc.Data, FieldStartDate, m.loc); err != nil {
		return Task{}, fmt.Errorf("task %s: %w", doc.Path, err)
	}
	if t.EndDate, err = timeField(doc.Data, FieldEndDate, m.loc); err != nil {
		return Task{}, fmt.Errorf("task %s: %w", doc.Path, err)
	}
	if t.DoneDate, err = timeField(doc.Data, FieldDoneDate, m.loc); err != nil {
		return Task{}, fmt.Errorf("task %s: %w", doc.Path, err)
	}
	return t, nil
}

// FromDocuments converts a slice of stored documents to domain Tasks.
func (m *TaskMapper) FromDocuments(docs []*store.Document, folderID string) ([]Task, error) {
	tasks := make([]Task, len(docs))
	for i, doc := range docs {
		t, err := m.FromDocument(doc, folderID)
		if err != nil {
			return nil, err
		}
		tasks[i] = t
	}
	return tasks, nil
}

// PatchToDocument converts the supplied fields of a patch to document data.
// Explicitly null dates are stored as null; status and priority are written
// in their canonical spelling.
func (m *TaskMapper) PatchToDocument(p TaskPatch) store.Data {
	data := store.Data{}
	if p.Title.HasValue() {
		data[FieldTitle] = p.Title.Value
	}
	if p.Description.HasValue() {
		data[FieldDescription] = p.Description.Value
	}
	if p.Status.HasValue() {
		data[FieldStatus] = NormalizeStatus(p.Status.Value).String()
	}
	if p.Priority.HasValue() {
		if pr, ok := ParsePriority(p.Priority.Value); ok {
			data[FieldPriority] = pr.String()
		}
	}
	putDate(data, FieldStartDate, p.StartDate)
	putDate(data, FieldEndDate, p.EndDate)
	putDate(data, FieldDoneDate, p.DoneDate)
	return data
}

// FolderMapper handles conversion between domain folders and stored documents.
type FolderMapper struct {
	loc *time.Location
}

// NewFolderMapper creates a new FolderMapper instance.
func NewFolderMapper() *FolderMapper {
	return NewFolderMapperIn(time.UTC)
}

// NewFolderMapperIn creates a FolderMapper that reads zone-less timestamps in loc.
func NewFolderMapperIn(loc *time.Location) *FolderMapper {
	return &FolderMapper{loc: locationOrUTC(loc)}
}

// ToDocument converts a domain TaskFolder to document data.
func (m *FolderMapper) ToDocument(f TaskFolder) store.Data {
	return store.Data{
		FieldTitle:       f.Title,
		FieldDescription: f.Description,
		FieldTimestamp:   store.FormatTime(f.Timestamp),
		FieldIsDeleted:   f.IsDeleted,
	}
}

// FromDocument converts a stored document to a domain TaskFolder, reading the
// legacy background field when description is absent.
func (m *FolderMapper) FromDocument(doc *store.Document, userID string) (TaskFolder, error) {
	f := TaskFolder{
		ID:          doc.ID,
		UserID:      userID,
		Title:       stringField(doc.Data, FieldTitle),
		Description: stringField(doc.Data, FieldDescription),
		IsDeleted:   boolField(doc.Data, FieldIsDeleted),
	}
	if _, ok := doc.Data[FieldDescription]; !ok {
		f.Description = stringField(doc.Data, LegacyFieldBackground)
	}

	ts, err := timeField(doc.Data, FieldTimestamp, m.loc)
	if err != nil {
		return TaskFolder{}, fmt.Errorf("folder %s: %w", doc.Path, err)
	}
	if ts != nil {
		f.Timestamp = *ts
	}
	return f, nil
}

// PatchToDocument converts the supplied fields of a patch to document data.
func (m *FolderMapper) PatchToDocument(p FolderPatch) store.Data {
	data := store.Data{}
	if p.Title.HasValue() {
		data[FieldTitle] = p.Title.Value
	}
	if p.Description.HasValue() {
		data[FieldDescription] = p.Description.Value
	}
	if p.IsDeleted.HasValue() {
		data[FieldIsDeleted] = p.IsDeleted.Value
	}
	return data
}

// Mapper provides access to all domain mappers.
type Mapper struct {
	Task   *TaskMapper
	Folder *FolderMapper
}

// NewMapper creates a new Mapper with all domain mappers.
func NewMapper() *Mapper {
	return NewMapperIn(time.UTC)
}

// NewMapperIn creates a Mapper whose mappers read zone-less dates in loc.
func NewMapperIn(loc *time.Location) *Mapper {
	return &Mapper{
		Task:   NewTaskMapperIn(loc),
		Folder: NewFolderMapperIn(loc),
	}
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

func putDate(data store.Data, field string, v Optional[time.Time]) {
	switch {
	case !v.Set:
	case v.Null:
		data[field] = nil
	default:
		data[field] = store.FormatTime(v.Value)
	}
}

func stringField(data store.Data, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func boolField(data store.Data, key string) bool {
	b, _ := data[key].(bool)
	return b
}

// timeField reads an RFC3339 value as is; dates and date-times without a zone
// are taken to be in loc.
func timeField(data store.Data, key string, loc *time.Location) (*time.Time, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case time.Time:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := store.ParseTime(v)
		if err != nil {
			if t, err = ParseDateTime(v, loc); err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
		}
		return &t, nil
	}
	return nil, fmt.Errorf("field %s: unexpected type %T", key, raw)
}

// StatusOf returns the normalised status of a stored task without decoding
// the rest of the document.
func (m *TaskMapper) StatusOf(doc *store.Document) Status {
	return NormalizeStatus(stringField(doc.Data, FieldStatus))
}
