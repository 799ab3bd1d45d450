package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/store"
	"task-manager/internal/store/memory"
)

const testUser = "u1"

var errBoom = errors.New("boom")

func seedFolder(s *memory.Store, folderID, title string, statuses ...string) {
	s.Put(store.FolderPath(testUser, folderID), store.Data{
		domain.FieldTitle:       title,
		domain.FieldDescription: title + " folder",
		domain.FieldTimestamp:   "2024-01-01T00:00:00Z",
	})
	for i, status := range statuses {
		taskID := fmt.Sprintf("%s-t%d", folderID, i)
		s.Put(store.TaskPath(testUser, folderID, taskID), store.Data{
			domain.FieldTitle:       taskID,
			domain.FieldDescription: "desc",
			domain.FieldStatus:      status,
			domain.FieldPriority:    "Medium",
		})
	}
}

func TestListAllTasksForUser_FlattensAcrossFolders(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending", "completed")
	seedFolder(s, "f2", "Empty")
	seedFolder(s, "f3", "Home", "in_progress", "Pending", "COMPLETED ", "pending")
	repo := NewTaskRepository(s)

	tasks, err := repo.ListAllTasksForUser(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, tasks, 6)

	sources := map[string]int{}
	for _, task := range tasks {
		sources[task.FolderSource]++
	}
	assert.Equal(t, map[string]int{"Work": 2, "Home": 4}, sources)
	assert.Equal(t, "f1", tasks[0].TaskFolderID)
	assert.Equal(t, "f3", tasks[5].TaskFolderID)
}

func TestListAllTasksForUser_BranchFailureFailsWholeCall(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending", "completed")
	seedFolder(s, "f2", "Empty")
	seedFolder(s, "f3", "Home", "pending")
	s.FailOn(memory.OpList, store.TasksCollection(testUser, "f2"), errBoom)
	repo := NewTaskRepository(s, WithFanOutLimit(1))

	tasks, err := repo.ListAllTasksForUser(context.Background(), testUser)

	assert.Nil(t, tasks)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePartialFailure))
	assert.ErrorIs(t, err, errBoom)
}

func TestListAllTasksForUser_NoFolders(t *testing.T) {
	tasks, err := NewTaskRepository(memory.New()).ListAllTasksForUser(context.Background(), testUser)

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestListAllTasksForUser_FolderListFailure(t *testing.T) {
	s := memory.New()
	s.FailOn(memory.OpList, store.FoldersCollection(testUser), errBoom)

	_, err := NewTaskRepository(s).ListAllTasksForUser(context.Background(), testUser)

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func TestListFolders_CountsTasks(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending", "completed", "Completed")
	seedFolder(s, "f2", "Empty")
	repo := NewFolderRepository(s)

	folders, err := repo.ListFolders(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, folders, 2)

	assert.Equal(t, "Work", folders[0].Title)
	assert.Equal(t, 3, folders[0].TotalTasks)
	assert.Equal(t, 2, folders[0].CompletedTasks)
	assert.Equal(t, 0, folders[1].TotalTasks)
	assert.Equal(t, 0, folders[1].CompletedTasks)
}

func TestListFolders_Empty(t *testing.T) {
	folders, err := NewFolderRepository(memory.New()).ListFolders(context.Background(), testUser)

	require.NoError(t, err)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestListFolders_CountFailure(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending")
	s.FailOn(memory.OpList, store.TasksCollection(testUser, "f1"), errBoom)

	_, err := NewFolderRepository(s).ListFolders(context.Background(), testUser)

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePartialFailure))
}

func TestListFolderIDs(t *testing.T) {
	s := memory.New()
	seedFolder(s, "b", "B")
	seedFolder(s, "a", "A")

	ids, err := NewFolderRepository(s).ListFolderIDs(context.Background(), testUser)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestGetFolder(t *testing.T) {
	s := memory.New()
	s.Put(store.FolderPath(testUser, "legacy"), store.Data{
		domain.FieldTitle:            "Old",
		domain.LegacyFieldBackground: "from background",
	})
	repo := NewFolderRepository(s)

	folder, err := repo.GetFolder(context.Background(), testUser, "legacy")
	require.NoError(t, err)
	require.NotNil(t, folder)
	assert.Equal(t, "from background", folder.Description)

	missing, err := repo.GetFolder(context.Background(), testUser, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetFolder_StoreFailure(t *testing.T) {
	s := memory.New()
	s.FailOn(memory.OpGet, store.FolderPath(testUser, "f1"), errBoom)

	folder, err := NewFolderRepository(s).GetFolder(context.Background(), testUser, "f1")

	assert.Nil(t, folder)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func TestCreateFolder_RoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	s := memory.New().WithIDGenerator(func() string { return "new" })
	repo := NewFolderRepository(s, WithClock(func() time.Time { return now }))

	created, err := repo.CreateFolder(context.Background(), testUser, domain.TaskFolder{Title: "Work", Description: "Job"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, testUser, created.UserID)
	assert.True(t, now.Equal(created.Timestamp))

	got, err := repo.GetFolder(context.Background(), testUser, "new")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateFolder_MissingAfterWrite(t *testing.T) {
	s := memory.New().WithIDGenerator(func() string { return "new" })
	s.FailOn(memory.OpGet, store.FolderPath(testUser, "new"), store.ErrNoDocument)

	created, err := NewFolderRepository(s).CreateFolder(context.Background(), testUser, domain.TaskFolder{Title: "Work"})

	assert.Nil(t, created)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func TestUpdateFolder(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		fail     error
		wantType *apperrors.ErrorType
	}{
		{name: "updates existing", folderID: "f1"},
		{name: "missing folder", folderID: "nope", wantType: errorType(apperrors.ErrorTypeNotFound)},
		{name: "store failure", folderID: "f1", fail: errBoom, wantType: errorType(apperrors.ErrorTypePersistence)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.New()
			seedFolder(s, "f1", "Work")
			if tt.fail != nil {
				s.FailOn(memory.OpUpdate, store.FolderPath(testUser, tt.folderID), tt.fail)
			}
			repo := NewFolderRepository(s)

			err := repo.UpdateFolder(context.Background(), testUser, tt.folderID, domain.FolderPatch{Title: domain.Some("Renamed")})

			if tt.wantType != nil {
				assert.True(t, apperrors.IsErrorType(err, *tt.wantType), "got %v", err)
				return
			}
			require.NoError(t, err)
			folder, err := repo.GetFolder(context.Background(), testUser, "f1")
			require.NoError(t, err)
			assert.Equal(t, "Renamed", folder.Title)
			assert.Equal(t, "Work folder", folder.Description)
		})
	}
}

func TestDeleteFolder_Cascades(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending", "pending", "completed", "in_progress", "pending")
	seedFolder(s, "f2", "Home", "pending")
	repo := NewFolderRepository(s)
	tasks := NewTaskRepository(s)

	require.NoError(t, repo.DeleteFolder(context.Background(), testUser, "f1"))

	folder, err := repo.GetFolder(context.Background(), testUser, "f1")
	require.NoError(t, err)
	assert.Nil(t, folder)
	for i := 0; i < 5; i++ {
		task, err := tasks.GetTask(context.Background(), testUser, "f1", fmt.Sprintf("f1-t%d", i))
		require.NoError(t, err)
		assert.Nil(t, task)
	}
	assert.Equal(t, 2, s.Len(), "the other folder and its task remain")
}

func TestDeleteFolder_Missing(t *testing.T) {
	err := NewFolderRepository(memory.New()).DeleteFolder(context.Background(), testUser, "nope")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestDeleteFolder_StoreFailure(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending")
	s.FailOn(memory.OpDelete, store.TaskPath(testUser, "f1", "f1-t0"), errBoom)

	err := NewFolderRepository(s).DeleteFolder(context.Background(), testUser, "f1")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func TestListTasksInFolder(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work")
	put := func(id, status string, start interface{}) {
		s.Put(store.TaskPath(testUser, "f1", id), store.Data{
			domain.FieldTitle:     id,
			domain.FieldStatus:    status,
			domain.FieldStartDate: start,
		})
	}
	put("late", "pending", "2024-03-07T00:00:00Z")
	put("early", "pending", "2024-03-01T00:00:00Z")
	put("undated", "pending", nil)
	put("busy", "in progress", "2024-03-02T00:00:00Z")
	put("done", "Completed", "2024-02-01T00:00:00Z")

	buckets, err := NewTaskRepository(s).ListTasksInFolder(context.Background(), testUser, "f1", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"undated", "early", "late"}, taskIDs(buckets.Pending))
	assert.Equal(t, []string{"busy"}, taskIDs(buckets.InProgress))
	assert.Equal(t, []string{"done"}, taskIDs(buckets.Completed))
	for _, task := range buckets.All() {
		assert.Equal(t, "Work", task.FolderSource)
	}
}

func TestListTasksInFolder_MissingFolder(t *testing.T) {
	_, err := NewTaskRepository(memory.New()).ListTasksInFolder(context.Background(), testUser, "nope", "")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestCreateTask_RoundTrip(t *testing.T) {
	s := memory.New().WithIDGenerator(func() string { return "t1" })
	seedFolder(s, "f1", "Work")
	repo := NewTaskRepository(s)
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	created, err := repo.CreateTask(context.Background(), testUser, "f1", domain.Task{
		Title:       "Write",
		Description: "Report",
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
		StartDate:   &start,
		EndDate:     &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", created.ID)
	assert.Equal(t, "Work", created.FolderSource)

	got, err := repo.GetTask(context.Background(), testUser, "f1", "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.True(t, start.Equal(*got.StartDate))
	assert.True(t, end.Equal(*got.EndDate))
	assert.Nil(t, got.DoneDate)
}

func TestCreateTask_MissingFolder(t *testing.T) {
	s := memory.New()

	created, err := NewTaskRepository(s).CreateTask(context.Background(), testUser, "nope", domain.NewTask("nope", "x"))

	assert.Nil(t, created)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Zero(t, s.Writes())
}

func TestUpdateTask_ClearsDate(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work")
	s.Put(store.TaskPath(testUser, "f1", "t1"), store.Data{
		domain.FieldTitle:   "a",
		domain.FieldEndDate: "2024-01-12T00:00:00Z",
	})
	repo := NewTaskRepository(s)

	err := repo.UpdateTask(context.Background(), testUser, "f1", "t1", domain.TaskPatch{EndDate: domain.Null[time.Time]()})
	require.NoError(t, err)

	task, err := repo.GetTask(context.Background(), testUser, "f1", "t1")
	require.NoError(t, err)
	assert.Nil(t, task.EndDate)
	assert.Equal(t, "a", task.Title)
}

func TestUpdateTask_Missing(t *testing.T) {
	err := NewTaskRepository(memory.New()).UpdateTask(context.Background(), testUser, "f1", "nope", domain.TaskPatch{Title: domain.Some("x")})

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestDeleteTask(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending")
	repo := NewTaskRepository(s)

	require.NoError(t, repo.DeleteTask(context.Background(), testUser, "f1", "f1-t0"))

	err := repo.DeleteTask(context.Background(), testUser, "f1", "f1-t0")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestGetTask_BadDocument(t *testing.T) {
	s := memory.New()
	s.Put(store.TaskPath(testUser, "f1", "t1"), store.Data{domain.FieldStartDate: "whenever"})

	_, err := NewTaskRepository(s).GetTask(context.Background(), testUser, "f1", "t1")

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func taskIDs(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func errorType(t apperrors.ErrorType) *apperrors.ErrorType {
	return &t
}

func TestUpdate_EmptyPatchOnlyChecksExistence(t *testing.T) {
	s := memory.New()
	seedFolder(s, "f1", "Work", "pending")
	folders := NewFolderRepository(s)
	tasks := NewTaskRepository(s)
	ctx := context.Background()

	require.NoError(t, folders.UpdateFolder(ctx, testUser, "f1", domain.FolderPatch{}))
	require.NoError(t, tasks.UpdateTask(ctx, testUser, "f1", "f1-t0", domain.TaskPatch{}))
	assert.Zero(t, s.Writes())

	err := folders.UpdateFolder(ctx, testUser, "nope", domain.FolderPatch{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	err = tasks.UpdateTask(ctx, testUser, "f1", "nope", domain.TaskPatch{})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}
