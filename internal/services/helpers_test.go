package services

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/aggregate"
	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/store"
	"task-manager/internal/store/memory"
	"task-manager/internal/validation"
)

const testUser = "u1"

var fixedNow = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	store   *memory.Store
	logs    *bytes.Buffer
	folders FolderService
	tasks   TaskService
	agenda  AgendaService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	s := memory.New()
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)

	folderRepo := repository.NewFolderRepository(s, repository.WithClock(func() time.Time { return fixedNow }))
	taskRepo := repository.NewTaskRepository(s)
	engine := aggregate.NewEngine(folderRepo, taskRepo,
		aggregate.WithClock(func() time.Time { return fixedNow }),
		aggregate.WithLocation(time.UTC))
	taskValidator := validation.NewTaskValidator()

	return &testEnv{
		store:   s,
		logs:    logs,
		folders: NewFolderService(folderRepo, validation.NewFolderValidator(), logger),
		tasks:   NewTaskService(taskRepo, taskValidator, logger, func() time.Time { return fixedNow }),
		agenda:  NewAgendaService(engine, taskValidator, logger, 3),
	}
}

func (e *testEnv) seedFolder(folderID, title string) {
	e.store.Put(store.FolderPath(testUser, folderID), store.Data{
		domain.FieldTitle:       title,
		domain.FieldDescription: title + " folder",
		domain.FieldTimestamp:   "2024-01-01T00:00:00Z",
	})
}

func (e *testEnv) seedTask(folderID, taskID string, data store.Data) {
	full := store.Data{
		domain.FieldTitle:       taskID,
		domain.FieldDescription: "desc",
		domain.FieldStatus:      "Pending",
		domain.FieldPriority:    "Medium",
	}
	full.Merge(data)
	e.store.Put(store.TaskPath(testUser, folderID, taskID), full)
}

func requireFailure(t *testing.T, r Result, expected apperrors.ErrorType) {
	t.Helper()
	require.False(t, r.Success, "expected failure, got %+v", r)
	errType, ok := r.ErrorType()
	require.True(t, ok, "expected an application error, got %v", r.Err())
	assert.Equal(t, expected, errType, fmt.Sprintf("cause: %v", r.Err()))
}

func dataAs[T any](t *testing.T, r Result) T {
	t.Helper()
	require.True(t, r.Success, "expected success, got %q (%v)", r.Message, r.Err())
	v, ok := r.Data.(T)
	require.True(t, ok, "unexpected data type %T", r.Data)
	return v
}
