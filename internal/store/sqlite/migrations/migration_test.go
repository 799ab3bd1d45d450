package migrations

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_AppliesInOrderOnce(t *testing.T) {
	db := openTestDB(t)

	ran, err := RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ran)

	ran, err = RunMigrations(db)
	require.NoError(t, err)
	assert.Empty(t, ran)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNormalizeLegacyDocumentsMigration(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, createMigrationsTable(db))

	// Apply only the schema so legacy rows can be inserted before version 2 runs.
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NoError(t, applyMigration(db, migrations[0]))

	insert := `INSERT INTO documents (path, collection, doc_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`
	rows := []struct {
		path, collection, id, data string
	}{
		{"users/u1/task_folders/f1", "users/u1/task_folders", "f1", `{"title":"Home","background":"chores"}`},
		{"users/u1/task_folders/f2", "users/u1/task_folders", "f2", `{"title":"Work","description":"keep","background":"old"}`},
		{"users/u1/task_folders/f1/tasks/t1", "users/u1/task_folders/f1/tasks", "t1", `{"status":"in_progress"}`},
		{"users/u1/task_folders/f1/tasks/t2", "users/u1/task_folders/f1/tasks", "t2", `{"status":"COMPLETED "}`},
		{"users/u1/task_folders/f1/tasks/t3", "users/u1/task_folders/f1/tasks", "t3", `{"status":"Pending"}`},
	}
	for _, r := range rows {
		_, err := db.Exec(insert, r.path, r.collection, r.id, r.data)
		require.NoError(t, err)
	}

	ran, err := RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ran)

	read := func(path string) map[string]interface{} {
		var raw string
		require.NoError(t, db.QueryRow("SELECT data FROM documents WHERE path = ?", path).Scan(&raw))
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(raw), &data))
		return data
	}

	f1 := read("users/u1/task_folders/f1")
	assert.Equal(t, "chores", f1["description"])
	assert.NotContains(t, f1, "background")

	f2 := read("users/u1/task_folders/f2")
	assert.Equal(t, "keep", f2["description"])
	assert.NotContains(t, f2, "background")

	assert.Equal(t, "In Progress", read("users/u1/task_folders/f1/tasks/t1")["status"])
	assert.Equal(t, "Completed", read("users/u1/task_folders/f1/tasks/t2")["status"])
	assert.Equal(t, "Pending", read("users/u1/task_folders/f1/tasks/t3")["status"])
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_documents.up.sql"))
	assert.Equal(t, 0, extractVersion("README.md"))
}
