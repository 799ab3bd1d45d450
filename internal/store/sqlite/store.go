// Package sqlite implements store.Store on top of a single SQLite table of
// JSON documents keyed by path.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-manager/internal/store"
	"task-manager/internal/store/sqlite/migrations"

	_ "modernc.org/sqlite"
)

var fieldName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SQLiteStore implements the store.Store interface
type SQLiteStore struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// New opens (or creates) the database at dbPath and runs pending migrations.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, HandleDatabaseError("open database", err)
	}
	// One connection: ":memory:" databases are per-connection, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", err)
	}

	return &SQLiteStore{db: db, now: time.Now, newID: uuid.NewString}, nil
}

// Migrate applies pending migrations to the database at dbPath and returns
// the versions it applied.
func Migrate(dbPath string) ([]int, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, HandleDatabaseError("open database", err)
	}
	defer db.Close()

	applied, err := migrations.RunMigrations(db)
	if err != nil {
		return nil, HandleDatabaseError("run migrations", err)
	}
	return applied, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) timestamp() string {
	return store.FormatTime(s.now())
}

// Get retrieves the document stored at path
func (s *SQLiteStore) Get(ctx context.Context, path string) (*store.Document, error) {
	query := `SELECT path, doc_id, data FROM documents WHERE path = ?`
	return QuerySingle(ctx, s.db, query, ScanDocument, path)
}

// List retrieves the direct children of a collection
func (s *SQLiteStore) List(ctx context.Context, collection string) ([]*store.Document, error) {
	query := `
	SELECT path, doc_id, data
	FROM documents
	WHERE collection = ?
	ORDER BY doc_id ASC`

	return QueryMultiple(ctx, s.db, query, ScanDocuments, collection)
}

// OrderBy retrieves the direct children of a collection sorted by a JSON field
func (s *SQLiteStore) OrderBy(ctx context.Context, collection string, field string, dir store.Direction) ([]*store.Document, error) {
	if !fieldName.MatchString(field) {
		return nil, fmt.Errorf("sqlite order by: invalid field name %q", field)
	}
	direction := "ASC"
	if dir == store.Descending {
		direction = "DESC"
	}

	query := `
	SELECT path, doc_id, data
	FROM documents
	WHERE collection = ?
	ORDER BY json_extract(data, ?) ` + direction + `, doc_id ASC`

	return QueryMultiple(ctx, s.db, query, ScanDocuments, collection, "$."+field)
}

// Add inserts a document with a generated id
func (s *SQLiteStore) Add(ctx context.Context, collection string, data store.Data) (string, error) {
	encoded, err := encodeData(data)
	if err != nil {
		return "", HandleDatabaseError("encode document", err)
	}

	id := s.newID()
	ts := s.timestamp()
	query := `
	INSERT INTO documents (path, collection, doc_id, data, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, store.Join(collection, id), collection, id, encoded, ts, ts); err != nil {
		return "", HandleDatabaseError("insert document", err)
	}
	return id, nil
}

// Update merges data into the document at path inside a transaction
func (s *SQLiteStore) Update(ctx context.Context, path string, data store.Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin update", err)
	}
	defer tx.Rollback()

	existing, err := QuerySingle(ctx, tx, `SELECT path, doc_id, data FROM documents WHERE path = ?`, ScanDocument, path)
	if err != nil {
		return err
	}

	existing.Data.Merge(data)
	encoded, err := encodeData(existing.Data)
	if err != nil {
		return HandleDatabaseError("encode document", err)
	}

	query := `UPDATE documents SET data = ?, updated_at = ? WHERE path = ?`
	if err := ExecuteWithRowsAffected(ctx, tx, query, encoded, s.timestamp(), path); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit update", err)
	}
	return nil
}

// Delete removes the single document at path
func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	query := `DELETE FROM documents WHERE path = ?`
	return ExecuteWithRowsAffected(ctx, s.db, query, path)
}

// RecursiveDelete removes path and everything beneath it in one statement
func (s *SQLiteStore) RecursiveDelete(ctx context.Context, path string) error {
	query := `DELETE FROM documents WHERE path = ? OR path LIKE ? ESCAPE '\'`
	if _, err := s.db.ExecContext(ctx, query, path, escapeLike(path)+"/%"); err != nil {
		return HandleDatabaseError("recursive delete", err)
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var _ store.Store = (*SQLiteStore)(nil)
