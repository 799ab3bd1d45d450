package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"task-manager/internal/domain"
)

func init() {
	RegisterGoMigration(2, Up_000002_normalize_legacy_documents, Down_000002_normalize_legacy_documents)
}

// Up_000002_normalize_legacy_documents rewrites documents written by older
// clients:
// - task status spellings ("in_progress", "COMPLETED ") become the canonical labels
// - folders that only carry "background" get it moved to "description"
func Up_000002_normalize_legacy_documents(tx *sql.Tx) error {
	type row struct {
		path       string
		collection string
		data       string
	}
	var rowsToCheck []row

	// Read everything first so the updates below don't run under an open cursor.
	rows, err := tx.Query(`SELECT path, collection, data FROM documents
		WHERE collection LIKE '%/tasks' OR collection LIKE '%/task_folders'`)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.path, &r.collection, &r.data); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan document: %w", err)
		}
		rowsToCheck = append(rowsToCheck, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating documents: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE documents SET data = ? WHERE path = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range rowsToCheck {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(r.data), &data); err != nil {
			return fmt.Errorf("document %s has invalid data: %w", r.path, err)
		}

		changed := false
		if strings.HasSuffix(r.collection, "/tasks") {
			changed = normalizeStatus(data)
		} else {
			changed = moveBackground(data)
		}
		if !changed {
			continue
		}

		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode document %s: %w", r.path, err)
		}
		if _, err := stmt.Exec(string(encoded), r.path); err != nil {
			return fmt.Errorf("failed to update document %s: %w", r.path, err)
		}
	}

	return nil
}

// Down_000002_normalize_legacy_documents is a no-op: the original spellings
// are not recoverable and the canonical ones are read by every client.
func Down_000002_normalize_legacy_documents(tx *sql.Tx) error {
	return nil
}

func normalizeStatus(data map[string]interface{}) bool {
	raw, ok := data["status"].(string)
	if !ok {
		return false
	}
	canonical := domain.NormalizeStatus(raw).String()
	if canonical == raw {
		return false
	}
	data["status"] = canonical
	return true
}

func moveBackground(data map[string]interface{}) bool {
	background, ok := data["background"]
	if !ok {
		return false
	}
	if _, hasDescription := data["description"]; !hasDescription {
		data["description"] = background
	}
	delete(data, "background")
	return true
}
