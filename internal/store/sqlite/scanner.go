package sqlite

import (
	"encoding/json"
	"fmt"

	"task-manager/internal/store"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanDocument scans path, doc_id and data columns into a document
func ScanDocument(scanner Scanner) (*store.Document, error) {
	doc := &store.Document{}
	var raw string

	if err := scanner.Scan(&doc.Path, &doc.ID, &raw); err != nil {
		return nil, err
	}

	data, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.Path, err)
	}
	doc.Data = data
	return doc, nil
}

// ScanDocuments scans multiple documents from database rows
func ScanDocuments(rows Rows) ([]*store.Document, error) {
	docs := make([]*store.Document, 0)
	for rows.Next() {
		doc, err := ScanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func decodeData(raw string) (store.Data, error) {
	data := store.Data{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func encodeData(data store.Data) (string, error) {
	if data == nil {
		data = store.Data{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
