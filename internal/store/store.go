// Package store defines the narrow document-store contract the repositories
// are written against. Documents live at slash-separated paths; a collection
// is the path of a document's parent.
package store

import (
	"context"
	"errors"
)

// ErrNoDocument is returned by Get, Update and Delete when nothing is stored
// at the requested path.
var ErrNoDocument = errors.New("store: no document at path")

// Data is the field set of a single document.
type Data map[string]interface{}

// Clone returns a shallow copy of the data.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge copies every field of patch into d. A nil value is stored as null.
func (d Data) Merge(patch Data) {
	for k, v := range patch {
		d[k] = v
	}
}

// Document is a stored document together with its location.
type Document struct {
	ID   string
	Path string
	Data Data
}

// Direction is the sort direction used by OrderBy.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Store is the document store used by the repositories.
type Store interface {
	// Get reads a single document.
	Get(ctx context.Context, path string) (*Document, error)

	// List returns the direct children of a collection, ordered by id.
	List(ctx context.Context, collection string) ([]*Document, error)

	// OrderBy returns the direct children of a collection sorted by field.
	// Documents missing the field sort before all others.
	OrderBy(ctx context.Context, collection string, field string, dir Direction) ([]*Document, error)

	// Add creates a document with a store-assigned id and returns that id.
	Add(ctx context.Context, collection string, data Data) (string, error)

	// Update merges data into an existing document.
	Update(ctx context.Context, path string, data Data) error

	// Delete removes a single document. Children are left untouched.
	Delete(ctx context.Context, path string) error

	// RecursiveDelete removes a document and every document beneath it.
	// Deleting a path with nothing stored under it is not an error.
	RecursiveDelete(ctx context.Context, path string) error

	Close() error
}
