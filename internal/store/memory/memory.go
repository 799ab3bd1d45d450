// Package memory is an in-process implementation of store.Store. It backs the
// "memory" store driver and doubles as the fake used throughout the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"task-manager/internal/store"
)

// Op names a store operation for fault injection.
type Op string

const (
	OpGet     Op = "get"
	OpList    Op = "list"
	OpOrderBy Op = "order_by"
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

type fault struct {
	op   Op
	path string
}

// Store keeps documents in a map keyed by path.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]store.Data
	faults map[fault]error
	newID  func() string
	writes int
	calls  atomic.Int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		docs:   make(map[string]store.Data),
		faults: make(map[fault]error),
		newID:  uuid.NewString,
	}
}

// WithIDGenerator replaces the id generator used by Add.
func (s *Store) WithIDGenerator(gen func() string) *Store {
	s.newID = gen
	return s
}

// FailOn makes every op against path return err until Recover is called.
// For OpList and OpOrderBy path is the collection.
func (s *Store) FailOn(op Op, path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[fault{op: op, path: path}] = err
}

// Recover clears all injected faults.
func (s *Store) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[fault]error)
}

// Writes returns the number of successful mutating calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Calls returns the number of store operations attempted, reads included.
func (s *Store) Calls() int {
	return int(s.calls.Load())
}

// Put stores data at path, replacing anything already there.
func (s *Store) Put(path string, data store.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = data.Clone()
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) injected(op Op, path string) error {
	return s.faults[fault{op: op, path: path}]
}

func (s *Store) Get(ctx context.Context, path string) (*store.Document, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected(OpGet, path); err != nil {
		return nil, err
	}

	data, ok := s.docs[path]
	if !ok {
		return nil, store.ErrNoDocument
	}
	return &store.Document{ID: store.Base(path), Path: path, Data: data.Clone()}, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]*store.Document, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected(OpList, collection); err != nil {
		return nil, err
	}
	return s.children(collection), nil
}

func (s *Store) OrderBy(ctx context.Context, collection string, field string, dir store.Direction) ([]*store.Document, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.injected(OpOrderBy, collection); err != nil {
		return nil, err
	}

	docs := s.children(collection)
	sort.SliceStable(docs, func(i, j int) bool {
		c := store.CompareValues(docs[i].Data[field], docs[j].Data[field])
		if dir == store.Descending {
			return c > 0
		}
		return c < 0
	})
	return docs, nil
}

// children must be called with the lock held.
func (s *Store) children(collection string) []*store.Document {
	docs := make([]*store.Document, 0)
	for path, data := range s.docs {
		if store.Parent(path) == collection {
			docs = append(docs, &store.Document{ID: store.Base(path), Path: path, Data: data.Clone()})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func (s *Store) Add(ctx context.Context, collection string, data store.Data) (string, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpAdd, collection); err != nil {
		return "", err
	}

	id := s.newID()
	s.docs[store.Join(collection, id)] = data.Clone()
	s.writes++
	return id, nil
}

func (s *Store) Update(ctx context.Context, path string, data store.Data) error {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.injected(OpUpdate, path); err != nil {
		return err
	}

	existing, ok := s.docs[path]
	if !ok {
		return store.ErrNoDocument
	}
	merged := existing.Clone()
	merged.Merge(data)
	s.docs[path] = merged
	s.writes++
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(path, true)
}

func (s *Store) deleteLocked(path string, mustExist bool) error {
	if err := s.injected(OpDelete, path); err != nil {
		return err
	}
	if _, ok := s.docs[path]; !ok {
		if mustExist {
			return store.ErrNoDocument
		}
		return nil
	}
	delete(s.docs, path)
	s.writes++
	return nil
}

// RecursiveDelete walks the subtree under path and deletes leaves before
// parents. Missing entries are skipped, so re-running the walk after a
// failure part way through converges on an empty subtree.
func (s *Store) RecursiveDelete(ctx context.Context, path string) error {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	worklist := make([]string, 0)
	for p := range s.docs {
		if store.IsWithin(p, path) {
			worklist = append(worklist, p)
		}
	}
	sort.Slice(worklist, func(i, j int) bool {
		di, dj := store.Depth(worklist[i]), store.Depth(worklist[j])
		if di != dj {
			return di > dj
		}
		return worklist[i] < worklist[j]
	})

	for _, p := range worklist {
		if err := s.deleteLocked(p, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ store.Store = (*Store)(nil)
