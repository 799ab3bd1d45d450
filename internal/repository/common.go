package repository

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/store"
)

// getDocument reads a single document, reporting absence as nil, nil.
func getDocument(ctx context.Context, s store.Store, path string) (*store.Document, error) {
	doc, err := s.Get(ctx, path)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("get "+path, err)
	}
	return doc, nil
}

// handleWriteError maps a store write failure onto the error taxonomy.
func handleWriteError(err error, resource, id, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNoDocument) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return apperrors.NewPersistenceError(operation, err)
}

// requireDocument returns NotFound when nothing is stored at path.
func requireDocument(ctx context.Context, s store.Store, path, resource, id string) error {
	doc, err := getDocument(ctx, s, path)
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFoundError(resource, id)
	}
	return nil
}

// FanOut runs fn once per branch with at most limit branches in flight; zero
// or a negative limit means no cap. Each branch writes only its own slot and
// the results are returned after every branch has finished. The first failing
// branch cancels the others and fails the whole call.
func FanOut[T any](ctx context.Context, limit int, operation string, branches []string, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, len(branches))
	if limit <= 0 {
		limit = -1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range branches {
		i := i
		g.Go(func() error {
			v, err := fn(gctx, i)
			if err != nil {
				return apperrors.NewPartialFailureError(operation, branches[i], err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
