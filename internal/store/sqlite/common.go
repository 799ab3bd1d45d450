package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"task-manager/internal/store"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HandleDatabaseError annotates a driver error with the failed operation
func HandleDatabaseError(operation string, err error) error {
	return fmt.Errorf("sqlite %s: %w", operation, err)
}

// HandleNoRowsError maps sql.ErrNoRows onto store.ErrNoDocument
func HandleNoRowsError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNoDocument
	}
	return err
}

// ValidateRowsAffected reports store.ErrNoDocument when nothing was touched
func ValidateRowsAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return store.ErrNoDocument
	}
	return nil
}

// ExecuteWithRowsAffected executes a query and validates that rows were affected
func ExecuteWithRowsAffected(ctx context.Context, q querier, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("execute query", err)
	}

	return ValidateRowsAffected(result)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, q querier, query string, scanFunc func(Scanner) (*T, error), args ...interface{}) (*T, error) {
	row := q.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err = HandleNoRowsError(err); errors.Is(err, store.ErrNoDocument) {
			return nil, err
		}
		return nil, HandleDatabaseError("scan document", err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, q querier, query string, scanFunc func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query documents", err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan documents", err)
	}

	return results, nil
}
