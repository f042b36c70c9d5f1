// Package dbx holds the database/sql plumbing shared by the SQL storage
// drivers.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the drivers use.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
