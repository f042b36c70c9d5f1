package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/filex"
	"github.com/dmitrijs2005/gophtasks/internal/kv/migrations"
	_ "modernc.org/sqlite"
)

var sqliteQueries = queries{
	get: `SELECT value FROM kv WHERE key = ?`,
	upsert: `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`,
	delete: `DELETE FROM kv WHERE key = ?`,
}

// NewSQLite binds the kv table to an already migrated SQLite handle.
func NewSQLite(db dbx.DBTX) *SQLStorage {
	return &SQLStorage{db: db, q: sqliteQueries}
}

// OpenSQLite opens (creating if needed) the database at dsn, applies the
// migrations and returns the storage with its handle.
//
// dsn is a file path or a modernc.org/sqlite URI such as
// "file:tasks.db?_pragma=busy_timeout(5000)". ":memory:" is allowed.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStorage, *sql.DB, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" on one database.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewSQLite(db), db, nil
}
