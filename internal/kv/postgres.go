package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/kv/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = queries{
	get: `SELECT value FROM kv WHERE key = $1`,
	upsert: `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`,
	delete: `DELETE FROM kv WHERE key = $1`,
}

func NewPostgres(db dbx.DBTX) *SQLStorage {
	return &SQLStorage{db: db, q: postgresQueries}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres connects through the pgx stdlib driver, pings, and applies
// the migrations.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStorage, *sql.DB, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := RunMigrations(ctx, db, "pgx", migrations.PostgresDir); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewPostgres(db), db, nil
}
