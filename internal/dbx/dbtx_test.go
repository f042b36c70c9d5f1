package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

func TestDBTX_TxAndDBInterchangeable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exec := func(q DBTX) error {
		_, err := q.ExecContext(context.Background(), "DELETE FROM kv")
		return err
	}

	mock.ExpectExec("DELETE FROM kv").WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, exec(db))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, exec(tx))
	require.NoError(t, tx.Commit())

	require.NoError(t, mock.ExpectationsWereMet())
}
