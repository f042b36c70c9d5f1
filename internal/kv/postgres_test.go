package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*SQLStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func TestPostgres_Get(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	q := `^SELECT value FROM kv WHERE key = \$1$`

	mock.ExpectQuery(q).WithArgs("task_manager_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
	v, err := st.Get(context.Background(), "task_manager_users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	mock.ExpectQuery(q).WithArgs("absent").WillReturnError(sql.ErrNoRows)
	v, err = st.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)

	mock.ExpectQuery(q).WithArgs("k").WillReturnError(errors.New("db down"))
	_, err = st.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "failed to get kv[k]: db down")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetUpserts(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	q := `(?s)INSERT INTO kv \(key, value, updated_at\) VALUES \(\$1, \$2, now\(\)\)\s+ON CONFLICT \(key\) DO UPDATE`

	mock.ExpectExec(q).WithArgs("k", []byte(`{}`)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, st.Set(context.Background(), "k", []byte(`{}`)))

	mock.ExpectExec(q).WithArgs("k", []byte{}).WillReturnError(errors.New("readonly"))
	assert.ErrorContains(t, st.Set(context.Background(), "k", nil), "failed to set kv[k]")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`^DELETE FROM kv WHERE key = \$1$`).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, st.Delete(ctx, "k"))

	mock.ExpectExec(`^DELETE FROM kv WHERE key = \$1$`).WithArgs("k").WillReturnError(errors.New("db down"))
	assert.ErrorContains(t, st.Delete(ctx, "k"), "failed to delete kv[k]: db down")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_MigratesThroughGoose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origUp := sqlOpen, gooseUpContext
	t.Cleanup(func() { sqlOpen, gooseUpContext = origOpen, origUp })

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://u:p@localhost/tasks", dsn)
		return db, nil
	}

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	mock.ExpectPing()
	st, handle, err := OpenPostgres(context.Background(), "postgres://u:p@localhost/tasks")
	require.NoError(t, err)
	assert.NotNil(t, st)
	assert.Same(t, db, handle)
	assert.Equal(t, "postgres", gotDir)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_Failures(t *testing.T) {
	origOpen, origUp := sqlOpen, gooseUpContext
	t.Cleanup(func() { sqlOpen, gooseUpContext = origOpen, origUp })

	t.Run("ping", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()
		_, _, err = OpenPostgres(context.Background(), "dsn")
		assert.ErrorContains(t, err, "ping postgres: refused")
	})

	t.Run("migrate", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
		gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("bad sql")
		}

		mock.ExpectPing()
		mock.ExpectClose()
		_, _, err = OpenPostgres(context.Background(), "dsn")
		assert.ErrorContains(t, err, "migrate postgres: bad sql")
	})
}
