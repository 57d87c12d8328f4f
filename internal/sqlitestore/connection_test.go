package sqlitestore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/pkg/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timetracer_test.db")
	db, err := Open(DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesSchema(t *testing.T) {
	db := openTestDB(t)

	var count int
	err := db.SQL().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('days','projects','time_records')",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	db1, err := Open(DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := Open(DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db2.Close() })
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(&Config{Path: ""}, logger.NopLogger{})
	assert.Error(t, err)
}

func TestOpenRejectsNilConfig(t *testing.T) {
	_, err := Open(nil, logger.NopLogger{})
	assert.Error(t, err)
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx,
			"INSERT INTO projects (name, parent_id) VALUES (?, NULL)", "STUDY")
		return execErr
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.SQL().QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx,
			"INSERT INTO projects (name, parent_id) VALUES (?, NULL)", "STUDY"); execErr != nil {
			return execErr
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, db.SQL().QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	assert.Equal(t, 0, count, "rollback must discard the insert")
}

func TestCloseIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
}
