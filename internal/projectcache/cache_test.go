package projectcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/pkg/logger"
)

func openTestDB(t *testing.T) *sqlitestore.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache_test.db")
	db, err := sqlitestore.Open(sqlitestore.DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insertProject(t *testing.T, db *sqlitestore.DB, name string, parentID *int64) int64 {
	t.Helper()
	res, err := db.SQL().Exec("INSERT INTO projects (name, parent_id) VALUES (?, ?)", name, parentID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestEnsureLoadedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	rootID := insertProject(t, db, "STUDY", nil)

	cache := New()
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))
	// A second project added after the first load must not appear until Invalidate.
	insertProject(t, db, "WORK", nil)
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	assert.Equal(t, "STUDY", cache.Name(rootID))
	assert.Empty(t, cache.PathParts(rootID+1))
}

func TestPathPartsWalksToRoot(t *testing.T) {
	db := openTestDB(t)
	root := insertProject(t, db, "STUDY", nil)
	mid := insertProject(t, db, "english", &root)
	leaf := insertProject(t, db, "words", &mid)

	cache := New()
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	assert.Equal(t, []string{"STUDY"}, cache.PathParts(root))
	assert.Equal(t, []string{"STUDY", "english"}, cache.PathParts(mid))
	assert.Equal(t, []string{"STUDY", "english", "words"}, cache.PathParts(leaf))
}

func TestPathPartsUnknownIDReturnsNil(t *testing.T) {
	db := openTestDB(t)
	cache := New()
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))
	assert.Nil(t, cache.PathParts(999))
}

func TestInvalidateForcesReload(t *testing.T) {
	db := openTestDB(t)
	cache := New()
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	newID := insertProject(t, db, "NEW", nil)
	assert.Empty(t, cache.PathParts(newID))

	cache.Invalidate()
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))
	assert.Equal(t, []string{"NEW"}, cache.PathParts(newID))
}
