package projecttree

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/projectcache"
	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/pkg/logger"
)

func setupCache(t *testing.T) (*sqlitestore.DB, *projectcache.Cache) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree_test.db")
	db, err := sqlitestore.Open(sqlitestore.DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cache := projectcache.New()
	return db, cache
}

func insertProject(t *testing.T, db *sqlitestore.DB, name string, parentID *int64) int64 {
	t.Helper()
	res, err := db.SQL().Exec("INSERT INTO projects (name, parent_id) VALUES (?, ?)", name, parentID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestBuildAccumulatesAlongAncestry(t *testing.T) {
	db, cache := setupCache(t)
	root := insertProject(t, db, "STUDY", nil)
	mid := insertProject(t, db, "english", &root)
	leaf := insertProject(t, db, "words", &mid)
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	stats := []query.ProjectStat{{ProjectID: leaf, Duration: 3600}}
	forest := Build(stats, cache)

	require.Len(t, forest, 1)
	assert.Equal(t, "STUDY", forest[0].Name)
	assert.Equal(t, int64(3600), forest[0].Duration)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "english", forest[0].Children[0].Name)
	assert.Equal(t, int64(3600), forest[0].Children[0].Duration)
	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Equal(t, "words", forest[0].Children[0].Children[0].Name)
}

func TestBuildOrdersByDescendingDurationThenLexical(t *testing.T) {
	db, cache := setupCache(t)
	workRoot := insertProject(t, db, "WORK", nil)
	studyRoot := insertProject(t, db, "STUDY", nil)
	restRoot := insertProject(t, db, "REST", nil)
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	stats := []query.ProjectStat{
		{ProjectID: workRoot, Duration: 100},
		{ProjectID: studyRoot, Duration: 200},
		{ProjectID: restRoot, Duration: 200},
	}
	forest := Build(stats, cache)

	require.Len(t, forest, 3)
	assert.Equal(t, "REST", forest[0].Name)
	assert.Equal(t, "STUDY", forest[1].Name)
	assert.Equal(t, "WORK", forest[2].Name)
}

func TestBuildSkipsUnknownProjectID(t *testing.T) {
	_, cache := setupCache(t)
	stats := []query.ProjectStat{{ProjectID: 999, Duration: 100}}
	forest := Build(stats, cache)
	assert.Empty(t, forest)
}

func TestBuildMergesSiblingPaths(t *testing.T) {
	db, cache := setupCache(t)
	root := insertProject(t, db, "STUDY", nil)
	english := insertProject(t, db, "english", &root)
	math := insertProject(t, db, "math", &root)
	require.NoError(t, cache.EnsureLoaded(context.Background(), db))

	stats := []query.ProjectStat{
		{ProjectID: english, Duration: 1800},
		{ProjectID: math, Duration: 900},
	}
	forest := Build(stats, cache)

	require.Len(t, forest, 1)
	assert.Equal(t, int64(2700), forest[0].Duration)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "english", forest[0].Children[0].Name)
	assert.Equal(t, "math", forest[0].Children[1].Name)
}
