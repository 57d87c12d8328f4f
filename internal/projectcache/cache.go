/**
 * CONTEXT:   In-memory mirror of the projects table for fast path reconstruction
 * INPUT:     A *sqlitestore.DB to load from
 * OUTPUT:    project_id -> root-to-leaf name segments, without re-querying per lookup
 * BUSINESS:  Every tree render and path-qualified report walks parent chains repeatedly;
 *            a session-scoped cache avoids one query per ancestor per row
 * CHANGE:    Cache is a value owned by whichever caller opens the database,
 *            never a package-level singleton
 * RISK:      Low - read-only snapshot; after writes the caller reloads it via
 *            Invalidate followed by EnsureLoaded
 */

package projectcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/timetracer/timetracer/internal/sqlitestore"
)

type projectInfo struct {
	name     string
	parentID int64 // 0 means no parent
}

// Cache is an owned, non-singleton mirror of the projects table. Construct
// one per database session and call EnsureLoaded before any PathParts call.
type Cache struct {
	mu     sync.RWMutex
	loaded bool
	byID   map[int64]projectInfo
}

// New returns an empty, unloaded cache.
func New() *Cache {
	return &Cache{byID: make(map[int64]projectInfo)}
}

// EnsureLoaded populates the cache from the projects table exactly once;
// subsequent calls are no-ops unless Invalidate was called in between.
func (c *Cache) EnsureLoaded(ctx context.Context, db *sqlitestore.DB) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	rows, err := db.SQL().QueryContext(ctx, "SELECT id, name, parent_id FROM projects")
	if err != nil {
		return fmt.Errorf("projectcache: failed to load projects: %w", err)
	}
	defer rows.Close()

	fresh := make(map[int64]projectInfo)
	for rows.Next() {
		var id int64
		var name string
		var parentID *int64
		if err := rows.Scan(&id, &name, &parentID); err != nil {
			return fmt.Errorf("projectcache: failed to scan project row: %w", err)
		}
		info := projectInfo{name: name}
		if parentID != nil {
			info.parentID = *parentID
		}
		fresh[id] = info
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("projectcache: row iteration failed: %w", err)
	}

	c.byID = fresh
	c.loaded = true
	return nil
}

// Invalidate forces the next EnsureLoaded call to re-query the database,
// used after a bulk import appends new project rows mid-session.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// PathParts walks parent_id links from id up to a root (parent_id = 0 or
// unknown), returning root-first name segments. Unknown ids yield nil.
func (c *Cache) PathParts(id int64) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var reversed []string
	current := id
	visited := make(map[int64]bool)
	for current != 0 {
		if visited[current] {
			break // cyclic parent_id chain, stop rather than loop forever
		}
		visited[current] = true

		info, ok := c.byID[current]
		if !ok {
			break
		}
		reversed = append(reversed, info.name)
		current = info.parentID
	}
	if len(reversed) == 0 {
		return nil
	}

	parts := make([]string, len(reversed))
	for i, name := range reversed {
		parts[len(reversed)-1-i] = name
	}
	return parts
}

// Name returns the leaf name for id, or "" if unknown.
func (c *Cache) Name(id int64) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[id].name
}
