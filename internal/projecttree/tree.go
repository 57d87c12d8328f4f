/**
 * CONTEXT:   Assembles flat (project_id, duration) rows into a nested forest
 * INPUT:     []query.ProjectStat plus a loaded *projectcache.Cache
 * OUTPUT:    A forest of *Node, each carrying its own-plus-descendant duration
 * BUSINESS:  Formatters render a project breakdown tree, not a flat list;
 *            every ancestor must reflect the total time spent under it
 * CHANGE:    Builds the forest in one pass over the rows: each row's cached
 *            root-first path creates or reuses one node per segment, and the
 *            row's duration is added to every node on that path; the forest
 *            is sorted afterwards
 * RISK:      Medium - sort order (duration desc, then lexical asc) must match
 *            at every tree depth, not just the root level
 */

package projecttree

import (
	"sort"

	"github.com/timetracer/timetracer/internal/projectcache"
	"github.com/timetracer/timetracer/internal/query"
)

// Node is one level of the project breakdown tree. Duration is the sum of
// this node's own time plus every descendant's time.
type Node struct {
	Name     string
	Duration int64
	Children []*Node
}

func newNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) childNamed(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	child := newNode(name)
	n.Children = append(n.Children, child)
	return child
}

// Build turns flat project-stat rows into a forest of root nodes. Rows whose
// project id resolves to no path segments (cache miss) are skipped.
func Build(stats []query.ProjectStat, cache *projectcache.Cache) []*Node {
	roots := map[string]*Node{}
	var order []string

	for _, stat := range stats {
		parts := cache.PathParts(stat.ProjectID)
		if len(parts) == 0 {
			continue
		}

		rootName := parts[0]
		root, ok := roots[rootName]
		if !ok {
			root = newNode(rootName)
			roots[rootName] = root
			order = append(order, rootName)
		}
		root.Duration += stat.Duration

		current := root
		for _, segment := range parts[1:] {
			current = current.childNamed(segment)
			current.Duration += stat.Duration
		}
	}

	forest := make([]*Node, 0, len(order))
	for _, name := range order {
		forest = append(forest, roots[name])
	}
	sortNodes(forest)
	return forest
}

// sortNodes orders nodes (and recursively their children) by descending
// duration, then ascending lexical name on ties.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Duration != nodes[j].Duration {
			return nodes[i].Duration > nodes[j].Duration
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
