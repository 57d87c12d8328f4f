/**
 * CONTEXT:   Flattens the in-memory project tree into a C-shaped array for the FFI boundary
 * INPUT:     []*projecttree.Node forest
 * OUTPUT:    []ProjectTreeNode with parent_index back-references, rebuildable in one pass
 * BUSINESS:  Pointers/slices-of-pointers cannot cross the ABI boundary; a flat
 *            array with integer back-references is the only safe representation
 * CHANGE:    ProjectTreeNode carries parent_index as its only structural link;
 *            invariant is parent_index in {-1} U [0, own_index)
 * RISK:      High - Flatten/Unflatten must be exact inverses or a plugin rebuilds
 *            the wrong tree shape
 */

package formatterabi

import (
	"fmt"

	"github.com/timetracer/timetracer/internal/projecttree"
)

// ProjectTreeNode is one flattened tree entry. ParentIndex is -1 for roots,
// otherwise an index strictly less than this node's own position in the
// slice, guaranteeing a single forward pass reconstructs the tree.
type ProjectTreeNode struct {
	Name        string
	Duration    int64
	ParentIndex int32
	Reserved    int32
}

// FlattenTree walks forest depth-first (matching C6's render order) and
// produces a flat slice satisfying the parent_index invariant.
func FlattenTree(forest []*projecttree.Node) []ProjectTreeNode {
	var flat []ProjectTreeNode
	var walk func(n *projecttree.Node, parentIndex int32)
	walk = func(n *projecttree.Node, parentIndex int32) {
		ownIndex := int32(len(flat))
		flat = append(flat, ProjectTreeNode{
			Name:        n.Name,
			Duration:    n.Duration,
			ParentIndex: parentIndex,
		})
		for _, child := range n.Children {
			walk(child, ownIndex)
		}
	}
	for _, root := range forest {
		walk(root, -1)
	}
	return flat
}

// UnflattenTree is the inverse of FlattenTree, rebuilding the nested forest
// a plugin (or a Go-side test) needs from the flat wire representation. It
// validates the parent_index invariant and rejects forward references.
func UnflattenTree(flat []ProjectTreeNode) ([]*projecttree.Node, error) {
	nodes := make([]*projecttree.Node, len(flat))
	var forest []*projecttree.Node

	for i, entry := range flat {
		if entry.ParentIndex < -1 || entry.ParentIndex >= int32(i) {
			return nil, fmt.Errorf("formatterabi: node %d has invalid parent_index %d", i, entry.ParentIndex)
		}
		node := &projecttree.Node{Name: entry.Name, Duration: entry.Duration}
		nodes[i] = node

		if entry.ParentIndex == -1 {
			forest = append(forest, node)
		} else {
			parent := nodes[entry.ParentIndex]
			parent.Children = append(parent.Children, node)
		}
	}
	return forest, nil
}
