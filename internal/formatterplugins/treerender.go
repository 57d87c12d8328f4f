/**
 * CONTEXT:   Dialect-parameterized rendering of the project breakdown tree
 * INPUT:     A built []*projecttree.Node forest plus dialect bullet/indent rules
 * OUTPUT:    A text block: one category header per root, nested bulleted children
 * BUSINESS:  Every dialect renders the same traversal order (descending
 *            duration, then ascending name, sorted again at render time), only
 *            the bullet glyph, indentation, and percent-suffix format differ
 * CHANGE:    Recursive render of the project tree with dialect-supplied bullet
 *            and indent rules
 * RISK:      Medium - percent must be against the node's own duration share of
 *            its root total, rendered as "<name>: <duration> (<percent>%)"
 */

package formatterplugins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/timetracer/timetracer/internal/projecttree"
	"github.com/timetracer/timetracer/internal/timeutil"
)

// TreeDialect carries the three things that vary per output format when
// rendering the project tree: the bullet used for non-root lines, how many
// spaces each depth level indents by, and a line wrapper (for LaTeX's
// \item / \begin{itemize} nesting, which isn't a flat indent).
type TreeDialect struct {
	Bullet      string
	IndentWidth int
	WrapLevel   func(depth int, body string) string // nil means no wrapping (Markdown/Typst)
}

// RenderProjectTree renders every root category and its descendants using
// dialect's bullet/indent rules. Root headers never carry a bullet; every
// other depth does.
func RenderProjectTree(forest []*projecttree.Node, dialect TreeDialect) string {
	if len(forest) == 0 {
		return ""
	}

	var rootTotal int64
	for _, root := range forest {
		rootTotal += root.Duration
	}

	var b strings.Builder
	for _, root := range sortedForRender(forest) {
		percent := percentOf(root.Duration, rootTotal)
		b.WriteString(fmt.Sprintf("%s: %s (%s)\n", root.Name, timeutil.FormatDuration(root.Duration), timeutil.FormatPercentOneDecimal(percent)))
		renderChildren(&b, root.Children, 1, dialect)
	}
	return b.String()
}

func renderChildren(b *strings.Builder, nodes []*projecttree.Node, depth int, dialect TreeDialect) {
	if len(nodes) == 0 {
		return
	}
	nodes = sortedForRender(nodes)
	if dialect.WrapLevel != nil {
		var inner strings.Builder
		for _, n := range nodes {
			writeNodeLine(&inner, n, depth, dialect)
			renderChildren(&inner, n.Children, depth+1, dialect)
		}
		b.WriteString(dialect.WrapLevel(depth, inner.String()))
		return
	}
	for _, n := range nodes {
		writeNodeLine(b, n, depth, dialect)
		renderChildren(b, n.Children, depth+1, dialect)
	}
}

func writeNodeLine(b *strings.Builder, n *projecttree.Node, depth int, dialect TreeDialect) {
	indent := strings.Repeat(" ", depth*dialect.IndentWidth)
	b.WriteString(fmt.Sprintf("%s%s %s: %s\n", indent, dialect.Bullet, n.Name, timeutil.FormatDuration(n.Duration)))
}

// sortedForRender returns a copy of nodes ordered by descending duration,
// then ascending name, leaving the caller's slice untouched.
func sortedForRender(nodes []*projecttree.Node) []*projecttree.Node {
	out := append([]*projecttree.Node(nil), nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Duration != out[j].Duration {
			return out[i].Duration > out[j].Duration
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func percentOf(value, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}
