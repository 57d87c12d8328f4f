/**
 * CONTEXT:   Renders a single day's detailed interval records, Daily formatters only
 * INPUT:     reportdata.IntervalView, a path connector, an optional keyword->color map
 * OUTPUT:    "HH:MM - HH:MM (Xh Ym): path.with.connector" lines, optionally colorized
 * BUSINESS:  Operators configure a keyword highlight table so interesting
 *            activities stand out in the rendered report without hardcoding
 *            category names into the formatter itself
 * CHANGE:    Renders one interval per line with connector substitution and
 *            optional keyword colorization
 * RISK:      Medium - connector rewrite and colorization must compose in a
 *            fixed order: connector substitution happens inside the
 *            colorized span, not outside it
 */

package formatterplugins

import (
	"fmt"
	"strings"

	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/timeutil"
)

// ColorWrapper wraps body in a dialect's colorizing primitive for hexColor,
// e.g. LaTeX's `\textcolor{}{}` or Typst's `#text(rgb(""))[]`.
type ColorWrapper func(hexColor, body string) string

// IntervalDialect carries the per-dialect rendering knobs for interval lines.
type IntervalDialect struct {
	Connector     string
	KeywordColors map[string]string
	Colorize      ColorWrapper // nil disables coloring entirely (Markdown)
	ListBullet    string       // e.g. "-", "\item", "+"
	RemarkBullet  string
	RemarkIndent  string
}

// RenderIntervals renders every interval as one line (plus an optional
// indented remark sub-item), joined in order.
func RenderIntervals(intervals []reportdata.IntervalView, dialect IntervalDialect) string {
	var b strings.Builder
	for _, iv := range intervals {
		b.WriteString(renderIntervalLine(iv, dialect))
		b.WriteString("\n")
		if iv.ActivityRemark != "" {
			b.WriteString(dialect.RemarkIndent)
			b.WriteString(dialect.RemarkBullet)
			b.WriteString(" ")
			b.WriteString(timeutil.ReflowContinuation(iv.ActivityRemark, dialect.RemarkBullet, dialect.RemarkIndent))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderIntervalLine(iv reportdata.IntervalView, dialect IntervalDialect) string {
	path := strings.ReplaceAll(iv.ProjectPath, "_", dialect.Connector)
	body := fmt.Sprintf("%s - %s (%s): %s", iv.Start, iv.End, timeutil.FormatDuration(iv.DurationSec), path)

	if dialect.Colorize != nil {
		if color, ok := matchKeywordColor(iv.ProjectPath, dialect.KeywordColors); ok {
			body = dialect.Colorize(color, body)
		}
	}

	if dialect.ListBullet == "" {
		return body
	}
	return dialect.ListBullet + " " + body
}

// matchKeywordColor returns the color for the first configured keyword found
// as a substring of projectPath. Map iteration order is non-deterministic in
// Go, so callers needing a stable pick across ties should avoid overlapping
// keyword sets; report scenarios never rely on tie-breaking.
func matchKeywordColor(projectPath string, keywordColors map[string]string) (string, bool) {
	for keyword, color := range keywordColors {
		if strings.Contains(projectPath, keyword) {
			return color, true
		}
	}
	return "", false
}
