/**
 * CONTEXT:   Streaming line-oriented parser for personal time-log text files
 * INPUT:     A finite, non-restartable sequence of text lines (one log file)
 * OUTPUT:    Day-indexed DayRecord/IntervalRecord buffers plus a ParentChildPair set
 * BUSINESS:  The parser is the only producer feeding the persistence adapter (external)
 * CHANGE:    Single-pass scanner over Date/Status/Remark/interval lines; hoists
 *            top-level parent registration to run once per parse session
 *            instead of once per line
 * RISK:      Medium - malformed input must never abort the host process
 */

package logparser

import (
	"bufio"
	"io"
	"strings"

	"github.com/timetracer/timetracer/internal/timeutil"
)

// Parser holds the private mutable state the spec describes: the current
// date, its metadata, the day-local interval buffer, a committed flag, and
// the accumulating parent/child set. One Parser instance processes exactly
// one log file's line sequence; callers create a fresh Parser per file.
type Parser struct {
	topLevelParents map[string]string // configured segment -> display name

	currentDate  string
	day          DayRecord
	dayIntervals []IntervalRecord
	committed    bool

	result Result
}

// NewParser creates a parser seeded with the configured top-level category
// map (e.g. {"study": "STUDY"}). The mapping is inserted into the
// parent/child set exactly once here instead of on every project-path line.
func NewParser(topLevelParents map[string]string) *Parser {
	p := &Parser{
		topLevelParents: topLevelParents,
		committed:       true, // no open day yet
		result: Result{
			parentChildOK: make(map[ParentChildPair]struct{}),
		},
	}
	for segment, display := range topLevelParents {
		p.addPair(ParentChildPair{Child: segment, Parent: display})
	}
	return p
}

func (p *Parser) addPair(pair ParentChildPair) {
	if _, ok := p.result.parentChildOK[pair]; ok {
		return
	}
	p.result.parentChildOK[pair] = struct{}{}
	p.result.ParentChild = append(p.result.ParentChild, pair)
}

// ParseReader consumes every line from r, then flushes the trailing day.
// IO errors are returned to the caller, who is expected to skip the file;
// malformed individual lines are silently ignored (forward-compat with
// comments and headers), matching the source's per-line exception handling.
func (p *Parser) ParseReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.ParseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	p.Flush()
	return nil
}

// ParseLine processes a single already-read line, updating parser state.
// It never returns an error: malformed lines are ignored.
func (p *Parser) ParseLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	switch {
	case strings.HasPrefix(line, "Date:"):
		p.commit()
		p.handleDate(strings.TrimSpace(line[len("Date:"):]))
	case strings.HasPrefix(line, "Status:"):
		p.day.Status = parseBoolLike(strings.TrimSpace(line[len("Status:"):]))
	case strings.HasPrefix(line, "Sleep:"):
		p.day.Sleep = parseBoolLike(strings.TrimSpace(line[len("Sleep:"):]))
	case strings.HasPrefix(line, "Remark:"):
		p.day.Remark = strings.TrimSpace(line[len("Remark:"):])
	case strings.HasPrefix(line, "Getup:"):
		p.day.Getup = strings.TrimSpace(line[len("Getup:"):])
	case strings.HasPrefix(line, "Exercise:"):
		p.day.Exercise = strings.TrimSpace(line[len("Exercise:"):])
	case strings.Contains(line, "~"):
		p.handleTimeRecord(line)
	default:
		// unrecognized line: ignored, forward-compatible with comments
	}
}

func parseBoolLike(v string) bool {
	return strings.EqualFold(v, "true")
}

func (p *Parser) handleDate(date string) {
	p.currentDate = date
	p.day = defaultDayRecord(date)
	p.dayIntervals = p.dayIntervals[:0]
	p.committed = false
}

func (p *Parser) handleTimeRecord(line string) {
	tildeIdx := strings.IndexByte(line, '~')
	if tildeIdx < 0 || len(line) < tildeIdx+6 {
		return
	}
	startStr := strings.TrimSpace(line[:tildeIdx])
	rest := line[tildeIdx+1:]
	if len(rest) < 5 {
		return
	}
	endStr := rest[:5]
	projectPath := strings.TrimSpace(rest[5:])
	if projectPath == "" {
		return
	}

	startSec, err := timeutil.ParseClock(startStr)
	if err != nil {
		return
	}
	endSec, err := timeutil.ParseClock(endStr)
	if err != nil {
		return
	}

	interval := IntervalRecord{
		Date:            p.currentDate,
		Start:           startStr,
		End:             endStr,
		ProjectPath:     projectPath,
		DurationSeconds: timeutil.DurationSeconds(startSec, endSec),
	}
	p.dayIntervals = append(p.dayIntervals, interval)
	p.processProjectPath(projectPath)
}

// processProjectPath emits a (child, parent) pair for every prefix of length
// >= 2 segments, e.g. "study_english_words" yields
// (study_english, study) and (study_english_words, study_english).
func (p *Parser) processProjectPath(path string) {
	segments := strings.Split(path, "_")
	if len(segments) < 2 {
		return
	}
	parent := segments[0]
	for i := 1; i < len(segments); i++ {
		child := parent + "_" + segments[i]
		p.addPair(ParentChildPair{Child: child, Parent: parent})
		parent = child
	}
}

// commit moves the current day's metadata and interval buffer into the
// result vectors. It is idempotent: calling it twice for the same date
// without an intervening "Date:" line is a no-op, matching
// current_date_processed in the source.
func (p *Parser) commit() {
	if p.currentDate == "" || p.committed {
		return
	}
	p.result.Days = append(p.result.Days, p.day)
	p.result.Intervals = append(p.result.Intervals, p.dayIntervals...)
	p.dayIntervals = nil
	p.committed = true
}

// Flush commits the final day. Callers must call this explicitly after the
// last line of the file; there is no implicit flush on EOF detection beyond
// what ParseReader already does.
func (p *Parser) Flush() {
	p.commit()
}

// Result returns the accumulated output. Safe to call multiple times; it
// reflects parser state as of the last call to ParseLine/Flush.
func (p *Parser) Result() Result {
	return Result{
		Days:        append([]DayRecord(nil), p.result.Days...),
		Intervals:   append([]IntervalRecord(nil), p.result.Intervals...),
		ParentChild: append([]ParentChildPair(nil), p.result.ParentChild...),
	}
}
