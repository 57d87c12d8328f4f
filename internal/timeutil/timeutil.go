/**
 * CONTEXT:   Time and string utilities shared by the parser, query layer, and formatters
 * INPUT:     HH:MM clock strings, second counts, ISO dates, raw multi-line remark text
 * OUTPUT:    Parsed seconds-since-midnight, "Xh Ym" duration labels, date-range bounds
 * BUSINESS:  Every report dialect must render identical durations/percentages for identical data
 * CHANGE:    Initial extraction as the leaf utility layer for the report pipeline
 * RISK:      Low - pure functions, no I/O
 */

package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const SecondsPerDay = 86400

// ParseClock converts "HH:MM" into seconds since midnight. Malformed input
// returns an error; callers in the parser treat that as "not a time line".
func ParseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("timeutil: malformed clock value %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("timeutil: malformed hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("timeutil: malformed minute in %q", hhmm)
	}
	return h*3600 + m*60, nil
}

// DurationSeconds applies the midnight-wrap rule from the interval invariant:
// duration = (end - start + 86400) mod 86400.
func DurationSeconds(startSec, endSec int) int {
	d := (endSec - startSec + SecondsPerDay) % SecondsPerDay
	return d
}

// FormatDuration renders seconds as "Xh Ym", matching every report dialect.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatPercent renders an already-scaled 0..100 value with exactly two
// decimal digits, e.g. "75.00%". All three formatter dialects must agree on
// this.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatPercentOneDecimal renders the project-tree node percentage at one
// decimal digit instead of two.
func FormatPercentOneDecimal(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// CountPercentage formats "count (xx.yy%)" against a denominator, returning
// "count (0.00%)" when the denominator is zero instead of dividing by zero.
func CountPercentage(count, denominator int) string {
	if denominator <= 0 {
		return fmt.Sprintf("%d (0.00%%)", count)
	}
	pct := float64(count) / float64(denominator) * 100
	return fmt.Sprintf("%d (%s)", count, FormatPercent(pct))
}

// ReflowContinuation splits a multi-line remark into its lines and joins them
// using a dialect-specific continuation marker for every line after the
// first (LaTeX "\\\\", Typst " \\", Markdown an indented blank continuation).
func ReflowContinuation(remark, marker, indent string) string {
	lines := strings.Split(remark, "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(marker)
			b.WriteString("\n")
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	return b.String()
}

// EscapeLatex escapes the characters LaTeX treats specially so arbitrary
// remark/project text can be embedded in a .tex document body.
func EscapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		`&`, `\&`,
		`%`, `\%`,
		`$`, `\$`,
		`#`, `\#`,
		`_`, `\_`,
		`{`, `\{`,
		`}`, `\}`,
		`~`, `\textasciitilde{}`,
		`^`, `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

// MonthBounds returns the first and last calendar day of year-month as ISO
// date strings. SQLite's date() tolerates the last day naively computed by
// rolling forward a month and back a day.
func MonthBounds(year int, month int) (start, end string, err error) {
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("timeutil: invalid month %d", month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

// ISOWeekBounds returns the first (Monday) and last (Sunday) calendar day of
// an ISO-8601 week identifier "YYYY-Www".
func ISOWeekBounds(isoWeek string) (start, end string, err error) {
	parts := strings.SplitN(isoWeek, "-W", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("timeutil: malformed ISO week %q", isoWeek)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("timeutil: malformed ISO week year in %q", isoWeek)
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil || week < 1 || week > 53 {
		return "", "", fmt.Errorf("timeutil: malformed ISO week number in %q", isoWeek)
	}

	// Jan 4th is always in week 1 of its ISO year (ISO-8601 definition).
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	isoYear, isoWk := jan4.ISOWeek()
	// Walk jan4 back to the Monday of its own ISO week.
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(offset - 1))
	_ = isoYear
	_ = isoWk

	monday := week1Monday.AddDate(0, 0, (week-1)*7)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02"), nil
}

// YearBounds returns "YYYY-01-01" and "YYYY-12-31".
func YearBounds(year int) (start, end string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// PeriodBounds returns the inclusive [today-N+1, today] range for a trailing
// N-day period, anchored to the platform clock's local date.
func PeriodBounds(days int, now time.Time) (start, end string, err error) {
	if days <= 0 {
		return "", "", fmt.Errorf("timeutil: period length must be positive, got %d", days)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -(days - 1))
	return from.Format("2006-01-02"), today.Format("2006-01-02"), nil
}

// ParseDate parses an ISO "YYYY-MM-DD" date string in UTC, the form every
// days-table row and batch report label derivation works from.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: invalid date %q: %w", date, err)
	}
	return t, nil
}

// ValidateISODateRange checks that both bounds parse as ISO dates and
// start <= end.
func ValidateISODateRange(start, end string) error {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("timeutil: invalid start date %q: %w", start, err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("timeutil: invalid end date %q: %w", end, err)
	}
	if s.After(e) {
		return fmt.Errorf("timeutil: start date %q is after end date %q", start, end)
	}
	return nil
}
