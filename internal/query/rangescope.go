/**
 * CONTEXT:   Aggregate queries over a date range (month/week/year/period/arbitrary)
 * INPUT:     A RangeRequest describing the kind of range plus its parameters
 * OUTPUT:    RangeScopeResult feeding C6/C7 for Monthly/Weekly/Yearly/Period reports
 * BUSINESS:  All range kinds share the same aggregation shape once reduced to
 *            [start, end] bounds; only the bound computation differs per kind
 * CHANGE:    Reduces every range kind to [start, end] bounds via
 *            internal/timeutil, then runs one shared aggregation query
 * RISK:      Medium - actual_days and flag counts must be scoped to the days
 *            table, not time_records, or multi-interval days double-count
 */

package query

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/internal/timeutil"
)

// RangeKind identifies which bound-computation rule a RangeRequest uses.
type RangeKind int

const (
	RangeMonthly RangeKind = iota
	RangeWeekly
	RangeYearly
	RangePeriod
	RangeArbitrary
)

// RangeRequest carries whichever parameters its Kind needs; unused fields
// are ignored.
type RangeRequest struct {
	Kind       RangeKind
	Year       int       // Monthly, Yearly
	Month      int       // Monthly
	ISOWeek    string    // Weekly, e.g. "2019-W01"
	PeriodDays int       // Period
	Now        time.Time // Period's clock reference
	Start      string    // Arbitrary
	End        string    // Arbitrary
}

// Bounds resolves a RangeRequest into [start, end] ISO date strings.
func (r RangeRequest) Bounds() (start, end string, err error) {
	switch r.Kind {
	case RangeMonthly:
		return timeutil.MonthBounds(r.Year, r.Month)
	case RangeWeekly:
		return timeutil.ISOWeekBounds(r.ISOWeek)
	case RangeYearly:
		s, e := timeutil.YearBounds(r.Year)
		return s, e, nil
	case RangePeriod:
		return timeutil.PeriodBounds(r.PeriodDays, r.Now)
	case RangeArbitrary:
		if err := timeutil.ValidateISODateRange(r.Start, r.End); err != nil {
			return "", "", err
		}
		return r.Start, r.End, nil
	default:
		return "", "", fmt.Errorf("query: unknown range kind %d", r.Kind)
	}
}

// FetchRangeScope resolves req's bounds and aggregates totals, actual days,
// day-flag counts, and per-project totals over [start, end].
func FetchRangeScope(ctx context.Context, db *sqlitestore.DB, req RangeRequest) (*RangeScopeResult, error) {
	start, end, err := req.Bounds()
	if err != nil {
		return nil, err
	}
	return FetchRangeScopeBounds(ctx, db, start, end)
}

// FetchRangeScopeBounds runs the aggregate queries directly against
// explicit ISO bounds, bypassing RangeRequest for callers (like C12) that
// already have a resolved [start, end].
func FetchRangeScopeBounds(ctx context.Context, db *sqlitestore.DB, start, end string) (*RangeScopeResult, error) {
	result := &RangeScopeResult{Start: start, End: end}

	row := db.SQL().QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			SUM(CASE WHEN status = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN sleep = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN exercise = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN cardio_time > 0 THEN 1 ELSE 0 END),
			SUM(CASE WHEN anaerobic_time > 0 THEN 1 ELSE 0 END)
		FROM days
		WHERE date BETWEEN ? AND ?`, start, end)

	var actualDays sql.NullInt64
	var statusDays, sleepDays, exerciseDays, cardioDays, anaerobicDays sql.NullInt64
	if err := row.Scan(&actualDays, &statusDays, &sleepDays, &exerciseDays, &cardioDays, &anaerobicDays); err != nil {
		return nil, fmt.Errorf("query: failed to aggregate day flags for [%s, %s]: %w", start, end, err)
	}
	result.ActualDays = int(actualDays.Int64)
	result.Flags = DayFlagCounts{
		StatusDays:    int(statusDays.Int64),
		SleepDays:     int(sleepDays.Int64),
		ExerciseDays:  int(exerciseDays.Int64),
		CardioDays:    int(cardioDays.Int64),
		AnaerobicDays: int(anaerobicDays.Int64),
	}

	totalRow := db.SQL().QueryRowContext(ctx, `
		SELECT COALESCE(SUM(duration), 0) FROM time_records WHERE date BETWEEN ? AND ?`, start, end)
	if err := totalRow.Scan(&result.TotalDuration); err != nil {
		return nil, fmt.Errorf("query: failed to sum total duration for [%s, %s]: %w", start, end, err)
	}

	stats, err := fetchProjectStats(ctx, db, "WHERE date BETWEEN ? AND ?", []interface{}{start, end})
	if err != nil {
		return nil, err
	}
	result.ProjectStats = stats

	return result, nil
}
