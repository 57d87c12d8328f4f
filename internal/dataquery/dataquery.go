/**
 * CONTEXT:   Pure query execution for the data-query CLI surface (C12)
 * INPUT:     A DataQueryAction plus its filters/sort/limit parameters
 * OUTPUT:    Structured rows (years, months, days, durations, statistics,
 *            search records) - never rendered text
 * BUSINESS:  Keeps "compute" separate from "render" so cmd/timetracer-data-query
 *            owns every tablewriter/color concern and this package stays a
 *            thin, testable dispatcher over internal/query's C5 builders
 * CHANGE:    Dispatches on an Action enum, keeping every listing/statistics/
 *            search query's compute step separate from its rendering
 * RISK:      Low - dispatch plus argument validation, no SQL of its own
 */

package dataquery

import (
	"context"
	"fmt"

	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/sqlitestore"
)

// Action selects which data-query CLI subcommand to run.
type Action int

const (
	ActionYears Action = iota
	ActionMonths
	ActionDays
	ActionDaysDuration
	ActionDaysStats
	ActionSearch
)

// Request carries every parameter any action might need; fields unused by
// the selected Action are ignored.
type Request struct {
	Action  Action
	Filters query.QueryFilters
	Year    *int // Months
	Reverse bool // Days, DaysDuration
	Limit   int  // Days, DaysDuration
	Top     int  // DaysStats: also emit the top/bottom N days by duration
}

// Result holds whichever fields Request.Action populated.
type Result struct {
	Years         []int
	Months        []query.MonthCount
	Days          []query.DayMeta
	DurationRows  []query.DateDuration
	Stats         query.Statistics
	TopLongest    []query.DateDuration
	TopShortest   []query.DateDuration
	SearchRecords []query.SearchRecord
}

// Execute runs req against db and returns the populated Result, or an error
// the caller should exit non-zero on: zero on success, non-zero on query
// failure or invalid filters.
func Execute(ctx context.Context, db *sqlitestore.DB, req Request) (Result, error) {
	switch req.Action {
	case ActionYears:
		years, err := query.Years(ctx, db)
		if err != nil {
			return Result{}, fmt.Errorf("dataquery: years: %w", err)
		}
		return Result{Years: years}, nil

	case ActionMonths:
		months, err := query.Months(ctx, db, req.Year)
		if err != nil {
			return Result{}, fmt.Errorf("dataquery: months: %w", err)
		}
		return Result{Months: months}, nil

	case ActionDays:
		days, err := query.Days(ctx, db, req.Filters, req.Reverse, req.Limit)
		if err != nil {
			return Result{}, fmt.Errorf("dataquery: days: %w", err)
		}
		return Result{Days: days}, nil

	case ActionDaysDuration:
		rows, err := query.DaysDuration(ctx, db, req.Filters, req.Reverse, req.Limit)
		if err != nil {
			return Result{}, fmt.Errorf("dataquery: days_duration: %w", err)
		}
		return Result{DurationRows: rows}, nil

	case ActionDaysStats:
		return executeDaysStats(ctx, db, req)

	case ActionSearch:
		records, err := query.Search(ctx, db, req.Filters)
		if err != nil {
			return Result{}, fmt.Errorf("dataquery: search: %w", err)
		}
		return Result{SearchRecords: records}, nil

	default:
		return Result{}, fmt.Errorf("dataquery: unknown action %d", req.Action)
	}
}

// executeDaysStats computes the statistics summary over every day matching
// req.Filters and, when req.Top > 0, the longest and shortest N days by
// total duration (a single ascending-sorted listing serves both ends).
func executeDaysStats(ctx context.Context, db *sqlitestore.DB, req Request) (Result, error) {
	durations, err := query.AllDurations(ctx, db, req.Filters)
	if err != nil {
		return Result{}, fmt.Errorf("dataquery: days_stats: %w", err)
	}
	stats := query.ComputeStatistics(durations)
	result := Result{Stats: stats}

	if req.Top <= 0 {
		return result, nil
	}

	ascending, err := query.DaysDuration(ctx, db, req.Filters, false, 0)
	if err != nil {
		return Result{}, fmt.Errorf("dataquery: days_stats top-N: %w", err)
	}

	result.TopShortest = headN(ascending, req.Top)
	result.TopLongest = tailN(ascending, req.Top)
	return result, nil
}

func headN(rows []query.DateDuration, n int) []query.DateDuration {
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]query.DateDuration, n)
	copy(out, rows[:n])
	return out
}

// tailN returns the last n rows reversed, so index 0 is the longest day.
func tailN(rows []query.DateDuration, n int) []query.DateDuration {
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]query.DateDuration, n)
	for i := 0; i < n; i++ {
		out[i] = rows[len(rows)-1-i]
	}
	return out
}
