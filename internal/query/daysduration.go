/**
 * CONTEXT:   Per-day total-duration listing for the data-query CLI
 * INPUT:     Optional filters, sort direction, and a result limit
 * OUTPUT:    (date, total_seconds) pairs ordered by SUM(duration)
 * BUSINESS:  Backs the `days_duration` and statistics subcommands, and the
 *            top-N longest/shortest day listings
 * CHANGE:    Initial (date, total_seconds) aggregation query
 * RISK:      Low - thin aggregation query
 */

package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timetracer/timetracer/internal/sqlitestore"
)

// DaysDuration lists (date, total_seconds) pairs aggregated from
// time_records, filtered by f, ordered by total duration ascending unless
// reverse is true, and capped at limit rows (0 means unlimited).
func DaysDuration(ctx context.Context, db *sqlitestore.DB, f QueryFilters, reverse bool, limit int) ([]DateDuration, error) {
	whereClause, args := BuildWhereClauses(f)

	order := "ASC"
	if reverse {
		order = "DESC"
	}

	q := sqlitestore.ProjectPathCTE + fmt.Sprintf(`
		SELECT t.date, SUM(t.duration) AS total
		FROM time_records t
		JOIN days d ON d.date = t.date
		JOIN project_path ON project_path.id = t.project_id
		%s
		GROUP BY t.date
		ORDER BY total %s`, whereClause, order)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	var results []DateDuration
	err := db.IterateRows(ctx, q, args, func(rows *sql.Rows) error {
		var dd DateDuration
		if err := rows.Scan(&dd.Date, &dd.Duration); err != nil {
			return fmt.Errorf("query: failed to scan date/duration row: %w", err)
		}
		results = append(results, dd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AllDurations is a convenience wrapper returning just the duration column
// from DaysDuration, the shape ComputeStatistics consumes directly.
func AllDurations(ctx context.Context, db *sqlitestore.DB, f QueryFilters) ([]int64, error) {
	rows, err := DaysDuration(ctx, db, f, false, 0)
	if err != nil {
		return nil, err
	}
	durations := make([]int64, len(rows))
	for i, r := range rows {
		durations[i] = r.Duration
	}
	return durations, nil
}
