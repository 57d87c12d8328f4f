/**
 * CONTEXT:   Low-level listing queries backing the data-query CLI surface (C12)
 * INPUT:     An open database handle, optional QueryFilters
 * OUTPUT:    Years/months present in the store, filtered day rows, filtered
 *            detailed interval records
 * BUSINESS:  The data-query CLI dispatches on an action enum; every action but
 *            DaysDuration/DaysStats (daysduration.go, statistics.go) reads here
 * CHANGE:    Adds Years/Months/Days/Search, the remaining listing queries the
 *            data-query CLI needs
 * RISK:      Low - read-only listing queries over the same filter builder
 *            every other C5 query already uses
 */

package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timetracer/timetracer/internal/sqlitestore"
)

// MonthCount is one (year, month) pair present in the days table, with the
// count of stored days in it.
type MonthCount struct {
	Year  int
	Month int
	Count int
}

// Years lists every distinct year present in the days table, ascending.
func Years(ctx context.Context, db *sqlitestore.DB) ([]int, error) {
	var years []int
	err := db.IterateRows(ctx, `SELECT DISTINCT year FROM days ORDER BY year ASC`, nil, func(rows *sql.Rows) error {
		var y int
		if err := rows.Scan(&y); err != nil {
			return fmt.Errorf("query: failed to scan year: %w", err)
		}
		years = append(years, y)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return years, nil
}

// Months lists every (year, month) pair present in the days table, filtered
// to year when it is non-nil, ordered chronologically.
func Months(ctx context.Context, db *sqlitestore.DB, year *int) ([]MonthCount, error) {
	q := `SELECT year, month, COUNT(*) FROM days`
	var args []interface{}
	if year != nil {
		q += ` WHERE year = ?`
		args = append(args, *year)
	}
	q += ` GROUP BY year, month ORDER BY year ASC, month ASC`

	var months []MonthCount
	err := db.IterateRows(ctx, q, args, func(rows *sql.Rows) error {
		var m MonthCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return fmt.Errorf("query: failed to scan month row: %w", err)
		}
		months = append(months, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return months, nil
}

// Days lists full days-table rows matching f, ordered by date ascending
// unless reverse is true, capped at limit rows (0 means unlimited).
func Days(ctx context.Context, db *sqlitestore.DB, f QueryFilters, reverse bool, limit int) ([]DayMeta, error) {
	whereClause, args := BuildWhereClauses(f)

	order := "ASC"
	if reverse {
		order = "DESC"
	}

	q := sqlitestore.ProjectPathCTE + fmt.Sprintf(`
		SELECT d.date, d.status, d.sleep, d.remark, d.getup_time, d.exercise,
		       d.sleep_total_time, d.total_exercise_time, d.anaerobic_time, d.cardio_time,
		       d.grooming_time, d.study_time, d.recreation_time, d.recreation_zhihu_time,
		       d.recreation_bilibili_time, d.recreation_douyin_time
		FROM days d
		LEFT JOIN time_records t ON t.date = d.date
		LEFT JOIN project_path ON project_path.id = t.project_id
		%s
		GROUP BY d.date
		ORDER BY d.date %s`, whereClause, order)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	var rows []DayMeta
	err := db.IterateRows(ctx, q, args, func(r *sql.Rows) error {
		var m DayMeta
		if err := r.Scan(&m.Date, &m.Status, &m.Sleep, &m.Remark, &m.GetupTime, &m.Exercise,
			&m.SleepTotalTime, &m.TotalExerciseTime, &m.AnaerobicTime, &m.CardioTime,
			&m.GroomingTime, &m.StudyTime, &m.RecreationTime, &m.RecreationZhihuTime,
			&m.RecreationBilibiliTime, &m.RecreationDouyinTime); err != nil {
			return fmt.Errorf("query: failed to scan day row: %w", err)
		}
		rows = append(rows, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchRecord is one DetailedRecord plus the date it belongs to, since a
// filtered search spans many dates unlike the single-date day-scope query.
type SearchRecord struct {
	Date string
	DetailedRecord
}

// Search lists detailed interval records matching f, joined against the
// recursive project-path CTE so PathContains and activity-remark filters
// can run, ordered by date then insertion order.
func Search(ctx context.Context, db *sqlitestore.DB, f QueryFilters) ([]SearchRecord, error) {
	whereClause, args := BuildWhereClauses(f)

	q := sqlitestore.ProjectPathCTE + fmt.Sprintf(`
		SELECT t.date, t.start, t.end, project_path.path, t.duration, t.activity_remark
		FROM time_records t
		JOIN days d ON d.date = t.date
		JOIN project_path ON project_path.id = t.project_id
		%s
		ORDER BY t.date ASC, t.logical_id ASC`, whereClause)

	var records []SearchRecord
	err := db.IterateRows(ctx, q, args, func(rows *sql.Rows) error {
		var r SearchRecord
		if err := rows.Scan(&r.Date, &r.Start, &r.End, &r.ProjectPath, &r.DurationSec, &r.ActivityRemark); err != nil {
			return fmt.Errorf("query: failed to scan search record: %w", err)
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
