/**
 * CONTEXT:   Single-date report queries: metadata, detailed records, project totals
 * INPUT:     An ISO date and an open database handle
 * OUTPUT:    DayScopeResult feeding C6/C7 for the daily report
 * BUSINESS:  Daily reports need both the raw interval list and pre-aggregated
 *            per-project totals in one round trip each, never per-row queries
 * CHANGE:    One query method per distinct result shape: metadata, detailed
 *            records, and per-project totals
 * RISK:      Medium - the project-path CTE join must stay in sync with schema_constants.go
 */

package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timetracer/timetracer/internal/sqlitestore"
)

// FetchDayMeta loads the days table row for date. It returns (nil, nil) if
// the date has no stored row rather than an error, since an empty day is a
// valid report input.
func FetchDayMeta(ctx context.Context, db *sqlitestore.DB, date string) (*DayMeta, error) {
	row := db.SQL().QueryRowContext(ctx, `
		SELECT date, status, sleep, remark, getup_time, exercise,
		       sleep_total_time, total_exercise_time, anaerobic_time, cardio_time,
		       grooming_time, study_time, recreation_time, recreation_zhihu_time,
		       recreation_bilibili_time, recreation_douyin_time
		FROM days WHERE date = ?`, date)

	var m DayMeta
	err := row.Scan(&m.Date, &m.Status, &m.Sleep, &m.Remark, &m.GetupTime, &m.Exercise,
		&m.SleepTotalTime, &m.TotalExerciseTime, &m.AnaerobicTime, &m.CardioTime,
		&m.GroomingTime, &m.StudyTime, &m.RecreationTime, &m.RecreationZhihuTime,
		&m.RecreationBilibiliTime, &m.RecreationDouyinTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query: failed to fetch day metadata for %s: %w", date, err)
	}
	return &m, nil
}

// FetchDetailedRecords returns every time_records row for date, joined
// against the recursive project-path CTE, ordered by insertion order.
func FetchDetailedRecords(ctx context.Context, db *sqlitestore.DB, date string) ([]DetailedRecord, error) {
	q := sqlitestore.ProjectPathCTE + `
		SELECT t.start, t.end, project_path.path, t.duration, t.activity_remark
		FROM time_records t
		JOIN project_path ON project_path.id = t.project_id
		WHERE t.date = ?
		ORDER BY t.logical_id ASC`

	var records []DetailedRecord
	err := db.IterateRows(ctx, q, []interface{}{date}, func(rows *sql.Rows) error {
		var r DetailedRecord
		if err := rows.Scan(&r.Start, &r.End, &r.ProjectPath, &r.DurationSec, &r.ActivityRemark); err != nil {
			return fmt.Errorf("query: failed to scan detailed record: %w", err)
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FetchProjectStatsForDate aggregates duration by project_id for a single
// date, the flat shape C6 turns into a tree.
func FetchProjectStatsForDate(ctx context.Context, db *sqlitestore.DB, date string) ([]ProjectStat, error) {
	return fetchProjectStats(ctx, db, "WHERE date = ?", []interface{}{date})
}

// FetchDayScope composes metadata, detailed records, and project stats into
// the single value C7's Daily report builder needs.
func FetchDayScope(ctx context.Context, db *sqlitestore.DB, date string) (*DayScopeResult, error) {
	meta, err := FetchDayMeta(ctx, db, date)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = &DayMeta{Date: date, GetupTime: "00:00"}
	}

	records, err := FetchDetailedRecords(ctx, db, date)
	if err != nil {
		return nil, err
	}

	stats, err := FetchProjectStatsForDate(ctx, db, date)
	if err != nil {
		return nil, err
	}

	return &DayScopeResult{Meta: *meta, DetailedRecords: records, ProjectStats: stats}, nil
}

func fetchProjectStats(ctx context.Context, db *sqlitestore.DB, whereClause string, args []interface{}) ([]ProjectStat, error) {
	q := fmt.Sprintf(`
		SELECT project_id, SUM(duration)
		FROM time_records
		%s
		GROUP BY project_id`, whereClause)

	var stats []ProjectStat
	err := db.IterateRows(ctx, q, args, func(rows *sql.Rows) error {
		var s ProjectStat
		if err := rows.Scan(&s.ProjectID, &s.Duration); err != nil {
			return fmt.Errorf("query: failed to scan project stat: %w", err)
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
