/**
 * CONTEXT:   Whole-table fetchers backing every batch report path in C11
 * INPUT:     A *sqlitestore.DB with no date-range filter
 * OUTPUT:    Every days-table row, and every (date, project_id)->duration total
 * BUSINESS:  Batch modes (all-daily, all-monthly, all-weekly, all-yearly,
 *            all-periods) must not issue one query per entity - that is an
 *            N+1 pattern. Fetching the whole table twice and grouping by
 *            label in Go lets every batch kind share the same two SQL passes
 * CHANGE:    Two whole-table fetchers, metadata and duration totals, shared
 *            by every batch report kind
 * RISK:      Medium - loads the full days/time_records tables into memory;
 *            acceptable for a personal time-tracking log's scale
 */

package query

import (
	"context"
	"database/sql"

	"github.com/timetracer/timetracer/internal/sqlitestore"
)

// FetchAllDayMeta returns every days-table row, ordered by date, the first
// of the two batch SQL passes.
func FetchAllDayMeta(ctx context.Context, db *sqlitestore.DB) ([]DayMeta, error) {
	const q = `
SELECT date, status, sleep, remark, getup_time, exercise,
       sleep_total_time, total_exercise_time, anaerobic_time, cardio_time,
       grooming_time, study_time, recreation_time, recreation_zhihu_time,
       recreation_bilibili_time, recreation_douyin_time
FROM days
ORDER BY date ASC`

	var rows []DayMeta
	err := db.IterateRows(ctx, q, nil, func(r *sql.Rows) error {
		var m DayMeta
		if err := r.Scan(&m.Date, &m.Status, &m.Sleep, &m.Remark, &m.GetupTime, &m.Exercise,
			&m.SleepTotalTime, &m.TotalExerciseTime, &m.AnaerobicTime, &m.CardioTime,
			&m.GroomingTime, &m.StudyTime, &m.RecreationTime, &m.RecreationZhihuTime,
			&m.RecreationBilibiliTime, &m.RecreationDouyinTime); err != nil {
			return err
		}
		rows = append(rows, m)
		return nil
	})
	return rows, err
}

// FetchAllProjectStatsByDate returns every date's per-project duration
// totals, the second of the two batch SQL passes.
func FetchAllProjectStatsByDate(ctx context.Context, db *sqlitestore.DB) (map[string][]ProjectStat, error) {
	const q = `
SELECT date, project_id, SUM(duration) AS total
FROM time_records
GROUP BY date, project_id
ORDER BY date ASC`

	result := make(map[string][]ProjectStat)
	err := db.IterateRows(ctx, q, nil, func(r *sql.Rows) error {
		var date string
		var stat ProjectStat
		if err := r.Scan(&date, &stat.ProjectID, &stat.Duration); err != nil {
			return err
		}
		result[date] = append(result[date], stat)
		return nil
	})
	return result, err
}
