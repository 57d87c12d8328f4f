package dataquery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/pkg/logger"
)

func openTestDB(t *testing.T) *sqlitestore.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timetracer_test.db")
	db, err := sqlitestore.Open(sqlitestore.DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedProject(t *testing.T, db *sqlitestore.DB, name string) int64 {
	t.Helper()
	res, err := db.SQL().Exec("INSERT INTO projects (name, parent_id) VALUES (?, NULL)", name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func seedDay(t *testing.T, db *sqlitestore.DB, date string, year, month int, projectID int64, durationSec int64) {
	t.Helper()
	_, err := db.SQL().Exec(`
		INSERT INTO days (date, year, month, status, sleep, remark, getup_time, exercise,
			sleep_total_time, total_exercise_time, anaerobic_time, cardio_time, grooming_time,
			study_time, recreation_time, recreation_zhihu_time, recreation_bilibili_time, recreation_douyin_time)
		VALUES (?, ?, ?, 1, 1, 'daily remark', '07:00', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)`,
		date, year, month)
	require.NoError(t, err)

	_, err = db.SQL().Exec(`
		INSERT INTO time_records (date, start, end, project_id, duration, activity_remark)
		VALUES (?, '09:00', '10:00', ?, ?, 'working')`,
		date, projectID, durationSec)
	require.NoError(t, err)
}

func TestExecuteYears(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 1800)
	seedDay(t, db, "2021-03-01", 2021, 3, projectID, 1800)

	result, err := Execute(context.Background(), db, Request{Action: ActionYears})
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2021}, result.Years)
}

func TestExecuteMonthsFilteredByYear(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 1800)
	seedDay(t, db, "2020-02-01", 2020, 2, projectID, 1800)
	seedDay(t, db, "2021-03-01", 2021, 3, projectID, 1800)

	year := 2020
	result, err := Execute(context.Background(), db, Request{Action: ActionMonths, Year: &year})
	require.NoError(t, err)
	require.Len(t, result.Months, 2)
	assert.Equal(t, 2020, result.Months[0].Year)
	assert.Equal(t, 1, result.Months[0].Month)
}

func TestExecuteDaysAppliesReverseAndLimit(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 1800)
	seedDay(t, db, "2020-01-02", 2020, 1, projectID, 1800)
	seedDay(t, db, "2020-01-03", 2020, 1, projectID, 1800)

	result, err := Execute(context.Background(), db, Request{Action: ActionDays, Reverse: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Days, 2)
	assert.Equal(t, "2020-01-03", result.Days[0].Date)
	assert.Equal(t, "2020-01-02", result.Days[1].Date)
}

func TestExecuteDaysDuration(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 900)
	seedDay(t, db, "2020-01-02", 2020, 1, projectID, 3600)

	result, err := Execute(context.Background(), db, Request{Action: ActionDaysDuration})
	require.NoError(t, err)
	require.Len(t, result.DurationRows, 2)
	assert.Equal(t, "2020-01-01", result.DurationRows[0].Date)
	assert.Equal(t, int64(900), result.DurationRows[0].Duration)
}

func TestExecuteDaysStatsWithoutTop(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 900)
	seedDay(t, db, "2020-01-02", 2020, 1, projectID, 3600)

	result, err := Execute(context.Background(), db, Request{Action: ActionDaysStats})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Count)
	assert.Nil(t, result.TopLongest)
	assert.Nil(t, result.TopShortest)
}

func TestExecuteDaysStatsWithTopOrdersCorrectly(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 900)
	seedDay(t, db, "2020-01-02", 2020, 1, projectID, 3600)
	seedDay(t, db, "2020-01-03", 2020, 1, projectID, 1800)

	result, err := Execute(context.Background(), db, Request{Action: ActionDaysStats, Top: 2})
	require.NoError(t, err)
	require.Len(t, result.TopLongest, 2)
	require.Len(t, result.TopShortest, 2)
	assert.Equal(t, "2020-01-02", result.TopLongest[0].Date, "longest day first")
	assert.Equal(t, "2020-01-01", result.TopShortest[0].Date, "shortest day first")
}

func TestExecuteDaysStatsTopExceedingCountClamps(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 900)

	result, err := Execute(context.Background(), db, Request{Action: ActionDaysStats, Top: 5})
	require.NoError(t, err)
	assert.Len(t, result.TopLongest, 1)
	assert.Len(t, result.TopShortest, 1)
}

func TestExecuteSearchAppliesFilters(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", 2020, 1, projectID, 900)
	seedDay(t, db, "2020-02-01", 2020, 2, projectID, 1800)

	month := 1
	result, err := Execute(context.Background(), db, Request{
		Action:  ActionSearch,
		Filters: query.QueryFilters{Month: &month},
	})
	require.NoError(t, err)
	require.Len(t, result.SearchRecords, 1)
	assert.Equal(t, "2020-01-01", result.SearchRecords[0].Date)
	assert.Equal(t, "STUDY", result.SearchRecords[0].ProjectPath)
}

func TestExecuteUnknownActionReturnsError(t *testing.T) {
	db := openTestDB(t)
	_, err := Execute(context.Background(), db, Request{Action: Action(99)})
	assert.Error(t, err)
}
