package reportservice

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/projectcache"
	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/pkg/config"
	"github.com/timetracer/timetracer/pkg/logger"
)

// fakeHost records every Format call instead of crossing a plugin ABI,
// so GenerateDaily/GenerateRange/batch paths can be exercised without a
// built .so/.dylib/.dll.
type fakeHost struct {
	calls     int
	lastKind  formatterabi.ReportKind
	lastCfg   interface{}
	lastPayld interface{}
	fail      bool
}

func (f *fakeHost) Format(kind formatterabi.ReportKind, format formatterabi.ReportFormat, cfg, payload interface{}) (string, error) {
	f.calls++
	f.lastKind = kind
	f.lastCfg = cfg
	f.lastPayld = payload
	if f.fail {
		return "", fmt.Errorf("fakeHost: forced failure")
	}
	switch p := payload.(type) {
	case formatterabi.DailyPayload:
		return fmt.Sprintf("daily:%s:total=%d", p.Date, p.TotalDuration), nil
	case formatterabi.RangePayload:
		return fmt.Sprintf("range:%s:valid=%t:total=%d", p.Label, p.Valid, p.TotalDuration), nil
	default:
		return "unknown payload", nil
	}
}

func openTestDB(t *testing.T) *sqlitestore.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timetracer_test.db")
	db, err := sqlitestore.Open(sqlitestore.DefaultConfig(path), logger.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedProject inserts (or reuses) a top-level project and returns its id.
func seedProject(t *testing.T, db *sqlitestore.DB, name string) int64 {
	t.Helper()
	res, err := db.SQL().Exec("INSERT INTO projects (name, parent_id) VALUES (?, NULL)", name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// seedDay inserts one days-table row plus a single time_records interval of
// durationSec on projectID, so total_duration > 0 for every seeded date.
func seedDay(t *testing.T, db *sqlitestore.DB, date string, projectID int64, durationSec int64) {
	t.Helper()
	_, err := db.SQL().Exec(`
		INSERT INTO days (date, year, month, status, sleep, remark, getup_time, exercise,
			sleep_total_time, total_exercise_time, anaerobic_time, cardio_time, grooming_time,
			study_time, recreation_time, recreation_zhihu_time, recreation_bilibili_time, recreation_douyin_time)
		VALUES (?, 2020, 1, 1, 1, '', '07:00', 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, 0)`,
		date, durationSec)
	require.NoError(t, err)

	_, err = db.SQL().Exec(`
		INSERT INTO time_records (date, start, end, project_id, duration, activity_remark)
		VALUES (?, '09:00', '10:00', ?, ?, '')`,
		date, projectID, durationSec)
	require.NoError(t, err)
}

func newTestService(t *testing.T, db *sqlitestore.DB, host *fakeHost) *Service {
	t.Helper()
	return &Service{
		db:    db,
		cache: projectcache.New(),
		host:  host,
		cfg:   config.Default(),
		log:   logger.NopLogger{},
	}
}

func TestGenerateDailyFormatsWithBuiltTree(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-15", projectID, 3600)

	host := &fakeHost{}
	svc := newTestService(t, db, host)

	out, err := svc.GenerateDaily(context.Background(), "2020-01-15", formatterabi.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "daily:2020-01-15:total=3600", out)
	assert.Equal(t, 1, host.calls)
	assert.Equal(t, formatterabi.ReportKindDaily, host.lastKind)
}

func TestGenerateDailyPropagatesFormatterError(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-15", projectID, 3600)

	host := &fakeHost{fail: true}
	svc := newTestService(t, db, host)

	_, err := svc.GenerateDaily(context.Background(), "2020-01-15", formatterabi.FormatMarkdown)
	assert.Error(t, err)
}

func TestGenerateRangeFormatsValidMonth(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-10", projectID, 1800)
	seedDay(t, db, "2020-01-20", projectID, 1800)

	host := &fakeHost{}
	svc := newTestService(t, db, host)

	req := query.RangeRequest{Kind: query.RangeMonthly, Year: 2020, Month: 1}
	out, err := svc.GenerateRange(context.Background(), "monthly", "2020-01", req, formatterabi.FormatLatex)
	require.NoError(t, err)
	assert.Equal(t, "range:2020-01:valid=true:total=3600", out)
}

func TestGenerateRangeInvalidMonthStillFormatsInvalidPayload(t *testing.T) {
	db := openTestDB(t)
	host := &fakeHost{}
	svc := newTestService(t, db, host)

	req := query.RangeRequest{Kind: query.RangeMonthly, Year: 2020, Month: 13}
	out, err := svc.GenerateRange(context.Background(), "monthly", "2020-13", req, formatterabi.FormatTypst)
	require.NoError(t, err)
	assert.Equal(t, "range:2020-13:valid=false:total=0", out)
	assert.Equal(t, 1, host.calls)
}

func TestRunBatchDailyRendersEveryDate(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", projectID, 1800)
	seedDay(t, db, "2020-02-15", projectID, 3600)
	seedDay(t, db, "2021-06-01", projectID, 900)

	host := &fakeHost{}
	svc := newTestService(t, db, host)

	result, err := svc.RunBatchDaily(context.Background(), formatterabi.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, 3, host.calls)
	require.Contains(t, result.Years, "2020")
	require.Contains(t, result.Years, "2021")
	assert.Len(t, result.Years["2020"]["01"], 1)
	assert.Len(t, result.Years["2020"]["02"], 1)
	assert.Equal(t, "2020-01-01", result.Years["2020"]["01"][0].Label)
	assert.Equal(t, "daily:2020-01-01:total=1800", result.Years["2020"]["01"][0].Report)
}

func TestRunBatchRangeMonthlyGroupsByMonth(t *testing.T) {
	db := openTestDB(t)
	projectID := seedProject(t, db, "STUDY")
	seedDay(t, db, "2020-01-01", projectID, 1800)
	seedDay(t, db, "2020-01-02", projectID, 1800)
	seedDay(t, db, "2020-02-01", projectID, 900)

	host := &fakeHost{}
	svc := newTestService(t, db, host)

	result, err := svc.RunBatchRange(context.Background(), BatchMonthly, 0, formatterabi.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, 2, host.calls)
	require.Contains(t, result.Years, "2020")
	labels := map[string]bool{}
	for _, entries := range result.Years["2020"] {
		for _, e := range entries {
			labels[e.Label] = true
		}
	}
	assert.True(t, labels["2020-01"])
	assert.True(t, labels["2020-02"])
}

func TestRunBatchRangeRejectsDailyKind(t *testing.T) {
	db := openTestDB(t)
	host := &fakeHost{}
	svc := newTestService(t, db, host)

	_, err := svc.RunBatchRange(context.Background(), BatchDaily, 0, formatterabi.FormatMarkdown)
	assert.Error(t, err)
}

func TestGroupByBatchKindWeeklyUsesISOWeek(t *testing.T) {
	meta := []query.DayMeta{
		{Date: "2019-12-30"}, // ISO week 2020-W01 (Monday)
		{Date: "2020-01-05"}, // ISO week 2020-W01 (Sunday)
		{Date: "2020-01-06"}, // ISO week 2020-W02 (Monday)
	}
	groups, order, err := groupByBatchKind(BatchWeekly, 0, meta, map[string][]query.ProjectStat{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2020-W01", "2020-W02"}, order)
	assert.Len(t, groups["2020-W01"].days, 2)
	assert.Len(t, groups["2020-W02"].days, 1)
}

func TestGroupByPeriodPartitionsSequentialWindows(t *testing.T) {
	meta := []query.DayMeta{
		{Date: "2020-01-01"}, {Date: "2020-01-02"}, {Date: "2020-01-03"},
		{Date: "2020-01-04"}, {Date: "2020-01-05"},
	}
	groups, order, err := groupByPeriod(2, meta, map[string][]query.ProjectStat{})
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Len(t, groups[order[0]].days, 2)
	assert.Len(t, groups[order[1]].days, 2)
	assert.Len(t, groups[order[2]].days, 1, "final window is the short remainder")
}

func TestGroupByPeriodRejectsNonPositiveLength(t *testing.T) {
	_, _, err := groupByPeriod(0, nil, nil)
	assert.Error(t, err)
}

func TestDayGroupFlagsCountsBooleanAndThresholdFields(t *testing.T) {
	g := newDayGroup()
	g.addDay(query.DayMeta{Status: true, Sleep: true, Exercise: false, CardioTime: 0, AnaerobicTime: 10})
	g.addDay(query.DayMeta{Status: false, Sleep: false, Exercise: true, CardioTime: 5, AnaerobicTime: 0})

	flags := g.flags()
	assert.Equal(t, 1, flags.StatusDays)
	assert.Equal(t, 1, flags.SleepDays)
	assert.Equal(t, 1, flags.ExerciseDays)
	assert.Equal(t, 1, flags.CardioDays)
	assert.Equal(t, 1, flags.AnaerobicDays)
}
