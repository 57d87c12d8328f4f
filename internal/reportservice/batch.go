/**
 * CONTEXT:   Whole-database batch report generation: all-daily, all-monthly,
 *            all-weekly, all-yearly, all-periods
 * INPUT:     The two whole-table fetches from internal/query (C5)
 * OUTPUT:    A BatchResult partitioning every rendered report by year and,
 *            where it applies, by month
 * BUSINESS:  A batch run fetches metadata/flags and time-record totals in
 *            exactly two whole-table passes, then does every subsequent
 *            grouping and tree build in memory, with a formatter handle
 *            cache keyed by (kind, format) shared across the whole run
 * CHANGE:    Adds RunBatchDaily/RunBatchRange over the five batch kinds,
 *            each grouping the two whole-table fetches by label in Go
 * RISK:      Medium - wrong label derivation silently misfiles a date into
 *            the wrong month/week/year bucket rather than erroring
 */

package reportservice

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/projecttree"
	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/timeutil"
)

// BatchKind selects which grouping a whole-database run produces.
type BatchKind int

const (
	BatchDaily BatchKind = iota
	BatchMonthly
	BatchWeekly
	BatchYearly
	BatchPeriod
)

// BatchEntry is one rendered report alongside the label it covers (a date
// for BatchDaily, a "YYYY-MM"/"YYYY-Www"/"YYYY" range label otherwise).
type BatchEntry struct {
	Label  string
	Report string
}

// BatchResult partitions every rendered report into a
// year -> month -> [(date, report_string)] shape. Only BatchDaily fills
// month keys; every range kind buckets everything under the empty month key.
type BatchResult struct {
	RunID uuid.UUID
	Kind  BatchKind
	Years map[string]map[string][]BatchEntry
}

func newBatchResult(kind BatchKind, runID uuid.UUID) *BatchResult {
	return &BatchResult{RunID: runID, Kind: kind, Years: make(map[string]map[string][]BatchEntry)}
}

func (b *BatchResult) add(year, month, label, report string) {
	months, ok := b.Years[year]
	if !ok {
		months = make(map[string][]BatchEntry)
		b.Years[year] = months
	}
	months[month] = append(months[month], BatchEntry{Label: label, Report: report})
}

// dayGroup accumulates one batch-label's slice of DayMeta rows and its
// per-project duration totals while the two whole-table fetches are being
// reduced in memory.
type dayGroup struct {
	dates   []string
	days    []query.DayMeta
	byProj  map[int64]int64
	total   int64
}

func newDayGroup() *dayGroup {
	return &dayGroup{byProj: make(map[int64]int64)}
}

func (g *dayGroup) addDay(m query.DayMeta) {
	g.dates = append(g.dates, m.Date)
	g.days = append(g.days, m)
}

func (g *dayGroup) addStats(stats []query.ProjectStat) {
	for _, s := range stats {
		g.byProj[s.ProjectID] += s.Duration
		g.total += s.Duration
	}
}

func (g *dayGroup) projectStats() []query.ProjectStat {
	out := make([]query.ProjectStat, 0, len(g.byProj))
	for id, d := range g.byProj {
		out = append(out, query.ProjectStat{ProjectID: id, Duration: d})
	}
	return out
}

func (g *dayGroup) flags() query.DayFlagCounts {
	var f query.DayFlagCounts
	for _, m := range g.days {
		if m.Status {
			f.StatusDays++
		}
		if m.Sleep {
			f.SleepDays++
		}
		if m.Exercise {
			f.ExerciseDays++
		}
		if m.CardioTime > 0 {
			f.CardioDays++
		}
		if m.AnaerobicTime > 0 {
			f.AnaerobicDays++
		}
	}
	return f
}

// RunBatchDaily renders every stored date's daily report. The batch fetch
// never issues a per-date detail query, so the rendered reports carry full
// stats and project trees but an empty interval list.
func (s *Service) RunBatchDaily(ctx context.Context, format formatterabi.ReportFormat) (*BatchResult, error) {
	runID := uuid.New()
	s.log.Info("starting batch run", "run_id", runID.String(), "kind", "daily", "format", format)

	if err := s.cache.EnsureLoaded(ctx, s.db); err != nil {
		return nil, fmt.Errorf("reportservice: failed to load project cache: %w", err)
	}

	allMeta, allStats, err := s.fetchBatchBase(ctx)
	if err != nil {
		return nil, err
	}

	result := newBatchResult(BatchDaily, runID)
	for _, m := range allMeta {
		data := s.buildBatchDailyData(m, allStats[m.Date])
		payload := formatterabi.BuildDailyPayload(data)

		out, err := s.host.Format(formatterabi.ReportKindDaily, format, s.cfg, payload)
		if err != nil {
			return nil, fmt.Errorf("reportservice: batch daily %s: %w", m.Date, err)
		}
		result.add(m.Date[:4], m.Date[5:7], m.Date, out)
	}

	s.log.Info("finished batch run", "run_id", runID.String(), "kind", "daily", "count", len(allMeta))
	return result, nil
}

// RunBatchRange renders every month, ISO week, or year present in the
// stored dates (kind selects which), or a sequence of fixed-length trailing
// periods covering the whole stored date span when kind is BatchPeriod.
func (s *Service) RunBatchRange(ctx context.Context, kind BatchKind, periodDays int, format formatterabi.ReportFormat) (*BatchResult, error) {
	if kind == BatchDaily {
		return nil, fmt.Errorf("reportservice: RunBatchRange does not accept BatchDaily, use RunBatchDaily")
	}

	runID := uuid.New()
	s.log.Info("starting batch run", "run_id", runID.String(), "kind", kind, "format", format)

	if err := s.cache.EnsureLoaded(ctx, s.db); err != nil {
		return nil, fmt.Errorf("reportservice: failed to load project cache: %w", err)
	}

	allMeta, allStats, err := s.fetchBatchBase(ctx)
	if err != nil {
		return nil, err
	}

	groups, order, err := groupByBatchKind(kind, periodDays, allMeta, allStats)
	if err != nil {
		return nil, err
	}

	result := newBatchResult(kind, runID)
	rangeKind := toRangeKind(kind)
	for _, label := range order {
		g := groups[label]
		start, end := g.dates[0], g.dates[len(g.dates)-1]

		scope := &query.RangeScopeResult{
			Start:         start,
			End:           end,
			TotalDuration: g.total,
			ActualDays:    len(g.days),
			Flags:         g.flags(),
			ProjectStats:  g.projectStats(),
		}

		var tree []*projecttree.Node
		if scope.TotalDuration > 0 {
			tree = projecttree.Build(scope.ProjectStats, s.cache)
		}

		data := reportdata.BuildRange(rangeKind, label, requestedDaysFor(kind, periodDays, start, end), scope, tree)
		payload := formatterabi.BuildRangePayload(data)

		out, err := s.host.Format(formatterabi.ReportKindRange, format, s.cfg, payload)
		if err != nil {
			return nil, fmt.Errorf("reportservice: batch %v %s: %w", kind, label, err)
		}

		year := label[:4]
		result.add(year, "", label, out)
	}

	s.log.Info("finished batch run", "run_id", runID.String(), "kind", kind, "count", len(order))
	return result, nil
}

// fetchBatchBase runs the two whole-table SQL passes every batch kind
// shares: day metadata/flags, then per-date project totals.
func (s *Service) fetchBatchBase(ctx context.Context) ([]query.DayMeta, map[string][]query.ProjectStat, error) {
	allMeta, err := query.FetchAllDayMeta(ctx, s.db)
	if err != nil {
		return nil, nil, fmt.Errorf("reportservice: failed to fetch day metadata: %w", err)
	}
	allStats, err := query.FetchAllProjectStatsByDate(ctx, s.db)
	if err != nil {
		return nil, nil, fmt.Errorf("reportservice: failed to fetch project stats: %w", err)
	}
	return allMeta, allStats, nil
}

func (s *Service) buildBatchDailyData(m query.DayMeta, stats []query.ProjectStat) reportdata.DailyReportData {
	var total int64
	for _, st := range stats {
		total += st.Duration
	}

	var tree []*projecttree.Node
	if total > 0 {
		tree = projecttree.Build(stats, s.cache)
	}

	return reportdata.DailyReportData{
		Date:          m.Date,
		Status:        m.Status,
		Sleep:         m.Sleep,
		Remark:        m.Remark,
		GetupTime:     m.GetupTime,
		Exercise:      m.Exercise,
		TotalDuration: total,
		Intervals:     nil,
		Stats: map[string]int64{
			reportdata.StatSleepTotal:         m.SleepTotalTime,
			reportdata.StatTotalExercise:      m.TotalExerciseTime,
			reportdata.StatAnaerobic:          m.AnaerobicTime,
			reportdata.StatCardio:             m.CardioTime,
			reportdata.StatGrooming:           m.GroomingTime,
			reportdata.StatStudy:              m.StudyTime,
			reportdata.StatRecreation:         m.RecreationTime,
			reportdata.StatRecreationZhihu:    m.RecreationZhihuTime,
			reportdata.StatRecreationBilibili: m.RecreationBilibiliTime,
			reportdata.StatRecreationDouyin:   m.RecreationDouyinTime,
		},
		Tree: tree,
	}
}

func toRangeKind(kind BatchKind) reportdata.RangeKind {
	switch kind {
	case BatchMonthly:
		return reportdata.RangeKindMonthly
	case BatchWeekly:
		return reportdata.RangeKindWeekly
	case BatchYearly:
		return reportdata.RangeKindYearly
	case BatchPeriod:
		return reportdata.RangeKindPeriod
	default:
		return reportdata.RangeKindArbitrary
	}
}

func requestedDaysFor(kind BatchKind, periodDays int, start, end string) int {
	switch kind {
	case BatchPeriod:
		return periodDays
	case BatchWeekly:
		return 7
	case BatchMonthly:
		if s, err := timeutil.ParseDate(start); err == nil {
			start, end, _ = timeutil.MonthBounds(s.Year(), int(s.Month()))
		}
	case BatchYearly:
		if s, err := timeutil.ParseDate(start); err == nil {
			start, end = timeutil.YearBounds(s.Year())
		}
	}
	s, errS := timeutil.ParseDate(start)
	e, errE := timeutil.ParseDate(end)
	if errS != nil || errE != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// groupByBatchKind reduces the two whole-table fetches into one dayGroup
// per range label, and returns the labels in ascending order.
func groupByBatchKind(kind BatchKind, periodDays int, allMeta []query.DayMeta, allStats map[string][]query.ProjectStat) (map[string]*dayGroup, []string, error) {
	groups := make(map[string]*dayGroup)

	labelFor := func(date string) (string, error) {
		switch kind {
		case BatchMonthly:
			if len(date) < 7 {
				return "", fmt.Errorf("reportservice: malformed date %q", date)
			}
			return date[:7], nil
		case BatchYearly:
			if len(date) < 4 {
				return "", fmt.Errorf("reportservice: malformed date %q", date)
			}
			return date[:4], nil
		case BatchWeekly:
			t, err := timeutil.ParseDate(date)
			if err != nil {
				return "", err
			}
			year, week := t.ISOWeek()
			return fmt.Sprintf("%04d-W%02d", year, week), nil
		default:
			return "", fmt.Errorf("reportservice: groupByBatchKind does not handle %v directly", kind)
		}
	}

	if kind == BatchPeriod {
		return groupByPeriod(periodDays, allMeta, allStats)
	}

	for _, m := range allMeta {
		label, err := labelFor(m.Date)
		if err != nil {
			return nil, nil, err
		}
		g, ok := groups[label]
		if !ok {
			g = newDayGroup()
			groups[label] = g
		}
		g.addDay(m)
		g.addStats(allStats[m.Date])
	}

	labels := make([]string, 0, len(groups))
	for l := range groups {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return groups, labels, nil
}

// groupByPeriod partitions the full ascending date span into consecutive,
// non-overlapping windows of periodDays, the last window possibly shorter.
// Labels are "start..end" since a period has no calendar-assigned name.
func groupByPeriod(periodDays int, allMeta []query.DayMeta, allStats map[string][]query.ProjectStat) (map[string]*dayGroup, []string, error) {
	if periodDays <= 0 {
		return nil, nil, fmt.Errorf("reportservice: period length must be positive, got %d", periodDays)
	}

	groups := make(map[string]*dayGroup)
	var labels []string

	for i := 0; i < len(allMeta); i += periodDays {
		end := i + periodDays
		if end > len(allMeta) {
			end = len(allMeta)
		}
		chunk := allMeta[i:end]
		label := fmt.Sprintf("%s..%s", chunk[0].Date, chunk[len(chunk)-1].Date)

		g := newDayGroup()
		for _, m := range chunk {
			g.addDay(m)
			g.addStats(allStats[m.Date])
		}
		groups[label] = g
		labels = append(labels, label)
	}

	return groups, labels, nil
}
