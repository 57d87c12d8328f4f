/**
 * CONTEXT:   Assembles C5 query results and C6 trees into C7 report data values
 * INPUT:     query.DayScopeResult / query.RangeScopeResult, a built project tree
 * OUTPUT:    DailyReportData / RangeReportData ready for C11 to hand to a formatter
 * BUSINESS:  Single place where "valid" and "requested days" semantics are decided
 * CHANGE:    Treats an empty-but-in-range query result as a valid empty
 *            report rather than an error
 * RISK:      Low - pure transformation, no I/O
 */

package reportdata

import (
	"github.com/timetracer/timetracer/internal/projecttree"
	"github.com/timetracer/timetracer/internal/query"
)

// BuildDaily assembles a DailyReportData from a day-scope query result and
// its pre-built project tree.
func BuildDaily(scope *query.DayScopeResult, tree []*projecttree.Node) DailyReportData {
	intervals := make([]IntervalView, len(scope.DetailedRecords))
	var total int64
	for i, r := range scope.DetailedRecords {
		intervals[i] = IntervalView{
			Start:          r.Start,
			End:            r.End,
			ProjectPath:    r.ProjectPath,
			DurationSec:    r.DurationSec,
			ActivityRemark: r.ActivityRemark,
		}
		total += r.DurationSec
	}

	m := scope.Meta
	stats := map[string]int64{
		StatSleepTotal:         m.SleepTotalTime,
		StatTotalExercise:      m.TotalExerciseTime,
		StatAnaerobic:          m.AnaerobicTime,
		StatCardio:             m.CardioTime,
		StatGrooming:           m.GroomingTime,
		StatStudy:              m.StudyTime,
		StatRecreation:         m.RecreationTime,
		StatRecreationZhihu:    m.RecreationZhihuTime,
		StatRecreationBilibili: m.RecreationBilibiliTime,
		StatRecreationDouyin:   m.RecreationDouyinTime,
	}

	return DailyReportData{
		Date:          m.Date,
		Status:        m.Status,
		Sleep:         m.Sleep,
		Remark:        m.Remark,
		GetupTime:     m.GetupTime,
		Exercise:      m.Exercise,
		TotalDuration: total,
		Intervals:     intervals,
		Stats:         stats,
		Tree:          tree,
	}
}

// BuildRange assembles a RangeReportData. requestedDays is the caller-known
// nominal length of the range (days-in-month, 7 for weekly, N for period);
// it is independent of actualDays, which only counts days with records.
func BuildRange(kind RangeKind, label string, requestedDays int, scope *query.RangeScopeResult, tree []*projecttree.Node) RangeReportData {
	return RangeReportData{
		Kind:          kind,
		Label:         label,
		Start:         scope.Start,
		End:           scope.End,
		RequestedDays: requestedDays,
		ActualDays:    scope.ActualDays,
		TotalDuration: scope.TotalDuration,
		Flags: DayFlagCounts{
			StatusDays:    scope.Flags.StatusDays,
			SleepDays:     scope.Flags.SleepDays,
			ExerciseDays:  scope.Flags.ExerciseDays,
			CardioDays:    scope.Flags.CardioDays,
			AnaerobicDays: scope.Flags.AnaerobicDays,
		},
		Valid: scope.Start != "" && scope.End != "",
		Tree:  tree,
	}
}
