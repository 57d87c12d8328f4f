/**
 * CONTEXT:   Value types shared by every report request, independent of output dialect
 * INPUT:     query.DayScopeResult / query.RangeScopeResult plus a built project tree
 * OUTPUT:    DailyReportData / RangeReportData, the payloads C11 hands to C10 via the ABI
 * BUSINESS:  Decouples query/tree assembly from formatting so every formatter
 *            (Markdown/LaTeX/Typst) renders off the exact same semantic value
 * CHANGE:    Initial DailyReportData/RangeReportData value types
 * RISK:      Low - data carriers; invariants enforced by the builders in builder.go
 */

package reportdata

import (
	"github.com/timetracer/timetracer/internal/projecttree"
)

// Stats keys match the days table's per-category time columns, exposed as a
// map so formatters can iterate a StatisticItemConfig tree generically
// instead of switching on named fields.
const (
	StatSleepTotal         = "sleep_total_time"
	StatTotalExercise      = "total_exercise_time"
	StatAnaerobic          = "anaerobic_time"
	StatCardio             = "cardio_time"
	StatGrooming           = "grooming_time"
	StatStudy              = "study_time"
	StatRecreation         = "recreation_time"
	StatRecreationZhihu    = "recreation_zhihu_time"
	StatRecreationBilibili = "recreation_bilibili_time"
	StatRecreationDouyin   = "recreation_douyin_time"
)

// IntervalView is the formatter-facing shape of a single time interval,
// independent of how it was stored.
type IntervalView struct {
	Start          string
	End            string
	ProjectPath    string
	DurationSec    int64
	ActivityRemark string
}

// DailyReportData is the full payload for a single-date report.
type DailyReportData struct {
	Date          string
	Status        bool
	Sleep         bool
	Remark        string
	GetupTime     string
	Exercise      bool
	TotalDuration int64
	Intervals     []IntervalView
	Stats         map[string]int64
	Tree          []*projecttree.Node
}

// DayFlagCounts mirrors query.DayFlagCounts at the report-data layer so
// formatters never import internal/query directly.
type DayFlagCounts struct {
	StatusDays    int
	SleepDays     int
	ExerciseDays  int
	CardioDays    int
	AnaerobicDays int
}

// RangeKind labels which range flavor produced a RangeReportData, used by
// formatters to pick the right header label and no-average-when-single-day
// rule.
type RangeKind string

const (
	RangeKindMonthly   RangeKind = "monthly"
	RangeKindWeekly    RangeKind = "weekly"
	RangeKindYearly    RangeKind = "yearly"
	RangeKindPeriod    RangeKind = "period"
	RangeKindArbitrary RangeKind = "arbitrary"
)

// RangeReportData is the shared payload for Monthly/Weekly/Yearly/Period
// reports. It never carries detailed interval records, only aggregates.
type RangeReportData struct {
	Kind          RangeKind
	Label         string
	Start         string
	End           string
	RequestedDays int
	ActualDays    int
	TotalDuration int64
	Flags         DayFlagCounts
	Valid         bool
	Tree          []*projecttree.Node
}
