/**
 * CONTEXT:   Report-data descriptor payloads passed to tt_formatReport
 * INPUT:     reportdata.DailyReportData / reportdata.RangeReportData
 * OUTPUT:    Flattened, ABI-safe payload structs keyed by kind tag
 * BUSINESS:  The plugin boundary never sees Go slices-of-pointers or strings
 *            with Go's internal header layout; everything crossing is flat
 * CHANGE:    Flattens DailyReportData/RangeReportData field-for-field into
 *            ABI-safe payload structs, one per report kind
 * RISK:      Medium - field presence here must track reportdata.go; an added
 *            report field needs both a payload field and bootstrap.go wiring
 */

package formatterabi

import "github.com/timetracer/timetracer/internal/reportdata"

// IntervalPayload is the ABI-safe shape of one detailed interval record.
type IntervalPayload struct {
	Start          string
	End            string
	ProjectPath    string
	DurationSec    int64
	ActivityRemark string
}

// DailyPayload is the flattened form of reportdata.DailyReportData.
type DailyPayload struct {
	Date          string
	Status        bool
	Sleep         bool
	Remark        string
	GetupTime     string
	Exercise      bool
	TotalDuration int64
	Intervals     []IntervalPayload
	Stats         map[string]int64
	Tree          []ProjectTreeNode
}

// RangePayload is the flattened form of reportdata.RangeReportData.
type RangePayload struct {
	Kind          string
	Label         string
	Start         string
	End           string
	RequestedDays int
	ActualDays    int
	TotalDuration int64
	StatusDays    int
	SleepDays     int
	ExerciseDays  int
	CardioDays    int
	AnaerobicDays int
	Valid         bool
	Tree          []ProjectTreeNode
}

// BuildDailyPayload flattens a DailyReportData into its wire form.
func BuildDailyPayload(d reportdata.DailyReportData) DailyPayload {
	intervals := make([]IntervalPayload, len(d.Intervals))
	for i, iv := range d.Intervals {
		intervals[i] = IntervalPayload{
			Start:          iv.Start,
			End:            iv.End,
			ProjectPath:    iv.ProjectPath,
			DurationSec:    iv.DurationSec,
			ActivityRemark: iv.ActivityRemark,
		}
	}
	return DailyPayload{
		Date:          d.Date,
		Status:        d.Status,
		Sleep:         d.Sleep,
		Remark:        d.Remark,
		GetupTime:     d.GetupTime,
		Exercise:      d.Exercise,
		TotalDuration: d.TotalDuration,
		Intervals:     intervals,
		Stats:         d.Stats,
		Tree:          FlattenTree(d.Tree),
	}
}

// BuildRangePayload flattens a RangeReportData into its wire form.
func BuildRangePayload(r reportdata.RangeReportData) RangePayload {
	return RangePayload{
		Kind:          string(r.Kind),
		Label:         r.Label,
		Start:         r.Start,
		End:           r.End,
		RequestedDays: r.RequestedDays,
		ActualDays:    r.ActualDays,
		TotalDuration: r.TotalDuration,
		StatusDays:    r.Flags.StatusDays,
		SleepDays:     r.Flags.SleepDays,
		ExerciseDays:  r.Flags.ExerciseDays,
		CardioDays:    r.Flags.CardioDays,
		AnaerobicDays: r.Flags.AnaerobicDays,
		Valid:         r.Valid,
		Tree:          FlattenTree(r.Tree),
	}
}
