/**
 * CONTEXT:   Single ABI adapter every cmd/plugins/* binary calls into
 * INPUT:     formatterabi descriptor kind tags and flattened payloads
 * OUTPUT:    A rendered report string or an *formatterabi.AbiError
 * BUSINESS:  Six dialect binaries would otherwise repeat near-identical
 *            bootstrap; consolidating here means each plugin's main.go is a
 *            thin cgo-export shim with zero formatting logic of its own
 * CHANGE:    Single switch on (kind, dialect) building the right Formatter
 *            and invoking it, shared by every plugin binary
 * RISK:      Medium - every cmd/plugins/* binary's correctness depends on
 *            calling the right (kind, dialect) pair into this switch
 */

package formatterplugins

import (
	"fmt"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/pkg/config"
)

// Dialect identifies one of the six concrete plugin binaries.
type Dialect string

const (
	DialectDayMarkdown   Dialect = "day_md"
	DialectDayLatex      Dialect = "day_tex"
	DialectDayTypst      Dialect = "day_typ"
	DialectRangeMarkdown Dialect = "range_md"
	DialectRangeLatex    Dialect = "range_tex"
	DialectRangeTypst    Dialect = "range_typ"
)

// FormatDailyPayload rebuilds a DailyReportData from its flattened ABI
// payload and renders it with the given dialect's config.
func FormatDailyPayload(dialect Dialect, payload formatterabi.DailyPayload, cfg *config.Config) (string, error) {
	tree, err := formatterabi.UnflattenTree(payload.Tree)
	if err != nil {
		return "", fmt.Errorf("formatterplugins: failed to rebuild project tree: %w", err)
	}

	intervals := make([]reportdata.IntervalView, len(payload.Intervals))
	for i, iv := range payload.Intervals {
		intervals[i] = reportdata.IntervalView{
			Start:          iv.Start,
			End:            iv.End,
			ProjectPath:    iv.ProjectPath,
			DurationSec:    iv.DurationSec,
			ActivityRemark: iv.ActivityRemark,
		}
	}

	data := reportdata.DailyReportData{
		Date:          payload.Date,
		Status:        payload.Status,
		Sleep:         payload.Sleep,
		Remark:        payload.Remark,
		GetupTime:     payload.GetupTime,
		Exercise:      payload.Exercise,
		TotalDuration: payload.TotalDuration,
		Intervals:     intervals,
		Stats:         payload.Stats,
		Tree:          tree,
	}

	switch dialect {
	case DialectDayMarkdown:
		return NewDailyMarkdownFormatter(data, cfg.DayMd).Format(), nil
	case DialectDayLatex:
		return NewDailyLatexFormatter(data, cfg.DayTex).Format(), nil
	case DialectDayTypst:
		return NewDailyTypstFormatter(data, cfg.DayTyp).Format(), nil
	default:
		return "", fmt.Errorf("formatterplugins: %q is not a daily dialect", dialect)
	}
}

// FormatRangePayload rebuilds a RangeReportData from its flattened ABI
// payload and renders it with the given dialect's config.
func FormatRangePayload(dialect Dialect, payload formatterabi.RangePayload, cfg *config.Config) (string, error) {
	tree, err := formatterabi.UnflattenTree(payload.Tree)
	if err != nil {
		return "", fmt.Errorf("formatterplugins: failed to rebuild project tree: %w", err)
	}

	data := reportdata.RangeReportData{
		Kind:          reportdata.RangeKind(payload.Kind),
		Label:         payload.Label,
		Start:         payload.Start,
		End:           payload.End,
		RequestedDays: payload.RequestedDays,
		ActualDays:    payload.ActualDays,
		TotalDuration: payload.TotalDuration,
		Flags: reportdata.DayFlagCounts{
			StatusDays:    payload.StatusDays,
			SleepDays:     payload.SleepDays,
			ExerciseDays:  payload.ExerciseDays,
			CardioDays:    payload.CardioDays,
			AnaerobicDays: payload.AnaerobicDays,
		},
		Valid: payload.Valid,
		Tree:  tree,
	}

	switch dialect {
	case DialectRangeMarkdown:
		return NewRangeMarkdownFormatter(data, cfg.RangeMd).Format(), nil
	case DialectRangeLatex:
		return NewRangeLatexFormatter(data, cfg.RangeTex).Format(), nil
	case DialectRangeTypst:
		return NewRangeTypstFormatter(data, cfg.RangeTyp).Format(), nil
	default:
		return "", fmt.Errorf("formatterplugins: %q is not a range dialect", dialect)
	}
}
