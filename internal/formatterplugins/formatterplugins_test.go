package formatterplugins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/timetracer/timetracer/internal/projecttree"
	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/pkg/config"
)

func TestDailyMarkdownRendersMidnightWrapDuration(t *testing.T) {
	data := reportdata.DailyReportData{
		Date:          "2025-01-01",
		GetupTime:     "06:00",
		TotalDuration: 2700,
		Intervals: []reportdata.IntervalView{
			{Start: "23:30", End: "00:15", ProjectPath: "sleep_night", DurationSec: 2700},
		},
		Tree: []*projecttree.Node{
			{Name: "sleep", Duration: 2700, Children: []*projecttree.Node{
				{Name: "night", Duration: 2700},
			}},
		},
	}
	cfg := config.Default().DayMd
	out := NewDailyMarkdownFormatter(data, cfg).Format()

	assert.Contains(t, out, "Total Time: 0h 45m")
	assert.Contains(t, out, "sleep: 0h 45m")
	assert.Contains(t, out, "night: 0h 45m")
}

func TestDailyTypstColorizesKeywordMatch(t *testing.T) {
	data := reportdata.DailyReportData{
		Date:          "2024-05-01",
		TotalDuration: 3600,
		Intervals: []reportdata.IntervalView{
			{Start: "09:00", End: "10:00", ProjectPath: "study_math", DurationSec: 3600},
		},
	}
	cfg := config.Default().DayTyp
	cfg.Base.ProjectPathConnector = "."
	cfg.TypstKeywordColors = map[string]string{"study": "#336699"}

	out := NewDailyTypstFormatter(data, cfg).Format()
	assert.Contains(t, out, `+ #text(rgb("#336699"))[09:00 - 10:00 (1h 0m): study.math]`)
}

func TestRangeMarkdownHeaderPercentages(t *testing.T) {
	data := reportdata.RangeReportData{
		Kind:          reportdata.RangeKindMonthly,
		Label:         "2024-01",
		Valid:         true,
		ActualDays:    20,
		TotalDuration: 72000,
		Flags: reportdata.DayFlagCounts{
			StatusDays: 15, SleepDays: 18,
		},
	}
	cfg := config.Default().RangeMd
	out := NewRangeMarkdownFormatter(data, cfg).Format()

	assert.Contains(t, out, "Actual Days: 20")
	assert.Contains(t, out, "Status Days: 15 (75.00%)")
	assert.Contains(t, out, "Sleep Days: 18 (90.00%)")
}

func TestRangeLatexInvalidFormatReplacesBody(t *testing.T) {
	data := reportdata.RangeReportData{Valid: false}
	cfg := config.Default().RangeTex
	cfg.Base.InvalidFormatMessage = "Invalid date format."
	out := NewRangeLatexFormatter(data, cfg).Format()

	assert.Contains(t, out, "Invalid date format.")
	assert.False(t, strings.Contains(out, "Actual Days"))
}

func TestRangeTypstEmptyRangeShowsNoRecordsMessage(t *testing.T) {
	data := reportdata.RangeReportData{Valid: true, ActualDays: 0}
	cfg := config.Default().RangeTyp
	cfg.Base.NoRecordsMessage = "no_records_message_text"
	out := NewRangeTypstFormatter(data, cfg).Format()

	assert.Contains(t, out, "no_records_message_text")
}

func TestRangeAverageSuffixOmittedForSingleDay(t *testing.T) {
	data := reportdata.RangeReportData{Valid: true, ActualDays: 1, TotalDuration: 3600}
	cfg := config.Default().RangeMd
	out := NewRangeMarkdownFormatter(data, cfg).Format()
	assert.NotContains(t, out, "/day average")
}

func TestRangeAverageSuffixPresentForMultiDay(t *testing.T) {
	data := reportdata.RangeReportData{Valid: true, ActualDays: 2, TotalDuration: 7200}
	cfg := config.Default().RangeMd
	out := NewRangeMarkdownFormatter(data, cfg).Format()
	assert.Contains(t, out, "/day average")
}

func TestRenderProjectTreeOrdersByDescendingDuration(t *testing.T) {
	forest := []*projecttree.Node{
		{Name: "A", Duration: 100},
		{Name: "B", Duration: 200},
	}
	out := RenderProjectTree(forest, markdownTreeDialect())
	assert.True(t, strings.Index(out, "B:") < strings.Index(out, "A:"))
}
