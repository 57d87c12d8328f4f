/**
 * CONTEXT:   Markdown dialect: Daily and Range formatters
 * INPUT:     reportdata.DailyReportData / RangeReportData, pkg/config dialect structs
 * OUTPUT:    A Formatter (see skeleton.go) wired with Markdown-specific hooks
 * BUSINESS:  Markdown is the plainest dialect: no colorizing, '-' bullets,
 *            two-space indents, no document preamble/postfix
 * CHANGE:    Wires the Markdown header/tree/interval rendering hooks
 * RISK:      Low - Markdown has the fewest dialect-specific quirks
 */

package formatterplugins

import (
	"fmt"
	"strings"

	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/timeutil"
	"github.com/timetracer/timetracer/pkg/config"
)

func markdownTreeDialect() TreeDialect {
	return TreeDialect{Bullet: "-", IndentWidth: 2}
}

func markdownIntervalDialect() IntervalDialect {
	return IntervalDialect{
		Connector:    ".",
		ListBullet:   "-",
		RemarkBullet: "-",
		RemarkIndent: "  ",
	}
}

// NewDailyMarkdownFormatter wires the Daily x Markdown hooks.
func NewDailyMarkdownFormatter(data reportdata.DailyReportData, cfg config.DayMdConfig) Formatter {
	dialect := markdownIntervalDialect()
	dialect.Connector = cfg.Base.ProjectPathConnector

	return Formatter{
		Header: func() string {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s: %s\n\n", cfg.Title, data.Date)
			fmt.Fprintf(&b, "- Total Time: %s\n", timeutil.FormatDuration(data.TotalDuration))
			fmt.Fprintf(&b, "- Status: %s\n", formatBool(data.Status))
			fmt.Fprintf(&b, "- Sleep: %s\n", formatBool(data.Sleep))
			fmt.Fprintf(&b, "- Exercise: %s\n", formatBool(data.Exercise))
			fmt.Fprintf(&b, "- Getup Time: %s\n", data.GetupTime)
			if data.Remark != "" {
				fmt.Fprintf(&b, "- Remark: %s\n", timeutil.ReflowContinuation(data.Remark, "-", "  "))
			}
			b.WriteString("\n")
			return b.String()
		},
		IsEmpty: func() bool { return len(data.Intervals) == 0 },
		ExtraContent: func() string {
			return RenderIntervals(data.Intervals, dialect) + "\n"
		},
		ProjectTreeSection: func() string {
			return "## Project Breakdown\n\n" + RenderProjectTree(data.Tree, markdownTreeDialect())
		},
		NoRecordsMessage: func() string { return cfg.Base.NoRecordsMessage + "\n" },
	}
}

// NewRangeMarkdownFormatter wires the Range x Markdown hooks, shared by
// Monthly/Weekly/Yearly/Period since they differ only in data.Label/Kind.
func NewRangeMarkdownFormatter(data reportdata.RangeReportData, cfg config.RangeMdConfig) Formatter {
	return Formatter{
		Validate: func() string {
			if !data.Valid {
				return cfg.Base.InvalidFormatMessage
			}
			return ""
		},
		Header: func() string {
			title := strings.ReplaceAll(cfg.TitleTemplate, "{label}", data.Label)
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n", title)
			fmt.Fprintf(&b, "- Total Time: %s%s\n", timeutil.FormatDuration(data.TotalDuration), rangeAverageSuffix(data))
			fmt.Fprintf(&b, "- Actual Days: %d\n", data.ActualDays)
			fmt.Fprintf(&b, "- Status Days: %s\n", timeutil.CountPercentage(data.Flags.StatusDays, data.ActualDays))
			fmt.Fprintf(&b, "- Sleep Days: %s\n", timeutil.CountPercentage(data.Flags.SleepDays, data.ActualDays))
			fmt.Fprintf(&b, "- Exercise Days: %s\n", timeutil.CountPercentage(data.Flags.ExerciseDays, data.ActualDays))
			fmt.Fprintf(&b, "- Cardio Days: %s\n", timeutil.CountPercentage(data.Flags.CardioDays, data.ActualDays))
			fmt.Fprintf(&b, "- Anaerobic Days: %s\n", timeutil.CountPercentage(data.Flags.AnaerobicDays, data.ActualDays))
			b.WriteString("\n")
			return b.String()
		},
		IsEmpty: func() bool { return data.ActualDays == 0 },
		ProjectTreeSection: func() string {
			return "## Project Breakdown\n\n" + RenderProjectTree(data.Tree, markdownTreeDialect())
		},
		NoRecordsMessage: func() string { return cfg.Base.NoRecordsMessage + "\n" },
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func rangeAverageSuffix(data reportdata.RangeReportData) string {
	if data.ActualDays <= 1 {
		return ""
	}
	avg := data.TotalDuration / int64(data.ActualDays)
	return fmt.Sprintf(" (%s/day average)", timeutil.FormatDuration(avg))
}
