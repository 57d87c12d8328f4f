/**
 * CONTEXT:   Typst dialect: Daily and Range formatters
 * INPUT:     reportdata.DailyReportData / RangeReportData, pkg/config dialect structs
 * OUTPUT:    A Formatter wired with Typst-specific hooks (#text(rgb(""))[] coloring,
 *            '+' bullets, ' \' continuation marker)
 * BUSINESS:  Typst output renders inline colored spans, e.g.
 *            "+ #text(rgb(\"#336699\"))[09:00 - 10:00 (1h 0m): study.math]"
 * CHANGE:    Wires the Typst preamble/header/postfix hooks plus activity
 *            highlighting from DayTypConfig.TypstKeywordColors (empty in
 *            config.Default)
 * RISK:      Medium - the colored-span string shape must match byte for byte
 */

package formatterplugins

import (
	"fmt"
	"strings"

	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/timeutil"
	"github.com/timetracer/timetracer/pkg/config"
)

func typstTreeDialect() TreeDialect {
	return TreeDialect{Bullet: "+", IndentWidth: 2}
}

func typstColorWrapper(hexColor, body string) string {
	return fmt.Sprintf(`#text(rgb("%s"))[%s]`, hexColor, body)
}

func typstIntervalDialect(keywordColors map[string]string) IntervalDialect {
	return IntervalDialect{
		Connector:     ".",
		KeywordColors: keywordColors,
		Colorize:      typstColorWrapper,
		ListBullet:    "+",
		RemarkBullet:  "+",
		RemarkIndent:  "  ",
	}
}

// NewDailyTypstFormatter wires the Daily x Typst hooks, including the
// keyword->color table driving interval highlighting.
func NewDailyTypstFormatter(data reportdata.DailyReportData, cfg config.DayTypConfig) Formatter {
	dialect := typstIntervalDialect(cfg.TypstKeywordColors)
	dialect.Connector = cfg.Base.ProjectPathConnector

	return Formatter{
		Header: func() string {
			var b strings.Builder
			fmt.Fprintf(&b, "= %s: %s\n\n", cfg.Title, data.Date)
			fmt.Fprintf(&b, "+ Total Time: %s\n", timeutil.FormatDuration(data.TotalDuration))
			fmt.Fprintf(&b, "+ Status: %s\n", formatBool(data.Status))
			fmt.Fprintf(&b, "+ Sleep: %s\n", formatBool(data.Sleep))
			fmt.Fprintf(&b, "+ Exercise: %s\n", formatBool(data.Exercise))
			fmt.Fprintf(&b, "+ Getup Time: %s\n", data.GetupTime)
			if data.Remark != "" {
				fmt.Fprintf(&b, "+ Remark: %s\n", timeutil.ReflowContinuation(data.Remark, ` \`, "  "))
			}
			b.WriteString("\n")
			return b.String()
		},
		IsEmpty: func() bool { return len(data.Intervals) == 0 },
		ExtraContent: func() string {
			return RenderIntervals(data.Intervals, dialect) + "\n"
		},
		ProjectTreeSection: func() string {
			return "== Project Breakdown\n\n" + RenderProjectTree(data.Tree, typstTreeDialect())
		},
		NoRecordsMessage: func() string { return cfg.Base.NoRecordsMessage + "\n" },
	}
}

// NewRangeTypstFormatter wires the Range x Typst hooks.
func NewRangeTypstFormatter(data reportdata.RangeReportData, cfg config.RangeTypConfig) Formatter {
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
			fmt.Fprintf(&b, "= %s\n\n", title)
			fmt.Fprintf(&b, "+ Total Time: %s%s\n", timeutil.FormatDuration(data.TotalDuration), rangeAverageSuffix(data))
			fmt.Fprintf(&b, "+ Actual Days: %d\n", data.ActualDays)
			fmt.Fprintf(&b, "+ Status Days: %s\n", timeutil.CountPercentage(data.Flags.StatusDays, data.ActualDays))
			fmt.Fprintf(&b, "+ Sleep Days: %s\n", timeutil.CountPercentage(data.Flags.SleepDays, data.ActualDays))
			fmt.Fprintf(&b, "+ Exercise Days: %s\n", timeutil.CountPercentage(data.Flags.ExerciseDays, data.ActualDays))
			fmt.Fprintf(&b, "+ Cardio Days: %s\n", timeutil.CountPercentage(data.Flags.CardioDays, data.ActualDays))
			fmt.Fprintf(&b, "+ Anaerobic Days: %s\n", timeutil.CountPercentage(data.Flags.AnaerobicDays, data.ActualDays))
			b.WriteString("\n")
			return b.String()
		},
		IsEmpty: func() bool { return data.ActualDays == 0 },
		ProjectTreeSection: func() string {
			return "== Project Breakdown\n\n" + RenderProjectTree(data.Tree, typstTreeDialect())
		},
		NoRecordsMessage: func() string { return cfg.Base.NoRecordsMessage + "\n" },
	}
}
