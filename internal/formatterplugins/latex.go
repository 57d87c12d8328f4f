/**
 * CONTEXT:   LaTeX dialect: Daily and Range formatters
 * INPUT:     reportdata.DailyReportData / RangeReportData, pkg/config dialect structs
 * OUTPUT:    A Formatter wired with LaTeX-specific hooks (document preamble/postfix,
 *            \item/\begin{itemize} tree nesting)
 * BUSINESS:  LaTeX needs a document wrapper and escaped remark/title text;
 *            every remark/title string must go through timeutil.EscapeLatex
 * CHANGE:    Wires the LaTeX preamble/header/postfix hooks: "\\" line
 *            continuation, \begin{itemize} tree nesting. The
 *            \textcolor[HTML]{hex}{...} wrapper exists, but DayTexConfig has
 *            no keyword->color table, so Daily LaTeX intervals are never colored
 * RISK:      Medium - unescaped LaTeX special characters in user remarks would
 *            break compilation; every free-text field must be escaped
 */

package formatterplugins

import (
	"fmt"
	"strings"

	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/timeutil"
	"github.com/timetracer/timetracer/pkg/config"
)

func latexTreeDialect() TreeDialect {
	return TreeDialect{
		Bullet:      `\item`,
		IndentWidth: 0,
		WrapLevel: func(depth int, body string) string {
			return "\\begin{itemize}\n" + body + "\\end{itemize}\n"
		},
	}
}

func latexColorWrapper(hexColor, body string) string {
	return fmt.Sprintf(`\textcolor[HTML]{%s}{%s}`, strings.TrimPrefix(hexColor, "#"), body)
}

func latexIntervalDialect(keywordColors map[string]string) IntervalDialect {
	return IntervalDialect{
		Connector:     ".",
		KeywordColors: keywordColors,
		Colorize:      latexColorWrapper,
		ListBullet:    `\item`,
		RemarkBullet:  `\item`,
		RemarkIndent:  "  ",
	}
}

func latexPreamble(documentClass, title string) func() string {
	return func() string {
		return fmt.Sprintf("\\documentclass{%s}\n\\usepackage{xcolor}\n\\title{%s}\n\\begin{document}\n\\maketitle\n\n",
			documentClass, timeutil.EscapeLatex(title))
	}
}

func latexPostfix() string {
	return "\n\\end{document}\n"
}

// NewDailyLatexFormatter wires the Daily x LaTeX hooks.
func NewDailyLatexFormatter(data reportdata.DailyReportData, cfg config.DayTexConfig) Formatter {
	dialect := latexIntervalDialect(nil)
	dialect.Connector = cfg.Base.ProjectPathConnector

	return Formatter{
		Preamble: latexPreamble(cfg.DocumentClass, cfg.Title+": "+data.Date),
		Header: func() string {
			var b strings.Builder
			b.WriteString("\\begin{itemize}\n")
			fmt.Fprintf(&b, "\\item Total Time: %s\n", timeutil.FormatDuration(data.TotalDuration))
			fmt.Fprintf(&b, "\\item Status: %s\n", formatBool(data.Status))
			fmt.Fprintf(&b, "\\item Sleep: %s\n", formatBool(data.Sleep))
			fmt.Fprintf(&b, "\\item Exercise: %s\n", formatBool(data.Exercise))
			fmt.Fprintf(&b, "\\item Getup Time: %s\n", data.GetupTime)
			if data.Remark != "" {
				fmt.Fprintf(&b, "\\item Remark: %s\n", timeutil.ReflowContinuation(timeutil.EscapeLatex(data.Remark), `\\`, ""))
			}
			b.WriteString("\\end{itemize}\n\n")
			return b.String()
		},
		IsEmpty: func() bool { return len(data.Intervals) == 0 },
		ExtraContent: func() string {
			return "\\begin{itemize}\n" + RenderIntervals(data.Intervals, dialect) + "\\end{itemize}\n\n"
		},
		ProjectTreeSection: func() string {
			return "\\subsection*{Project Breakdown}\n" + RenderProjectTree(data.Tree, latexTreeDialect())
		},
		NoRecordsMessage: func() string { return timeutil.EscapeLatex(cfg.Base.NoRecordsMessage) + "\n\n" },
		Postfix:          func() string { return latexPostfix() },
	}
}

// NewRangeLatexFormatter wires the Range x LaTeX hooks.
func NewRangeLatexFormatter(data reportdata.RangeReportData, cfg config.RangeTexConfig) Formatter {
	return Formatter{
		Validate: func() string {
			if !data.Valid {
				return timeutil.EscapeLatex(cfg.Base.InvalidFormatMessage)
			}
			return ""
		},
		Preamble: latexPreamble(cfg.DocumentClass, strings.ReplaceAll(cfg.TitleTemplate, "{label}", data.Label)),
		Header: func() string {
			var b strings.Builder
			b.WriteString("\\begin{itemize}\n")
			fmt.Fprintf(&b, "\\item Total Time: %s%s\n", timeutil.FormatDuration(data.TotalDuration), rangeAverageSuffix(data))
			fmt.Fprintf(&b, "\\item Actual Days: %d\n", data.ActualDays)
			fmt.Fprintf(&b, "\\item Status Days: %s\n", timeutil.CountPercentage(data.Flags.StatusDays, data.ActualDays))
			fmt.Fprintf(&b, "\\item Sleep Days: %s\n", timeutil.CountPercentage(data.Flags.SleepDays, data.ActualDays))
			fmt.Fprintf(&b, "\\item Exercise Days: %s\n", timeutil.CountPercentage(data.Flags.ExerciseDays, data.ActualDays))
			fmt.Fprintf(&b, "\\item Cardio Days: %s\n", timeutil.CountPercentage(data.Flags.CardioDays, data.ActualDays))
			fmt.Fprintf(&b, "\\item Anaerobic Days: %s\n", timeutil.CountPercentage(data.Flags.AnaerobicDays, data.ActualDays))
			b.WriteString("\\end{itemize}\n\n")
			return b.String()
		},
		IsEmpty: func() bool { return data.ActualDays == 0 },
		ProjectTreeSection: func() string {
			return "\\subsection*{Project Breakdown}\n" + RenderProjectTree(data.Tree, latexTreeDialect())
		},
		NoRecordsMessage: func() string { return timeutil.EscapeLatex(cfg.Base.NoRecordsMessage) + "\n\n" },
		Postfix:          func() string { return latexPostfix() },
	}
}
