/**
 * CONTEXT:   `days_stats` subcommand - aggregate duration statistics, optional top-N
 * INPUT:     Filter flags plus --top
 * OUTPUT:    A summary block plus, when --top > 0, longest/shortest day tables
 * CHANGE:    Colored section banners followed by a two-table layout: summary
 *            statistics, then longest/shortest day tables when --top > 0
 * RISK:      Low
 */

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/dataquery"
	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/timeutil"
)

var (
	daysStatsFilters filterFlags
	daysStatsTop     int
)

var daysStatsCmd = &cobra.Command{
	Use:   "days_stats",
	Short: "Show aggregate duration statistics over matching days",
	RunE:  runDaysStatsCommand,
}

func init() {
	registerFilterFlags(daysStatsCmd, &daysStatsFilters)
	daysStatsCmd.Flags().IntVar(&daysStatsTop, "top", 0, "also list the longest/shortest N days")
}

func runDaysStatsCommand(cmd *cobra.Command, args []string) error {
	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{
		Action:  dataquery.ActionDaysStats,
		Filters: daysStatsFilters.toQueryFilters(cmd),
		Top:     daysStatsTop,
	})
	if err != nil {
		return err
	}

	s := result.Stats
	if s.Count == 0 {
		dimColor.Println("no matching days")
		return nil
	}

	headerColor.Println("Duration Statistics")
	fmt.Printf("Count:   %d\n", s.Count)
	fmt.Printf("Mean:    %s\n", timeutil.FormatDuration(int64(s.Mean)))
	fmt.Printf("Median:  %s\n", timeutil.FormatDuration(int64(s.Median)))
	fmt.Printf("Min/Max: %s / %s\n", timeutil.FormatDuration(s.Min), timeutil.FormatDuration(s.Max))
	fmt.Printf("P25/P75: %s / %s\n", timeutil.FormatDuration(int64(s.P25)), timeutil.FormatDuration(int64(s.P75)))
	fmt.Printf("P90/P95: %s / %s\n", timeutil.FormatDuration(int64(s.P90)), timeutil.FormatDuration(int64(s.P95)))
	fmt.Printf("IQR:     %s\n", timeutil.FormatDuration(int64(s.IQR)))
	fmt.Printf("MAD:     %s\n", timeutil.FormatDuration(int64(s.MAD)))
	fmt.Printf("StdDev:  %s\n", timeutil.FormatDuration(int64(s.StdDev)))

	if daysStatsTop <= 0 {
		return nil
	}

	fmt.Println()
	headerColor.Println("Longest days")
	renderDurationTable(result.TopLongest)

	fmt.Println()
	headerColor.Println("Shortest days")
	renderDurationTable(result.TopShortest)
	return nil
}

func renderDurationTable(rows []query.DateDuration) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Duration"})
	table.SetBorder(false)
	for _, r := range rows {
		table.Append([]string{r.Date, timeutil.FormatDuration(r.Duration)})
	}
	table.Render()
}
