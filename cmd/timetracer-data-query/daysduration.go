/**
 * CONTEXT:   `days_duration` subcommand - per-day total seconds worked
 * INPUT:     Filter flags plus --reverse/--limit
 * OUTPUT:    A table of (date, formatted duration) rows
 * CHANGE:    Formats each row's duration column via internal/timeutil.FormatDuration
 * RISK:      Low
 */

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/dataquery"
	"github.com/timetracer/timetracer/internal/timeutil"
)

var (
	daysDurationFilters filterFlags
	daysDurationReverse bool
	daysDurationLimit   int
)

var daysDurationCmd = &cobra.Command{
	Use:   "days_duration",
	Short: "List total worked duration per day matching filters",
	RunE:  runDaysDurationCommand,
}

func init() {
	registerFilterFlags(daysDurationCmd, &daysDurationFilters)
	daysDurationCmd.Flags().BoolVar(&daysDurationReverse, "reverse", false, "longest first")
	daysDurationCmd.Flags().IntVar(&daysDurationLimit, "limit", 0, "cap the number of rows (0 = unlimited)")
}

func runDaysDurationCommand(cmd *cobra.Command, args []string) error {
	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{
		Action:  dataquery.ActionDaysDuration,
		Filters: daysDurationFilters.toQueryFilters(cmd),
		Reverse: daysDurationReverse,
		Limit:   daysDurationLimit,
	})
	if err != nil {
		return err
	}

	if len(result.DurationRows) == 0 {
		dimColor.Println("no matching days")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Duration"})
	table.SetBorder(false)
	for _, r := range result.DurationRows {
		table.Append([]string{r.Date, timeutil.FormatDuration(r.Duration)})
	}
	table.Render()
	fmt.Printf("%d day(s)\n", len(result.DurationRows))
	return nil
}
