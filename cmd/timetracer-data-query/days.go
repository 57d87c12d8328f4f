/**
 * CONTEXT:   `days` subcommand - full days-table rows matching filters
 * INPUT:     Filter flags plus --reverse/--limit
 * OUTPUT:    A table of per-day metadata flags
 * CHANGE:    Renders each day's boolean flags as yes/no columns
 * RISK:      Low
 */

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/dataquery"
)

var (
	daysFilters filterFlags
	daysReverse bool
	daysLimit   int
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List day records matching filters",
	RunE:  runDaysCommand,
}

func init() {
	registerFilterFlags(daysCmd, &daysFilters)
	daysCmd.Flags().BoolVar(&daysReverse, "reverse", false, "most recent first")
	daysCmd.Flags().IntVar(&daysLimit, "limit", 0, "cap the number of rows (0 = unlimited)")
}

func runDaysCommand(cmd *cobra.Command, args []string) error {
	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{
		Action:  dataquery.ActionDays,
		Filters: daysFilters.toQueryFilters(cmd),
		Reverse: daysReverse,
		Limit:   daysLimit,
	})
	if err != nil {
		return err
	}

	if len(result.Days) == 0 {
		dimColor.Println("no matching days")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Status", "Sleep", "Exercise", "Getup", "Remark"})
	table.SetBorder(false)
	table.SetRowSeparator("-")
	for _, d := range result.Days {
		table.Append([]string{
			d.Date,
			boolGlyph(d.Status),
			boolGlyph(d.Sleep),
			boolGlyph(d.Exercise),
			d.GetupTime,
			d.Remark,
		})
	}
	table.Render()
	fmt.Printf("%d day(s)\n", len(result.Days))
	return nil
}

func boolGlyph(b bool) string {
	if b {
		return successColor.Sprint("yes")
	}
	return dimColor.Sprint("no")
}
