/**
 * CONTEXT:   `search` subcommand - filtered interval search across dates
 * INPUT:     Filter flags (typically --path-contains and/or --activity-contains)
 * OUTPUT:    A table of (date, start, end, project path, duration, remark) rows
 * CHANGE:    Renders search rows via tablewriter; internal/query.Search joins
 *            the recursive project-path CTE to resolve each row's path
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

var searchFilters filterFlags

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search time-record intervals by date range, project path, or remark",
	RunE:  runSearchCommand,
}

func init() {
	registerFilterFlags(searchCmd, &searchFilters)
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{
		Action:  dataquery.ActionSearch,
		Filters: searchFilters.toQueryFilters(cmd),
	})
	if err != nil {
		return err
	}

	if len(result.SearchRecords) == 0 {
		dimColor.Println("no matching records")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Start", "End", "Project", "Duration", "Remark"})
	table.SetBorder(false)
	table.SetRowSeparator("-")
	for _, r := range result.SearchRecords {
		table.Append([]string{
			r.Date,
			r.Start,
			r.End,
			r.ProjectPath,
			timeutil.FormatDuration(r.DurationSec),
			r.ActivityRemark,
		})
	}
	table.Render()
	fmt.Printf("%d record(s)\n", len(result.SearchRecords))
	return nil
}
