/**
 * CONTEXT:   `months` subcommand - (year, month) pairs present in the store
 * INPUT:     Optional --year filter
 * OUTPUT:    A table of year/month/day-count rows
 * CHANGE:    Renders year/month/day-count rows via tablewriter
 * RISK:      Low
 */

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/dataquery"
)

var monthsYear int

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List every (year, month) pair with stored data",
	RunE:  runMonthsCommand,
}

func init() {
	monthsCmd.Flags().IntVar(&monthsYear, "year", 0, "restrict to a single year")
}

func runMonthsCommand(cmd *cobra.Command, args []string) error {
	var year *int
	if cmd.Flags().Changed("year") {
		year = &monthsYear
	}

	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{Action: dataquery.ActionMonths, Year: year})
	if err != nil {
		return err
	}

	if len(result.Months) == 0 {
		dimColor.Println("no data")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Year", "Month", "Days"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold},
	)
	for _, m := range result.Months {
		table.Append([]string{strconv.Itoa(m.Year), strconv.Itoa(m.Month), strconv.Itoa(m.Count)})
	}
	table.Render()
	fmt.Printf("%d month(s)\n", len(result.Months))
	return nil
}
