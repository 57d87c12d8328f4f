/**
 * CONTEXT:   `years` subcommand - every distinct year present in the store
 * INPUT:     No flags
 * OUTPUT:    A one-column table of years, ascending
 * CHANGE:    Renders the distinct-year list as a one-column tablewriter table
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

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List every year with stored data",
	RunE:  runYearsCommand,
}

func runYearsCommand(cmd *cobra.Command, args []string) error {
	result, err := dataquery.Execute(cmd.Context(), db, dataquery.Request{Action: dataquery.ActionYears})
	if err != nil {
		return err
	}

	if len(result.Years) == 0 {
		dimColor.Println("no data")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Year"})
	table.SetBorder(false)
	table.SetHeaderColor(tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold})
	for _, y := range result.Years {
		table.Append([]string{strconv.Itoa(y)})
	}
	table.Render()
	fmt.Printf("%d year(s)\n", len(result.Years))
	return nil
}
