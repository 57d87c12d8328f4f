/**
 * CONTEXT:   Root command for the data-query CLI surface (C12)
 * INPUT:     Command line arguments selecting a listing/statistics/search action
 * OUTPUT:    A running cobra command tree reading from a single SQLite store
 * BUSINESS:  This binary is the only consumer of internal/dataquery; every
 *            subcommand renders a dataquery.Result with tablewriter/color
 * CHANGE:    Initial root command: rootCmd with a persistent --db flag and
 *            one AddCommand per listing/statistics/search subcommand
 * RISK:      Low - read-only CLI, no mutation of the store
 */

package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/pkg/logger"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgMagenta, color.Bold)
	dimColor     = color.New(color.FgBlack, color.Bold)
)

var (
	dbPath  string
	noColor bool
	db      *sqlitestore.DB
)

var rootCmd = &cobra.Command{
	Use:   "timetracer-data-query",
	Short: "Ad-hoc listings, statistics, and search over a Time Tracer database",
	Long: `timetracer-data-query runs read-only listings and statistics against
a Time Tracer SQLite store: which years/months have data, per-day
durations, outlier days, and filtered interval search.

This binary never mutates the store and never renders a full report -
use the report-service plugins for daily/range reports.`,
	Example: `  timetracer-data-query years
  timetracer-data-query months --year 2020
  timetracer-data-query days --year 2020 --month 3 --reverse --limit 10
  timetracer-data-query days_duration --from 2020-01-01 --to 2020-03-31
  timetracer-data-query days_stats --top 5
  timetracer-data-query search --path-contains STUDY_Go`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
		var err error
		db, err = sqlitestore.Open(sqlitestore.DefaultConfig(dbPath), logger.NopLogger{})
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "timetracer.db", "path to the Time Tracer SQLite database")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(daysCmd)
	rootCmd.AddCommand(daysDurationCmd)
	rootCmd.AddCommand(daysStatsCmd)
	rootCmd.AddCommand(searchCmd)

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
