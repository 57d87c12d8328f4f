/**
 * CONTEXT:   Shared --filter flags for days/days_duration/days_stats/search
 * INPUT:     cobra flag values set on a subcommand
 * OUTPUT:    A query.QueryFilters value ready for dataquery.Request
 * BUSINESS:  Every filtered subcommand accepts the same predicate surface;
 *            keeping the flag registration in one helper avoids four
 *            slightly-different copies drifting apart
 * CHANGE:    Registers one flag per internal/query.QueryFilters field, shared
 *            across every filtered subcommand
 * RISK:      Low - flag plumbing only
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/timetracer/timetracer/internal/query"
)

type filterFlags struct {
	year               int
	month              int
	hasYear            bool
	hasMonth           bool
	exercise           string
	status             string
	from               string
	to                 string
	dayRemarkLike      string
	activityRemarkLike string
	pathContains       string
	overnight          bool
}

func registerFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().IntVar(&f.year, "year", 0, "filter by year")
	cmd.Flags().IntVar(&f.month, "month", 0, "filter by month (1-12)")
	cmd.Flags().StringVar(&f.exercise, "exercise", "", "filter by exercise flag (true/false)")
	cmd.Flags().StringVar(&f.status, "status", "", "filter by status flag (true/false)")
	cmd.Flags().StringVar(&f.from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.dayRemarkLike, "remark-contains", "", "substring filter on the day remark")
	cmd.Flags().StringVar(&f.activityRemarkLike, "activity-contains", "", "substring filter on interval activity remarks")
	cmd.Flags().StringVar(&f.pathContains, "path-contains", "", "substring filter on the project path")
	cmd.Flags().BoolVar(&f.overnight, "overnight", false, "only days with no recorded getup time")
}

func (f *filterFlags) toQueryFilters(cmd *cobra.Command) query.QueryFilters {
	var qf query.QueryFilters
	if cmd.Flags().Changed("year") {
		qf.Year = &f.year
	}
	if cmd.Flags().Changed("month") {
		qf.Month = &f.month
	}
	if v, ok := parseOptionalBool(f.exercise); ok {
		qf.Exercise = &v
	}
	if v, ok := parseOptionalBool(f.status); ok {
		qf.Status = &v
	}
	if f.from != "" {
		qf.From = &f.from
	}
	if f.to != "" {
		qf.To = &f.to
	}
	if f.dayRemarkLike != "" {
		qf.DayRemarkLike = &f.dayRemarkLike
	}
	if f.activityRemarkLike != "" {
		qf.ActivityRemarkLike = &f.activityRemarkLike
	}
	if f.pathContains != "" {
		qf.PathContains = &f.pathContains
	}
	if f.overnight {
		qf.Overnight = &f.overnight
	}
	return qf
}

func parseOptionalBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
