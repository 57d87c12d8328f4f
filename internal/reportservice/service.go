/**
 * CONTEXT:   Composes the query, tree-building, and formatter-dispatch layers
 *            into the single-report path callers actually invoke
 * INPUT:     A date or range request plus the desired output format
 * OUTPUT:    A rendered report string
 * BUSINESS:  Every other component (C1-C10) exists to be composed here; this
 *            is the package a report-rendering entry point calls into
 *            (cmd/timetracer-data-query does not use it; it runs listings
 *            through internal/dataquery)
 * CHANGE:    One Service composes query, tree-building, and formatter
 *            dispatch for both daily and range reports, instead of a
 *            separate generator per report kind
 * RISK:      Medium - wrong wiring here silently produces a report with the
 *            right shape but wrong numbers; covered by service_test.go
 *            against fixed fixture data
 */

package reportservice

import (
	"context"
	"fmt"

	"github.com/timetracer/timetracer/internal/formatterabi"
	"github.com/timetracer/timetracer/internal/pluginhost"
	"github.com/timetracer/timetracer/internal/projectcache"
	"github.com/timetracer/timetracer/internal/projecttree"
	"github.com/timetracer/timetracer/internal/query"
	"github.com/timetracer/timetracer/internal/reportdata"
	"github.com/timetracer/timetracer/internal/sqlitestore"
	"github.com/timetracer/timetracer/internal/timeutil"
	"github.com/timetracer/timetracer/pkg/config"
	"github.com/timetracer/timetracer/pkg/logger"
)

// formatterHost is the slice of *pluginhost.Host the report service depends
// on, narrowed so tests can substitute a fake without touching the real
// plugin loading machinery.
type formatterHost interface {
	Format(kind formatterabi.ReportKind, format formatterabi.ReportFormat, config, payload interface{}) (string, error)
}

// Service composes C5 (query), C6 (project tree), C7 (report data), and C9
// (plugin host) into the report-generation entry points CLI/daemon callers use.
type Service struct {
	db    *sqlitestore.DB
	cache *projectcache.Cache
	host  formatterHost
	cfg   *config.Config
	log   logger.Logger
}

// New builds a Service from its already-constructed dependencies.
func New(db *sqlitestore.DB, cache *projectcache.Cache, host *pluginhost.Host, cfg *config.Config, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{db: db, cache: cache, host: host, cfg: cfg, log: log.WithComponent("reportservice")}
}

// GenerateDaily renders the daily report for date in format: fetch day
// scope, build the tree only when total_duration > 0, then format.
func (s *Service) GenerateDaily(ctx context.Context, date string, format formatterabi.ReportFormat) (string, error) {
	if err := s.cache.EnsureLoaded(ctx, s.db); err != nil {
		return "", fmt.Errorf("reportservice: failed to load project cache: %w", err)
	}

	scope, err := query.FetchDayScope(ctx, s.db, date)
	if err != nil {
		return "", fmt.Errorf("reportservice: failed to fetch day scope for %s: %w", date, err)
	}

	var tree []*projecttree.Node
	total := sumDurations(scope.DetailedRecords)
	if total > 0 {
		tree = projecttree.Build(scope.ProjectStats, s.cache)
	}

	data := reportdata.BuildDaily(scope, tree)
	payload := formatterabi.BuildDailyPayload(data)

	out, err := s.host.Format(formatterabi.ReportKindDaily, format, s.cfg, payload)
	if err != nil {
		return "", fmt.Errorf("reportservice: failed to format daily report for %s: %w", date, err)
	}
	return out, nil
}

// GenerateRange renders a Monthly/Weekly/Yearly/Period/Arbitrary report.
func (s *Service) GenerateRange(ctx context.Context, kind reportdata.RangeKind, label string, req query.RangeRequest, format formatterabi.ReportFormat) (string, error) {
	if err := s.cache.EnsureLoaded(ctx, s.db); err != nil {
		return "", fmt.Errorf("reportservice: failed to load project cache: %w", err)
	}

	scope, err := query.FetchRangeScope(ctx, s.db, req)
	if err != nil {
		data := reportdata.BuildRange(kind, label, 0, &query.RangeScopeResult{}, nil)
		payload := formatterabi.BuildRangePayload(data)
		out, formatErr := s.host.Format(formatterabi.ReportKindRange, format, s.cfg, payload)
		if formatErr != nil {
			return "", fmt.Errorf("reportservice: failed to format invalid range report: %w", formatErr)
		}
		return out, nil
	}

	var tree []*projecttree.Node
	if scope.TotalDuration > 0 {
		tree = projecttree.Build(scope.ProjectStats, s.cache)
	}

	requestedDays := 0
	if first, errS := timeutil.ParseDate(scope.Start); errS == nil {
		if last, errE := timeutil.ParseDate(scope.End); errE == nil {
			requestedDays = int(last.Sub(first).Hours()/24) + 1
		}
	}

	data := reportdata.BuildRange(kind, label, requestedDays, scope, tree)
	payload := formatterabi.BuildRangePayload(data)

	out, err := s.host.Format(formatterabi.ReportKindRange, format, s.cfg, payload)
	if err != nil {
		return "", fmt.Errorf("reportservice: failed to format range report %s: %w", label, err)
	}
	return out, nil
}

func sumDurations(records []query.DetailedRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.DurationSec
	}
	return total
}
