// Package dashboard runs one full analysis pass over the typed table:
// filter, KPIs, aggregates, insight derivation. Each pass starts from the
// immutable table and produces a disposable report; nothing is cached across
// passes.
package dashboard

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/novaretail/customer-intelligence/internal/domain/analytics"
	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
	"github.com/novaretail/customer-intelligence/internal/domain/filter"
	"github.com/novaretail/customer-intelligence/internal/domain/insights"
)

// Report is the full output of one dashboard pass: the data every
// presentation surface (KPI cards, chart layer, insight block, data table)
// consumes.
type Report struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	KPIs analytics.Summary `json:"kpis"`

	RevenueBySegment  []analytics.GroupTotal `json:"revenue_by_segment"`
	RevenueByRegion   []analytics.GroupTotal `json:"revenue_by_region"`
	RevenueByChannel  []analytics.GroupTotal `json:"revenue_by_channel"`
	RevenueByCategory []analytics.GroupTotal `json:"revenue_by_category"`

	RevenueBySegmentChannel []analytics.PairTotal `json:"revenue_by_segment_channel"`
	SegmentChannelMatrix    analytics.Matrix      `json:"segment_channel_matrix"`

	MonthlyTrend []analytics.MonthTotal `json:"monthly_trend"`
	DeclineTrend []analytics.MonthTotal `json:"decline_trend"`

	Facts    insights.Facts `json:"facts"`
	Insights []string       `json:"insights"`
	Actions  []string       `json:"actions"`

	Rows []dataset.Row `json:"rows"`
}

// Service orchestrates dashboard passes over a loaded table.
type Service struct {
	table  *dataset.Table
	gen    *insights.Generator
	logger *slog.Logger
}

// NewService creates a dashboard service over an immutable typed table.
func NewService(table *dataset.Table, gen *insights.Generator, logger *slog.Logger) *Service {
	return &Service{table: table, gen: gen, logger: logger}
}

// FilterOptions returns the option list per filterable field, for the
// widget layer's multi-select controls.
func (s *Service) FilterOptions() map[dataset.Field][]string {
	return filter.Options(s.table)
}

// Run executes one full pass under the given selection. It returns
// filter.ErrNoRowsMatch when the selection excludes every row; the caller
// should surface that as a warning, not an error.
func (s *Service) Run(sel filter.Selection) (*Report, error) {
	started := time.Now()

	view, err := filter.Apply(s.table, sel)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: started,

		KPIs: analytics.Summarize(view),

		RevenueBySegment:  analytics.GroupSum(view, dataset.FieldLabel),
		RevenueByRegion:   analytics.GroupSum(view, dataset.FieldRegion),
		RevenueByChannel:  analytics.GroupSum(view, dataset.FieldChannel),
		RevenueByCategory: analytics.GroupSum(view, dataset.FieldCategory),

		RevenueBySegmentChannel: analytics.GroupSumPairs(view),

		MonthlyTrend: analytics.MonthlyTrend(view),
		DeclineTrend: analytics.DeclineTrend(view),

		Rows: view,
	}
	report.SegmentChannelMatrix = analytics.Pivot(report.RevenueBySegmentChannel)

	report.Facts = s.gen.Derive(
		report.RevenueBySegment,
		report.RevenueByChannel,
		report.RevenueBySegmentChannel,
		report.DeclineTrend,
		analytics.DeclineRevenue(view),
		report.KPIs.TotalRevenue,
	)
	report.Insights = s.gen.Sentences(report.Facts)
	report.Actions = s.gen.Actions(report.Facts)

	s.logger.Debug("dashboard pass completed",
		"rows_in", s.table.Len(),
		"rows_out", len(view),
		"duration", time.Since(started))

	return report, nil
}
