// Package insights derives comparative facts from the dashboard aggregates
// and renders them as fixed-template sentences.
package insights

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/novaretail/customer-intelligence/internal/domain/analytics"
)

// TrendDirection classifies the decline-segment revenue series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// DefaultAlertThreshold is the decline-revenue share (percent) above which
// the dashboard reports an alert condition.
const DefaultAlertThreshold = 25.0

// Facts are the comparative findings derived from one dashboard pass.
// Pointer fields are nil when the backing aggregate was empty.
type Facts struct {
	TopSegment    *analytics.GroupTotal `json:"top_segment"`
	BottomSegment *analytics.GroupTotal `json:"bottom_segment"`
	TopChannel    *analytics.GroupTotal `json:"top_channel"`
	BottomChannel *analytics.GroupTotal `json:"bottom_channel"`
	StrongestPair *analytics.PairTotal  `json:"strongest_pair"`

	DeclineTrend TrendDirection  `json:"decline_trend"`
	DeclineRatio decimal.Decimal `json:"decline_ratio"` // percent of total revenue
	DeclineAlert bool            `json:"decline_alert"`
}

// Generator turns aggregates into facts and sentences. It is a pure
// derivation: it never errors, guarding every lookup against empty inputs.
type Generator struct {
	currency  string
	threshold decimal.Decimal
	logger    *slog.Logger
}

// NewGenerator constructs a generator. threshold is the decline-ratio alert
// boundary in percent; pass DefaultAlertThreshold unless configured otherwise.
func NewGenerator(currency string, threshold float64, logger *slog.Logger) *Generator {
	return &Generator{
		currency:  currency,
		threshold: decimal.NewFromFloat(threshold),
		logger:    logger,
	}
}

// Derive computes the fact set for one pass. segments and channels must be
// the single-key aggregations sorted ascending by key; ties on revenue keep
// the first occurrence in that order, so the lexicographically smallest key
// wins.
func (g *Generator) Derive(
	segments, channels []analytics.GroupTotal,
	pairs []analytics.PairTotal,
	declineTrend []analytics.MonthTotal,
	declineRevenue, totalRevenue decimal.Decimal,
) Facts {
	f := Facts{
		TopSegment:    maxGroup(segments),
		BottomSegment: minGroup(segments),
		TopChannel:    maxGroup(channels),
		BottomChannel: minGroup(channels),
		StrongestPair: maxPair(pairs),
		DeclineTrend:  trendDirection(declineTrend),
	}

	f.DeclineRatio, f.DeclineAlert = g.classifyRatio(declineRevenue, totalRevenue)

	if f.DeclineAlert && g.logger != nil {
		g.logger.Warn("decline segment share above alert threshold",
			"ratio_percent", f.DeclineRatio.StringFixed(2),
			"threshold_percent", g.threshold.String())
	}

	return f
}

// classifyRatio computes the decline-revenue share of total revenue in
// percent. The ratio is exactly zero when total revenue is zero, and the
// alert fires only when the share strictly exceeds the threshold.
func (g *Generator) classifyRatio(declineRevenue, totalRevenue decimal.Decimal) (decimal.Decimal, bool) {
	if totalRevenue.IsZero() {
		return decimal.Zero, false
	}
	ratio := declineRevenue.Div(totalRevenue).Mul(decimal.NewFromInt(100))
	return ratio, ratio.GreaterThan(g.threshold)
}

// trendDirection compares the last bucket against the first. Fewer than two
// buckets classify as stable; the series is too short to call a direction
// either way.
func trendDirection(series []analytics.MonthTotal) TrendDirection {
	if len(series) < 2 {
		return TrendStable
	}
	first := series[0].Revenue
	last := series[len(series)-1].Revenue
	switch {
	case last.GreaterThan(first):
		return TrendIncreasing
	case last.LessThan(first):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// maxGroup returns the row with the largest revenue, keeping the first
// occurrence on ties. Nil for an empty aggregation.
func maxGroup(totals []analytics.GroupTotal) *analytics.GroupTotal {
	var best *analytics.GroupTotal
	for i := range totals {
		if best == nil || totals[i].Revenue.GreaterThan(best.Revenue) {
			best = &totals[i]
		}
	}
	return best
}

// minGroup returns the row with the smallest revenue, keeping the first
// occurrence on ties. Nil for an empty aggregation.
func minGroup(totals []analytics.GroupTotal) *analytics.GroupTotal {
	var best *analytics.GroupTotal
	for i := range totals {
		if best == nil || totals[i].Revenue.LessThan(best.Revenue) {
			best = &totals[i]
		}
	}
	return best
}

// maxPair returns the strongest (label, channel) combination, keeping the
// first occurrence on ties. Nil for an empty aggregation.
func maxPair(pairs []analytics.PairTotal) *analytics.PairTotal {
	var best *analytics.PairTotal
	for i := range pairs {
		if best == nil || pairs[i].Revenue.GreaterThan(best.Revenue) {
			best = &pairs[i]
		}
	}
	return best
}
