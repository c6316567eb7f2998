package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
)

// GroupTotal is one aggregate row: a group key with its summed revenue.
type GroupTotal struct {
	Key     string          `json:"key"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PairTotal is a two-key aggregate row over (segment label, retail channel).
type PairTotal struct {
	Label   string          `json:"label"`
	Channel string          `json:"channel"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthTotal is one bucket of a time series: revenue summed over a calendar
// month, keyed by the first of the month.
type MonthTotal struct {
	Month   time.Time       `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Matrix is the pivoted (label x channel) revenue table used for heatmaps.
// Every absent (label, channel) combination is filled with zero.
type Matrix struct {
	Labels   []string            `json:"labels"`
	Channels []string            `json:"channels"`
	Values   [][]decimal.Decimal `json:"values"`
}

// GroupSum partitions the view by the string value of key, sums purchase
// amounts per partition and returns the rows sorted ascending by key.
// Rows with a missing key are excluded from every group.
func GroupSum(view []dataset.Row, key dataset.Field) []GroupTotal {
	sums := make(map[string]decimal.Decimal)
	for _, row := range view {
		k, ok := row.Categorical(key)
		if !ok || k == "" {
			continue
		}
		sums[k] = sums[k].Add(row.Amount)
	}

	totals := make([]GroupTotal, 0, len(sums))
	for k, rev := range sums {
		totals = append(totals, GroupTotal{Key: k, Revenue: rev})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Key < totals[j].Key })
	return totals
}

// GroupSumPairs partitions the view by (label, channel) and sums purchase
// amounts per pair. Pairs with either key missing are excluded. Results are
// sorted by label then channel for deterministic output.
func GroupSumPairs(view []dataset.Row) []PairTotal {
	type pair struct{ label, channel string }
	sums := make(map[pair]decimal.Decimal)
	for _, row := range view {
		if row.Label == "" || row.Channel == "" {
			continue
		}
		p := pair{row.Label, row.Channel}
		sums[p] = sums[p].Add(row.Amount)
	}

	totals := make([]PairTotal, 0, len(sums))
	for p, rev := range sums {
		totals = append(totals, PairTotal{Label: p.label, Channel: p.channel, Revenue: rev})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Label != totals[j].Label {
			return totals[i].Label < totals[j].Label
		}
		return totals[i].Channel < totals[j].Channel
	})
	return totals
}

// Pivot spreads the two-key aggregation into a (label x channel) matrix,
// filling every combination absent from pairs with zero.
func Pivot(pairs []PairTotal) Matrix {
	labelSet := make(map[string]struct{})
	channelSet := make(map[string]struct{})
	for _, p := range pairs {
		labelSet[p.Label] = struct{}{}
		channelSet[p.Channel] = struct{}{}
	}

	m := Matrix{
		Labels:   sortedKeys(labelSet),
		Channels: sortedKeys(channelSet),
	}

	index := make(map[string]decimal.Decimal, len(pairs))
	for _, p := range pairs {
		index[p.Label+"\x00"+p.Channel] = p.Revenue
	}

	m.Values = make([][]decimal.Decimal, len(m.Labels))
	for i, label := range m.Labels {
		m.Values[i] = make([]decimal.Decimal, len(m.Channels))
		for j, channel := range m.Channels {
			if rev, ok := index[label+"\x00"+channel]; ok {
				m.Values[i][j] = rev
			} else {
				m.Values[i][j] = decimal.Zero
			}
		}
	}
	return m
}

// MonthlyTrend buckets the view's dated rows by calendar month and sums
// revenue per bucket, sorted ascending by bucket start. Rows without a
// parseable date are excluded; an all-undated view yields an empty series.
func MonthlyTrend(view []dataset.Row) []MonthTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, row := range view {
		if row.Date == nil {
			continue
		}
		bucket := monthStart(*row.Date)
		sums[bucket] = sums[bucket].Add(row.Amount)
	}

	totals := make([]MonthTotal, 0, len(sums))
	for bucket, rev := range sums {
		totals = append(totals, MonthTotal{Month: bucket, Revenue: rev})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month.Before(totals[j].Month) })
	return totals
}

// DeclineTrend is the monthly trend restricted to decline-segment rows.
func DeclineTrend(view []dataset.Row) []MonthTotal {
	declined := make([]dataset.Row, 0)
	for _, row := range view {
		if IsDecline(row.Label) {
			declined = append(declined, row)
		}
	}
	return MonthlyTrend(declined)
}

// DeclineRevenue sums purchase amounts over decline-segment rows.
func DeclineRevenue(view []dataset.Row) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range view {
		if IsDecline(row.Label) {
			sum = sum.Add(row.Amount)
		}
	}
	return sum
}

// IsDecline reports whether a label denotes the decline segment under
// trimmed, case-insensitive comparison.
func IsDecline(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "decline")
}

// monthStart truncates a date to the first of its calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
