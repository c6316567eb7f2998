package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaretail/customer-intelligence/internal/domain/analytics"
	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func row(label, channel string, amount int64) dataset.Row {
	return dataset.Row{
		Label:   label,
		Channel: channel,
		Amount:  decimal.NewFromInt(amount),
	}
}

// scenarioRows is the pinned end-to-end scenario: Growth/Online 100,
// Decline/Retail 50, Growth/Retail 30.
func scenarioRows() []dataset.Row {
	return []dataset.Row{
		row("Growth", "Online", 100),
		row("Decline", "Retail", 50),
		row("Growth", "Retail", 30),
	}
}

func TestGroupSumScenario(t *testing.T) {
	totals := analytics.GroupSum(scenarioRows(), dataset.FieldLabel)

	require.Len(t, totals, 2)
	assert.Equal(t, "Decline", totals[0].Key)
	assert.Equal(t, "50", totals[0].Revenue.String())
	assert.Equal(t, "Growth", totals[1].Key)
	assert.Equal(t, "130", totals[1].Revenue.String())

	channels := analytics.GroupSum(scenarioRows(), dataset.FieldChannel)
	require.Len(t, channels, 2)
	assert.Equal(t, "Online", channels[0].Key)
	assert.Equal(t, "100", channels[0].Revenue.String())
	assert.Equal(t, "Retail", channels[1].Key)
	assert.Equal(t, "80", channels[1].Revenue.String())
}

func TestGroupSumExhaustiveAndDisjoint(t *testing.T) {
	rows := append(scenarioRows(), row("", "Online", 999)) // null key excluded

	totals := analytics.GroupSum(rows, dataset.FieldLabel)

	grouped := decimal.Zero
	for _, g := range totals {
		grouped = grouped.Add(g.Revenue)
	}

	keyed := decimal.Zero
	for _, r := range rows {
		if r.Label != "" {
			keyed = keyed.Add(r.Amount)
		}
	}

	assert.True(t, grouped.Equal(keyed),
		"sum of group sums %s must equal sum over non-null-key rows %s", grouped, keyed)

	for _, g := range totals {
		assert.NotEqual(t, "", g.Key)
	}
}

func TestGroupSumPairs(t *testing.T) {
	pairs := analytics.GroupSumPairs(scenarioRows())

	require.Len(t, pairs, 3)
	assert.Equal(t, "Decline", pairs[0].Label)
	assert.Equal(t, "Retail", pairs[0].Channel)
	assert.Equal(t, "50", pairs[0].Revenue.String())
	assert.Equal(t, "Growth", pairs[1].Label)
	assert.Equal(t, "Online", pairs[1].Channel)
	assert.Equal(t, "Growth", pairs[2].Label)
	assert.Equal(t, "Retail", pairs[2].Channel)
}

func TestPivotZeroFillsAbsentPairs(t *testing.T) {
	pairs := analytics.GroupSumPairs(scenarioRows())
	m := analytics.Pivot(pairs)

	assert.Equal(t, []string{"Decline", "Growth"}, m.Labels)
	assert.Equal(t, []string{"Online", "Retail"}, m.Channels)

	// (Decline, Online) never occurs and must be zero, not absent.
	assert.True(t, m.Values[0][0].IsZero())
	assert.Equal(t, "50", m.Values[0][1].String())
	assert.Equal(t, "100", m.Values[1][0].String())
	assert.Equal(t, "30", m.Values[1][1].String())
}

func TestMonthlyTrend(t *testing.T) {
	rows := []dataset.Row{
		{Label: "Growth", Date: datePtr(2024, time.March, 15), Amount: decimal.NewFromInt(10)},
		{Label: "Growth", Date: datePtr(2024, time.January, 3), Amount: decimal.NewFromInt(20)},
		{Label: "Growth", Date: datePtr(2024, time.March, 28), Amount: decimal.NewFromInt(5)},
		{Label: "Growth", Date: nil, Amount: decimal.NewFromInt(999)}, // undated, excluded
	}

	trend := analytics.MonthlyTrend(rows)

	require.Len(t, trend, 2)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), trend[0].Month)
	assert.Equal(t, "20", trend[0].Revenue.String())
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), trend[1].Month)
	assert.Equal(t, "15", trend[1].Revenue.String())
}

func TestMonthlyTrendIdempotentBucketing(t *testing.T) {
	rows := []dataset.Row{
		{Date: datePtr(2024, time.January, 1), Amount: decimal.NewFromInt(20)},
		{Date: datePtr(2024, time.March, 1), Amount: decimal.NewFromInt(15)},
	}

	first := analytics.MonthlyTrend(rows)

	rebucketed := make([]dataset.Row, 0, len(first))
	for _, m := range first {
		month := m.Month
		rebucketed = append(rebucketed, dataset.Row{Date: &month, Amount: m.Revenue})
	}
	second := analytics.MonthlyTrend(rebucketed)

	assert.Equal(t, first, second)
}

func TestMonthlyTrendEmptyDatedSubset(t *testing.T) {
	rows := []dataset.Row{
		{Label: "Growth", Amount: decimal.NewFromInt(10)},
	}

	assert.Empty(t, analytics.MonthlyTrend(rows))
	assert.Empty(t, analytics.DeclineTrend(rows))
}

func TestDeclineTrendRestriction(t *testing.T) {
	rows := []dataset.Row{
		{Label: "Decline", Date: datePtr(2024, time.January, 5), Amount: decimal.NewFromInt(40)},
		{Label: " DECLINE ", Date: datePtr(2024, time.February, 5), Amount: decimal.NewFromInt(10)},
		{Label: "Growth", Date: datePtr(2024, time.January, 9), Amount: decimal.NewFromInt(70)},
	}

	trend := analytics.DeclineTrend(rows)

	require.Len(t, trend, 2)
	assert.Equal(t, "40", trend[0].Revenue.String())
	assert.Equal(t, "10", trend[1].Revenue.String())
}

func TestDeclineRevenue(t *testing.T) {
	assert.Equal(t, "50", analytics.DeclineRevenue(scenarioRows()).String())
	assert.True(t, analytics.DeclineRevenue(nil).IsZero())
}

func TestIsDecline(t *testing.T) {
	assert.True(t, analytics.IsDecline("decline"))
	assert.True(t, analytics.IsDecline("Decline"))
	assert.True(t, analytics.IsDecline("  DECLINE "))
	assert.False(t, analytics.IsDecline("declined"))
	assert.False(t, analytics.IsDecline(""))
}
