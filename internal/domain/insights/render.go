package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/novaretail/customer-intelligence/pkg/money"
)

// Sentences renders the fact set as the strategic-insights block. Facts whose
// backing aggregate was empty are skipped rather than rendered as gaps.
func (g *Generator) Sentences(f Facts) []string {
	sentences := make([]string, 0, 6)

	if f.TopSegment != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Highest revenue segment: %s (%s)",
			f.TopSegment.Key, g.display(f.TopSegment.Revenue)))
	}
	if f.BottomSegment != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Lowest performing segment: %s (%s)",
			f.BottomSegment.Key, g.display(f.BottomSegment.Revenue)))
	}
	sentences = append(sentences, fmt.Sprintf(
		"Decline segment revenue trend is %s.", f.DeclineTrend))
	if f.TopChannel != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Strongest performing channel: %s (%s)",
			f.TopChannel.Key, g.display(f.TopChannel.Revenue)))
	}
	if f.StrongestPair != nil {
		sentences = append(sentences, fmt.Sprintf(
			"Strongest segment and channel combination: %s via %s (%s)",
			f.StrongestPair.Label, f.StrongestPair.Channel, g.display(f.StrongestPair.Revenue)))
	}

	if f.DeclineAlert {
		sentences = append(sentences, fmt.Sprintf(
			"Decline segment accounts for %s%% of total revenue, above the %s%% alert threshold.",
			f.DeclineRatio.StringFixed(2), g.threshold.String()))
	} else {
		sentences = append(sentences, fmt.Sprintf(
			"Decline segment accounts for %s%% of total revenue.",
			f.DeclineRatio.StringFixed(2)))
	}

	return sentences
}

// Actions renders the recommended strategic actions for the fact set.
func (g *Generator) Actions(f Facts) []string {
	actions := make([]string, 0, 3)

	if f.TopSegment != nil {
		actions = append(actions, fmt.Sprintf(
			"Increase targeted investment in the %s segment to accelerate revenue momentum.",
			f.TopSegment.Key))
	}
	if f.BottomSegment != nil {
		actions = append(actions, fmt.Sprintf(
			"Investigate root causes behind the performance of the %s segment and implement corrective engagement strategies.",
			f.BottomSegment.Key))
	}
	if f.TopChannel != nil {
		actions = append(actions, fmt.Sprintf(
			"Optimize marketing allocation toward the %s channel while closely monitoring Decline segment behavior.",
			f.TopChannel.Key))
	}

	return actions
}

// display formats a revenue figure with currency symbol, thousands separators
// and two decimal places.
func (g *Generator) display(amount decimal.Decimal) string {
	return money.NewFromDecimal(amount, g.currency).Display()
}
