// Package analytics computes scalar summaries and grouped revenue aggregates
// over a filtered view. Everything here is a pure reduction: inputs are never
// mutated and results are rebuilt from scratch each pass.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
)

// Summary holds the four dashboard KPIs. AveragePurchase and
// AverageSatisfaction are nil when no value is available.
type Summary struct {
	TotalRevenue        decimal.Decimal  `json:"total_revenue"`
	AveragePurchase     *decimal.Decimal `json:"average_purchase"`
	TransactionCount    int              `json:"transaction_count"`
	AverageSatisfaction *float64         `json:"average_satisfaction"`
}

// Summarize computes the KPI block for a view.
//
// AveragePurchase is nil only for an empty view, which the filter stage never
// passes through. AverageSatisfaction averages the non-nil scores and is nil
// when every score is missing.
func Summarize(view []dataset.Row) Summary {
	s := Summary{TotalRevenue: decimal.Zero}

	distinct := make(map[string]struct{})
	var satSum float64
	var satCount int

	for _, row := range view {
		s.TotalRevenue = s.TotalRevenue.Add(row.Amount)
		if row.TransactionID != "" {
			distinct[row.TransactionID] = struct{}{}
		}
		if row.Satisfaction != nil {
			satSum += *row.Satisfaction
			satCount++
		}
	}
	s.TransactionCount = len(distinct)

	if n := len(view); n > 0 {
		avg := s.TotalRevenue.Div(decimal.NewFromInt(int64(n)))
		s.AveragePurchase = &avg
	}
	if satCount > 0 {
		avg := satSum / float64(satCount)
		s.AverageSatisfaction = &avg
	}

	return s
}
