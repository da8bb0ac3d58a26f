package report

import (
	"sort"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// CategorySpend is the spending total for one category within a period.
type CategorySpend struct {
	Category   models.Category `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdown groups the period's expense transactions by category
// and sums their magnitudes, sorted by total descending. The percentage is
// each group's share of the grand total, zero when nothing was spent.
func (r *Reporter) CategoryBreakdown(period types.Period) ([]CategorySpend, error) {
	transactions, err := r.periodTransactions(period)
	if err != nil {
		return nil, err
	}

	totals := expenseTotals(transactions)

	grand := decimal.Zero
	for _, total := range totals {
		grand = grand.Add(total)
	}

	breakdown := make([]CategorySpend, 0, len(totals))
	for category, total := range totals {
		spend := CategorySpend{
			Category: category,
			Total:    total,
		}
		if grand.IsPositive() {
			spend.Percentage, _ = total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
		}
		breakdown = append(breakdown, spend)
	}

	// Ties are broken by category name to keep the order deterministic
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown, nil
}

// CategoryComparison is one row of a two-period comparison.
type CategoryComparison struct {
	Category   models.Category `json:"category"`
	TotalA     decimal.Decimal `json:"totalA"`
	TotalB     decimal.Decimal `json:"totalB"`
	Difference decimal.Decimal `json:"difference"`
}

// ComparePeriods computes the per-category expense totals for two periods
// over the union of their category sets, sorted by the first period's
// total descending.
func (r *Reporter) ComparePeriods(a, b types.Period) ([]CategoryComparison, error) {
	transactionsA, err := r.periodTransactions(a)
	if err != nil {
		return nil, err
	}

	transactionsB, err := r.periodTransactions(b)
	if err != nil {
		return nil, err
	}

	totalsA := expenseTotals(transactionsA)
	totalsB := expenseTotals(transactionsB)

	union := make(map[models.Category]bool)
	for category := range totalsA {
		union[category] = true
	}
	for category := range totalsB {
		union[category] = true
	}

	comparison := make([]CategoryComparison, 0, len(union))
	for category := range union {
		totalA := totalsA[category]
		totalB := totalsB[category]
		comparison = append(comparison, CategoryComparison{
			Category:   category,
			TotalA:     totalA,
			TotalB:     totalB,
			Difference: totalA.Sub(totalB),
		})
	}

	sort.Slice(comparison, func(i, j int) bool {
		if !comparison[i].TotalA.Equal(comparison[j].TotalA) {
			return comparison[i].TotalA.GreaterThan(comparison[j].TotalA)
		}
		return comparison[i].Category < comparison[j].Category
	})

	return comparison, nil
}

// expenseTotals sums the expense magnitudes per category.
func expenseTotals(transactions []models.Transaction) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, transaction := range transactions {
		if !transaction.Amount.IsNegative() {
			continue
		}
		totals[transaction.Category] = totals[transaction.Category].Add(transaction.Amount.Abs())
	}
	return totals
}
