package report

import (
	"sort"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BudgetStatus is the computed progress for one budget category.
type BudgetStatus struct {
	models.BudgetCategory
	Spent      decimal.Decimal `json:"spent"`
	Progress   float64         `json:"progress"`
	OverBudget bool            `json:"overBudget"`
}

// BudgetSummary is the progress of all budget categories for one period.
type BudgetSummary struct {
	Budgets       []BudgetStatus  `json:"budgets"`
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	Remaining     decimal.Decimal `json:"remaining"` // May be negative
}

// BudgetProgress computes the spent amount and progress for every budget
// category over the period. The spent amount is always computed live from
// the matching expense transactions, it is never read from storage.
//
// A zero limit reports progress zero by convention, so the result never
// contains a division by zero.
func (r *Reporter) BudgetProgress(period types.Period) (BudgetSummary, error) {
	var categories []models.BudgetCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return BudgetSummary{}, err
	}

	transactions, err := r.periodTransactions(period)
	if err != nil {
		return BudgetSummary{}, err
	}

	totals := expenseTotals(transactions)

	summary := BudgetSummary{
		Budgets:       make([]BudgetStatus, 0, len(categories)),
		TotalBudgeted: decimal.Zero,
		TotalSpent:    decimal.Zero,
	}

	for _, category := range categories {
		spent := totals[category.Category]

		status := BudgetStatus{
			BudgetCategory: category,
			Spent:          spent,
		}
		if category.MonthlyLimit.IsPositive() {
			status.Progress, _ = spent.Div(category.MonthlyLimit).Float64()
			status.OverBudget = status.Progress > 1.0
		}

		summary.Budgets = append(summary.Budgets, status)
		summary.TotalBudgeted = summary.TotalBudgeted.Add(category.MonthlyLimit)
		summary.TotalSpent = summary.TotalSpent.Add(spent)
	}

	sort.Slice(summary.Budgets, func(i, j int) bool {
		return summary.Budgets[i].Name < summary.Budgets[j].Name
	})

	summary.Remaining = summary.TotalBudgeted.Sub(summary.TotalSpent)
	return summary, nil
}
