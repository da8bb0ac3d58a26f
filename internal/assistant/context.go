// Package assistant assembles the grounding context for the AI assistant
// and drives the conversation with the model.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/report"
	"github.com/pocketledger/backend/internal/types"
)

// ContextData is everything the grounding document is built from.
type ContextData struct {
	Now           time.Time
	Accounts      []models.Account
	NetWorth      report.NetWorth
	CashFlow      report.CashFlow
	TopCategories []report.CategorySpend
	Budgets       report.BudgetSummary
	Recent        []models.Transaction
}

// Gather collects the current aggregates for the grounding document. It is
// called fresh on every assistant turn so the document always reflects the
// committed ledger state.
func Gather(r *report.Reporter, now time.Time, recentLimit int) (ContextData, error) {
	period := types.MonthOf(now).Period()

	accounts, err := r.Accounts()
	if err != nil {
		return ContextData{}, err
	}

	netWorth, err := r.NetWorth()
	if err != nil {
		return ContextData{}, err
	}

	cashFlow, err := r.CashFlow(period)
	if err != nil {
		return ContextData{}, err
	}

	breakdown, err := r.CategoryBreakdown(period)
	if err != nil {
		return ContextData{}, err
	}
	if len(breakdown) > 5 {
		breakdown = breakdown[:5]
	}

	budgets, err := r.BudgetProgress(period)
	if err != nil {
		return ContextData{}, err
	}

	recent, err := r.RecentTransactions(recentLimit)
	if err != nil {
		return ContextData{}, err
	}

	return ContextData{
		Now:           now,
		Accounts:      accounts,
		NetWorth:      netWorth,
		CashFlow:      cashFlow,
		TopCategories: breakdown,
		Budgets:       budgets,
		Recent:        recent,
	}, nil
}

// BuildContext formats the grounding document. Every section keeps its
// header and degrades to an explicit "no data" sentence when its backing
// collection is empty.
func BuildContext(data ContextData) string {
	var b strings.Builder

	month := types.MonthOf(data.Now)

	b.WriteString("You are Penny, the personal finance assistant of this app.\n")
	b.WriteString("Answer questions about the user's finances using only the data below.\n")
	fmt.Fprintf(&b, "Today's date is %s.\n", data.Now.Format("2006-01-02"))
	b.WriteString("Keep answers short. Format amounts with two decimal places. Do not invent data.\n")

	b.WriteString("\n## Accounts\n")
	if len(data.Accounts) == 0 {
		b.WriteString("There are no visible accounts.\n")
	}
	for _, account := range data.Accounts {
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", account.Name, account.Institution, account.Type, account.Balance.StringFixed(2))
	}

	b.WriteString("\n## Net worth\n")
	if len(data.Accounts) == 0 {
		b.WriteString("There is no net worth data yet.\n")
	} else {
		fmt.Fprintf(&b, "Assets: %s, liabilities: %s, net worth: %s.\n",
			data.NetWorth.Assets.StringFixed(2),
			data.NetWorth.Liabilities.StringFixed(2),
			data.NetWorth.NetWorth.StringFixed(2))
		fmt.Fprintf(&b, "Change since the previous snapshot: %s.\n", data.NetWorth.MonthChange.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n## Cash flow (%s)\n", month)
	if data.CashFlow.Income.IsZero() && data.CashFlow.Expenses.IsZero() {
		b.WriteString("There is no cash flow recorded this month.\n")
	} else {
		fmt.Fprintf(&b, "Income: %s, expenses: %s, net: %s.\n",
			data.CashFlow.Income.StringFixed(2),
			data.CashFlow.Expenses.StringFixed(2),
			data.CashFlow.Net.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n## Top spending categories (%s)\n", month)
	if len(data.TopCategories) == 0 {
		b.WriteString("There is no spending recorded this month.\n")
	}
	for _, spend := range data.TopCategories {
		fmt.Fprintf(&b, "- %s: %s (%.1f%%)\n", spend.Category, spend.Total.StringFixed(2), spend.Percentage)
	}

	b.WriteString("\n## Budgets\n")
	if len(data.Budgets.Budgets) == 0 {
		b.WriteString("There are no budgets configured.\n")
	}
	for _, status := range data.Budgets.Budgets {
		fmt.Fprintf(&b, "- %s: spent %s of %s (%.0f%%)", status.Name, status.Spent.StringFixed(2), status.MonthlyLimit.StringFixed(2), status.Progress*100)
		if status.OverBudget {
			b.WriteString(" OVER BUDGET")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Recent transactions\n")
	if len(data.Recent) == 0 {
		b.WriteString("There are no transactions yet.\n")
	}
	for _, transaction := range data.Recent {
		fmt.Fprintf(&b, "- %s %s %s (%s)\n",
			transaction.Date.Format("2006-01-02"),
			transaction.Merchant,
			transaction.Amount.StringFixed(2),
			transaction.Category)
	}

	return b.String()
}
