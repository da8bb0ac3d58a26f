// Package report implements the read-side aggregations over the ledger:
// net worth, cash flow, category breakdowns, budget progress and spending
// series.
//
// All operations are pure reads. They observe whatever state is currently
// committed, so they are safe to call concurrently with each other and
// with an in-flight sync. Aggregates over an empty input set return
// zero-valued results, never an error.
package report

import (
	"time"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reporter computes aggregates over the visible subset of the ledger.
type Reporter struct {
	db     *gorm.DB
	source models.Source
}

// New creates a Reporter for the given data source view.
func New(db *gorm.DB, source models.Source) *Reporter {
	return &Reporter{
		db:     db,
		source: source,
	}
}

// Accounts returns the visible, non-hidden accounts.
func (r *Reporter) Accounts() ([]models.Account, error) {
	var accounts []models.Account
	err := r.source.Accounts(r.db).
		Where("hidden = ?", false).
		Order("name ASC").
		Find(&accounts).Error
	return accounts, err
}

// RecentTransactions returns the most recent visible transactions, newest
// first.
func (r *Reporter) RecentTransactions(limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.source.Transactions(r.db).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// periodTransactions returns the visible transactions within the period.
func (r *Reporter) periodTransactions(period types.Period) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.source.Transactions(r.db).
		Where("transactions.date >= ?", period.Start).
		Where("transactions.date < ?", period.End).
		Find(&transactions).Error
	return transactions, err
}

// NetWorth is the accounts-derived net worth with the change against the
// previous snapshot.
type NetWorth struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
	MonthChange decimal.Decimal `json:"monthChange"`
}

// NetWorth sums the visible, non-hidden accounts into assets and
// liabilities. The month-over-month change is the difference between the
// two most recent snapshots; with fewer than two snapshots it is zero.
func (r *Reporter) NetWorth() (NetWorth, error) {
	accounts, err := r.Accounts()
	if err != nil {
		return NetWorth{}, err
	}

	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, account := range accounts {
		if account.Type.IsAsset() {
			assets = assets.Add(account.Balance)
		} else {
			liabilities = liabilities.Add(account.Balance.Abs())
		}
	}

	result := NetWorth{
		Assets:      assets,
		Liabilities: liabilities,
		NetWorth:    assets.Sub(liabilities),
	}

	var snapshots []models.NetWorthSnapshot
	err = r.db.
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Limit(2).
		Find(&snapshots).Error
	if err != nil {
		return NetWorth{}, err
	}

	if len(snapshots) >= 2 {
		result.MonthChange = snapshots[0].NetWorth().Sub(snapshots[1].NetWorth())
	}

	return result, nil
}

// CashFlow is the income and spending within one reporting period.
type CashFlow struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlow sums the visible transactions within the period. Income is the
// sum of positive amounts, expenses the magnitude of negative amounts.
func (r *Reporter) CashFlow(period types.Period) (CashFlow, error) {
	transactions, err := r.periodTransactions(period)
	if err != nil {
		return CashFlow{}, err
	}

	flow := CashFlow{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, transaction := range transactions {
		if transaction.Amount.IsPositive() {
			flow.Income = flow.Income.Add(transaction.Amount)
		} else {
			flow.Expenses = flow.Expenses.Add(transaction.Amount.Abs())
		}
	}

	flow.Net = flow.Income.Sub(flow.Expenses)
	return flow, nil
}

// currentDayOf returns the last day of the series for the month: the
// current day for the running month, the full month length otherwise.
func currentDayOf(month types.Month, now time.Time) int {
	if month.Contains(now) {
		return now.Day()
	}

	// Last day of the month
	return month.AddDate(0, 1).First().AddDate(0, 0, -1).Day()
}
