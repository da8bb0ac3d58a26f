// Package fixture seeds the database with demo data. Demo records carry no
// external ID, which is what separates them from synced live data.
package fixture

import (
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed creates the demo accounts, transactions and budget categories. It is
// a no-op when demo accounts already exist, so calling it repeatedly does
// not duplicate data.
func Seed(db *gorm.DB) error {
	var count int64
	err := db.Model(&models.Account{}).Where("external_id IS NULL").Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		accounts, err := seedAccounts(tx)
		if err != nil {
			return err
		}

		if err := seedTransactions(tx, accounts); err != nil {
			return err
		}

		return seedBudgets(tx)
	})
}

func seedAccounts(tx *gorm.DB) (map[string]*models.Account, error) {
	accounts := map[string]*models.Account{
		"checking": {
			Name:        "Everyday Checking",
			Institution: "Maple Trust Bank",
			Type:        models.AccountTypeChecking,
			Balance:     decimal.NewFromFloat(2735.17),
		},
		"savings": {
			Name:        "Rainy Day Savings",
			Institution: "Maple Trust Bank",
			Type:        models.AccountTypeSavings,
			Balance:     decimal.NewFromFloat(11200.00),
		},
		"credit": {
			Name:        "Travel Rewards Card",
			Institution: "Northgate Credit",
			Type:        models.AccountTypeCreditCard,
			Balance:     decimal.NewFromFloat(-642.89),
		},
		"investment": {
			Name:        "Index Fund Portfolio",
			Institution: "Harbor Invest",
			Type:        models.AccountTypeInvestment,
			Balance:     decimal.NewFromFloat(18430.52),
		},
	}

	for _, account := range accounts {
		if err := tx.Create(account).Error; err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

// demoEntry is one recurring line of the generated demo ledger.
type demoEntry struct {
	account  string
	merchant string
	amount   float64
	category models.Category
	// day of month for monthly entries, interval in days otherwise
	day      int
	interval int
}

var demoEntries = []demoEntry{
	{account: "checking", merchant: "Acme Corp Payroll", amount: 3250.00, category: models.CategoryIncome, day: 1},
	{account: "checking", merchant: "Birchwood Apartments", amount: -1450.00, category: models.CategoryHousing, day: 2},
	{account: "checking", merchant: "City Power & Light", amount: -86.40, category: models.CategoryUtilities, day: 5},
	{account: "checking", merchant: "Streamflix", amount: -15.99, category: models.CategorySubscriptions, day: 8},
	{account: "savings", merchant: "Automatic Transfer", amount: 400.00, category: models.CategoryTransfer, day: 3},
	{account: "checking", merchant: "Greenleaf Grocers", amount: -94.35, category: models.CategoryGroceries, interval: 6},
	{account: "credit", merchant: "Corner Coffee Roasters", amount: -4.50, category: models.CategoryDining, interval: 2},
	{account: "credit", merchant: "Luigi's Trattoria", amount: -47.80, category: models.CategoryDining, interval: 9},
	{account: "checking", merchant: "Metro Transit", amount: -32.00, category: models.CategoryTransportation, interval: 7},
	{account: "credit", merchant: "Pageturner Books", amount: -23.15, category: models.CategoryShopping, interval: 14},
	{account: "credit", merchant: "Cinema Royale", amount: -28.00, category: models.CategoryEntertainment, interval: 16},
	{account: "checking", merchant: "Lakeside Pharmacy", amount: -18.75, category: models.CategoryHealthcare, interval: 21},
}

func seedTransactions(tx *gorm.DB, accounts map[string]*models.Account) error {
	now := time.Now().In(time.UTC)
	start := now.AddDate(0, -3, 0)

	for _, entry := range demoEntries {
		account := accounts[entry.account]

		for _, date := range entry.dates(start, now) {
			transaction := models.Transaction{
				Date:      date,
				Merchant:  entry.merchant,
				Amount:    decimal.NewFromFloat(entry.amount),
				Category:  entry.category,
				Note:      demoNote(entry),
				AccountID: &account.ID,
			}
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// dates expands one entry into its occurrences between start and now.
func (e demoEntry) dates(start, now time.Time) []time.Time {
	var dates []time.Time

	if e.day > 0 {
		date := time.Date(start.Year(), start.Month(), e.day, 12, 0, 0, 0, time.UTC)
		for !date.After(now) {
			if !date.Before(start) {
				dates = append(dates, date)
			}
			date = date.AddDate(0, 1, 0)
		}
		return dates
	}

	for date := start; !date.After(now); date = date.AddDate(0, 0, e.interval) {
		dates = append(dates, date)
	}
	return dates
}

func demoNote(entry demoEntry) string {
	if strings.Contains(entry.merchant, "Transfer") {
		return "Monthly savings"
	}
	return ""
}

func seedBudgets(tx *gorm.DB) error {
	budgets := []models.BudgetCategory{
		{Name: "Groceries", Icon: "🛒", MonthlyLimit: decimal.NewFromInt(450), Category: models.CategoryGroceries},
		{Name: "Eating out", Icon: "🍜", MonthlyLimit: decimal.NewFromInt(250), Category: models.CategoryDining},
		{Name: "Entertainment", Icon: "🎬", MonthlyLimit: decimal.NewFromInt(100), Category: models.CategoryEntertainment},
		{Name: "Transport", Icon: "🚇", MonthlyLimit: decimal.NewFromInt(120), Category: models.CategoryTransportation},
	}

	for _, budget := range budgets {
		if err := tx.Create(&budget).Error; err != nil {
			return err
		}
	}

	return nil
}
