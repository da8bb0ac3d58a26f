package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType is the kind of financial holding an account represents.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit-card"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeMortgage   AccountType = "mortgage"
	AccountTypeOther      AccountType = "other"
)

// IsAsset reports whether balances of this account type count towards
// assets. All other types are liabilities.
func (t AccountType) IsAsset() bool {
	switch t {
	case AccountTypeCreditCard, AccountTypeLoan, AccountTypeMortgage:
		return false
	}
	return true
}

// Account represents a financial holding, e.g. a bank account or a credit card.
//
// Accounts synced from the aggregator carry an ExternalID, demo accounts do
// not. The ExternalID is the idempotence key for account upserts: it
// identifies at most one account.
type Account struct {
	DefaultModel
	Name         string          `json:"name" example:"Joint checking"`
	Institution  string          `json:"institution" example:"Maple Trust Bank"`
	Type         AccountType     `json:"type" example:"checking"`
	Balance      decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)" example:"2735.17"` // Liabilities are stored as negative balances
	ExternalID   *string         `json:"externalId" gorm:"uniqueIndex"`
	ItemID       string          `json:"-"` // Reference to the aggregator access credential
	LastSyncedAt *time.Time      `json:"lastSyncedAt"`
	Hidden       bool            `json:"hidden" example:"false" default:"false"` // Hidden accounts are soft-deleted, never physically removed
}

// BeforeSave trims whitespace from all strings
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Institution = strings.TrimSpace(a.Institution)

	if a.Type == "" {
		a.Type = AccountTypeOther
	}

	return nil
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(&Transaction{AccountID: &a.ID}).Find(&transactions)
	return transactions
}
