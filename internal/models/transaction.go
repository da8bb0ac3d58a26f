package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is the closed set of transaction categories.
type Category string

const (
	CategoryGroceries      Category = "groceries"
	CategoryDining         Category = "dining"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryUtilities      Category = "utilities"
	CategoryHousing        Category = "housing"
	CategoryHealthcare     Category = "healthcare"
	CategoryPersonalCare   Category = "personal-care"
	CategoryEducation      Category = "education"
	CategoryTravel         Category = "travel"
	CategorySubscriptions  Category = "subscriptions"
	CategoryIncome         Category = "income"
	CategoryTransfer       Category = "transfer"
	CategoryFees           Category = "fees"
	CategoryOther          Category = "other"
)

// Categories lists all valid transaction categories.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryDining,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryUtilities,
		CategoryHousing,
		CategoryHealthcare,
		CategoryPersonalCare,
		CategoryEducation,
		CategoryTravel,
		CategorySubscriptions,
		CategoryIncome,
		CategoryTransfer,
		CategoryFees,
		CategoryOther,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, category := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction represents a single ledger movement.
//
// Amounts are signed with negative meaning money out and positive meaning
// money in. Synced transactions carry an ExternalID, the idempotence key
// for transaction upserts.
type Transaction struct {
	DefaultModel
	Date       time.Time       `json:"date"` // Always stored in UTC
	Merchant   string          `json:"merchant" example:"Corner Coffee Roasters"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"-4.50"`
	Category   Category        `json:"category" example:"dining"`
	Pending    bool            `json:"pending" example:"false"`
	Note       string          `json:"note" example:"Birthday present for Ida"`
	ExternalID *string         `json:"externalId" gorm:"uniqueIndex"`
	AccountID  *uuid.UUID      `json:"accountId"`
	Account    Account         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
//   - defaults the category to "other"
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Category == "" {
		t.Category = CategoryOther
	}

	// Ensure that the account ID is nil and not a pointer to a nil UUID
	if t.AccountID != nil && *t.AccountID == uuid.Nil {
		t.AccountID = nil
	}

	return
}
