package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory is a user-defined monthly spending target for one
// transaction category.
//
// The spent amount is never stored, it is always computed from matching
// transactions for the active period so that it cannot go stale.
type BudgetCategory struct {
	DefaultModel
	Name         string          `json:"name" gorm:"uniqueIndex" example:"Eating out"`
	Icon         string          `json:"icon" example:"🍜"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" gorm:"type:DECIMAL(20,8)" example:"250"`
	Category     Category        `json:"category" example:"dining"`
}

// BeforeSave trims whitespace and defaults the mapped category.
func (b *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if b.Category == "" {
		b.Category = CategoryOther
	}

	return nil
}

// AfterSave ensures the monthly limit is not negative.
func (b *BudgetCategory) AfterSave(_ *gorm.DB) error {
	if b.MonthlyLimit.IsNegative() {
		return ErrBudgetLimitNegative
	}

	return nil
}
