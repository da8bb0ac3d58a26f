package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NetWorthSnapshot is a point-in-time rollup of all visible accounts.
//
// Snapshots are immutable once created: a new sync pass appends a new
// snapshot instead of mutating an old one.
type NetWorthSnapshot struct {
	DefaultModel
	Date        time.Time       `json:"date"`
	Assets      decimal.Decimal `json:"assets" gorm:"type:DECIMAL(20,8)" example:"3000"`      // Non-negative magnitude
	Liabilities decimal.Decimal `json:"liabilities" gorm:"type:DECIMAL(20,8)" example:"500"` // Non-negative magnitude
}

// NetWorth returns assets minus liabilities.
func (s NetWorthSnapshot) NetWorth() decimal.Decimal {
	return s.Assets.Sub(s.Liabilities)
}

// BeforeSave normalizes the date to UTC and verifies the magnitudes.
func (s *NetWorthSnapshot) BeforeSave(_ *gorm.DB) error {
	if s.Date.IsZero() {
		s.Date = time.Now().In(time.UTC)
	} else {
		s.Date = s.Date.In(time.UTC)
	}

	if s.Assets.IsNegative() || s.Liabilities.IsNegative() {
		return ErrSnapshotMagnitudeNegative
	}

	return nil
}

// AfterFind normalizes the date to UTC, see DefaultModel.AfterFind.
func (s *NetWorthSnapshot) AfterFind(tx *gorm.DB) (err error) {
	err = s.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	s.Date = s.Date.In(time.UTC)
	return
}
