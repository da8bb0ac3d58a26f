package models

import (
	"gorm.io/gorm"
)

// Source selects which of the two coexisting record subsets is visible on
// read paths: demo records (no external ID) or live records (synced from
// the aggregator, external ID set).
//
// Toggling the source never deletes either subset.
type Source string

const (
	SourceDemo Source = "demo"
	SourceLive Source = "live"
)

// Valid reports whether s is a known data source.
func (s Source) Valid() bool {
	return s == SourceDemo || s == SourceLive
}

// Accounts returns a query for the accounts visible in this source view.
//
// In live mode with no live accounts at all, the filter falls back to the
// unfiltered set so that a fresh install shows the demo data until the
// first bank connection. Demo mode has no such fallback.
func (s Source) Accounts(db *gorm.DB) *gorm.DB {
	return s.scope(db.Model(&Account{}), &Account{})
}

// Transactions returns a query for the transactions visible in this source view.
func (s Source) Transactions(db *gorm.DB) *gorm.DB {
	return s.scope(db.Model(&Transaction{}), &Transaction{})
}

func (s Source) scope(q *gorm.DB, model any) *gorm.DB {
	if s == SourceDemo {
		return q.Where("external_id IS NULL")
	}

	var live int64
	q.Session(&gorm.Session{NewDB: true}).Model(model).Where("external_id IS NOT NULL").Count(&live)
	if live == 0 {
		return q
	}

	return q.Where("external_id IS NOT NULL")
}
