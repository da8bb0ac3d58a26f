package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountExternalIDNotUnique     = errors.New("an account with this external ID already exists")
	ErrTransactionExternalIDNotUnique = errors.New("a transaction with this external ID already exists")
	ErrBudgetCategoryNameNotUnique    = errors.New("the budget category name must be unique")
	ErrBudgetLimitNegative            = errors.New("the monthly limit must not be negative")
	ErrSnapshotMagnitudeNegative      = errors.New("assets and liabilities must not be negative")
)
