package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionDefaults() {
	transaction := suite.createTestTransaction(models.Transaction{
		Merchant: "  Greenleaf Grocers ",
		Amount:   decimal.NewFromFloat(-94.35),
	})

	assert.Equal(suite.T(), "Greenleaf Grocers", transaction.Merchant)
	assert.Equal(suite.T(), models.CategoryOther, transaction.Category)
	assert.False(suite.T(), transaction.Date.IsZero(), "date was not defaulted")
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		suite.Assert().FailNow("loading timezone failed", err)
	}

	transaction := suite.createTestTransaction(models.Transaction{
		Merchant: "Luigi's Trattoria",
		Amount:   decimal.NewFromFloat(-47.80),
		Date:     time.Date(2026, 8, 12, 19, 30, 0, 0, berlin),
	})

	var dbTransaction models.Transaction
	err = models.DB.First(&dbTransaction, transaction.ID).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), time.UTC, dbTransaction.Date.Location())
	assert.True(suite.T(), dbTransaction.Date.Equal(transaction.Date))
}

func (suite *TestSuiteStandard) TestTransactionNilAccountID() {
	nilID := uuid.Nil
	transaction := suite.createTestTransaction(models.Transaction{
		Merchant:  "No account",
		Amount:    decimal.NewFromFloat(-1),
		AccountID: &nilID,
	})

	assert.Nil(suite.T(), transaction.AccountID, "pointer to the nil UUID must be normalized to nil")
}

func (suite *TestSuiteStandard) TestTransactionExternalIDUnique() {
	externalID := "ext-txn-1"

	_ = suite.createTestTransaction(models.Transaction{
		Merchant:   "First",
		Amount:     decimal.NewFromFloat(-1),
		ExternalID: &externalID,
	})

	err := models.DB.Create(&models.Transaction{
		Merchant:   "Second",
		Amount:     decimal.NewFromFloat(-2),
		ExternalID: &externalID,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrTransactionExternalIDNotUnique)
}

func (suite *TestSuiteStandard) TestTransactionCategoryValid() {
	assert.True(suite.T(), models.CategoryDining.Valid())
	assert.False(suite.T(), models.Category("snacks").Valid())
	assert.Len(suite.T(), models.Categories(), 16)
}

func (suite *TestSuiteStandard) TestBudgetCategoryNameUnique() {
	_ = suite.createTestBudgetCategory(models.BudgetCategory{
		Name:         "Eating out",
		MonthlyLimit: decimal.NewFromInt(250),
		Category:     models.CategoryDining,
	})

	err := models.DB.Create(&models.BudgetCategory{
		Name:     "Eating out",
		Category: models.CategoryDining,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrBudgetCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetCategoryNegativeLimit() {
	err := models.DB.Create(&models.BudgetCategory{
		Name:         "Negative",
		MonthlyLimit: decimal.NewFromInt(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrBudgetLimitNegative)
}

func (suite *TestSuiteStandard) TestSnapshotNetWorth() {
	snapshot := models.NetWorthSnapshot{
		Assets:      decimal.NewFromInt(3000),
		Liabilities: decimal.NewFromInt(500),
	}
	err := models.DB.Create(&snapshot).Error
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), snapshot.NetWorth().Equal(decimal.NewFromInt(2500)))
	assert.False(suite.T(), snapshot.Date.IsZero())
}

func (suite *TestSuiteStandard) TestSnapshotNegativeMagnitude() {
	err := models.DB.Create(&models.NetWorthSnapshot{
		Assets:      decimal.NewFromInt(-1),
		Liabilities: decimal.NewFromInt(0),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrSnapshotMagnitudeNegative)
}
