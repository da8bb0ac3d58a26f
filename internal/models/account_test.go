package models_test

import (
	"strings"

	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	name := "\t Everyday Checking   "
	institution := " Maple Trust Bank    "

	account := suite.createTestAccount(models.Account{
		Name:        name,
		Institution: institution,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), account.Name)
	assert.Equal(suite.T(), strings.TrimSpace(institution), account.Institution)
}

func (suite *TestSuiteStandard) TestAccountTypeDefault() {
	account := suite.createTestAccount(models.Account{Name: "No type set"})

	assert.Equal(suite.T(), models.AccountTypeOther, account.Type)
}

func (suite *TestSuiteStandard) TestAccountTypeIsAsset() {
	tests := []struct {
		accountType models.AccountType
		isAsset     bool
	}{
		{models.AccountTypeChecking, true},
		{models.AccountTypeSavings, true},
		{models.AccountTypeInvestment, true},
		{models.AccountTypeOther, true},
		{models.AccountTypeCreditCard, false},
		{models.AccountTypeLoan, false},
		{models.AccountTypeMortgage, false},
	}

	for _, tt := range tests {
		assert.Equal(suite.T(), tt.isAsset, tt.accountType.IsAsset(), "IsAsset is wrong for %s", tt.accountType)
	}
}

func (suite *TestSuiteStandard) TestAccountExternalIDUnique() {
	externalID := "ext-acct-1"

	_ = suite.createTestAccount(models.Account{
		Name:       "First",
		ExternalID: &externalID,
	})

	err := models.DB.Create(&models.Account{
		Name:       "Second",
		ExternalID: &externalID,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAccountExternalIDNotUnique)
}

func (suite *TestSuiteStandard) TestAccountExternalIDNilNotUnique() {
	// Demo accounts have no external ID, any number of them may coexist
	_ = suite.createTestAccount(models.Account{Name: "First demo"})
	_ = suite.createTestAccount(models.Account{Name: "Second demo"})
}

func (suite *TestSuiteStandard) TestAccountNotFound() {
	err := models.DB.First(&models.Account{}, "name = ?", "does not exist").Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "account", "error message does not name the resource")
}

func (suite *TestSuiteStandard) TestAccountTransactions() {
	account := suite.createTestAccount(models.Account{Name: "With transactions"})

	_ = suite.createTestTransaction(models.Transaction{
		Merchant:  "Corner Coffee Roasters",
		Amount:    decimal.NewFromFloat(-4.50),
		AccountID: &account.ID,
	})
	_ = suite.createTestTransaction(models.Transaction{
		Merchant: "Unassigned",
		Amount:   decimal.NewFromFloat(-10),
	})

	assert.Len(suite.T(), account.Transactions(models.DB), 1)
}
