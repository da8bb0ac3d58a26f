package models_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createLiveAccount(name, externalID string) models.Account {
	return suite.createTestAccount(models.Account{
		Name:       name,
		ExternalID: &externalID,
	})
}

func (suite *TestSuiteStandard) TestSourceValid() {
	assert.True(suite.T(), models.SourceDemo.Valid())
	assert.True(suite.T(), models.SourceLive.Valid())
	assert.False(suite.T(), models.Source("sandbox").Valid())
}

func (suite *TestSuiteStandard) TestSourceDemoFiltersLive() {
	_ = suite.createTestAccount(models.Account{Name: "Demo account"})
	_ = suite.createLiveAccount("Live account", "ext-1")

	var accounts []models.Account
	err := models.SourceDemo.Accounts(models.DB).Find(&accounts).Error
	assert.Nil(suite.T(), err)

	assert.Len(suite.T(), accounts, 1)
	assert.Equal(suite.T(), "Demo account", accounts[0].Name)
}

func (suite *TestSuiteStandard) TestSourceLiveFiltersDemo() {
	_ = suite.createTestAccount(models.Account{Name: "Demo account"})
	_ = suite.createLiveAccount("Live account", "ext-1")

	var accounts []models.Account
	err := models.SourceLive.Accounts(models.DB).Find(&accounts).Error
	assert.Nil(suite.T(), err)

	assert.Len(suite.T(), accounts, 1)
	assert.Equal(suite.T(), "Live account", accounts[0].Name)
}

// Live mode without any live record falls back to the unfiltered set so a
// fresh install still shows data. Demo mode must not have this fallback.
func (suite *TestSuiteStandard) TestSourceLiveEmptyFallback() {
	_ = suite.createTestAccount(models.Account{Name: "Demo account"})

	var accounts []models.Account
	err := models.SourceLive.Accounts(models.DB).Find(&accounts).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), accounts, 1, "live mode with no live accounts must fall back to all accounts")
}

func (suite *TestSuiteStandard) TestSourceDemoEmptyNoFallback() {
	_ = suite.createLiveAccount("Live account", "ext-1")

	var accounts []models.Account
	err := models.SourceDemo.Accounts(models.DB).Find(&accounts).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), accounts, 0, "demo mode must never fall back to live accounts")
}

// The fallback is evaluated per collection: live transactions are filtered
// as soon as one live transaction exists, regardless of accounts.
func (suite *TestSuiteStandard) TestSourceFallbackPerCollection() {
	externalID := "ext-txn-1"
	_ = suite.createTestAccount(models.Account{Name: "Demo account"})
	_ = suite.createTestTransaction(models.Transaction{
		Merchant: "Demo merchant",
		Amount:   decimal.NewFromFloat(-5),
	})
	_ = suite.createTestTransaction(models.Transaction{
		Merchant:   "Live merchant",
		Amount:     decimal.NewFromFloat(-7),
		ExternalID: &externalID,
	})

	var accounts []models.Account
	err := models.SourceLive.Accounts(models.DB).Find(&accounts).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), accounts, 1, "accounts must fall back, there are no live accounts")

	var transactions []models.Transaction
	err = models.SourceLive.Transactions(models.DB).Find(&transactions).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), transactions, 1, "transactions must not fall back, a live transaction exists")
	assert.Equal(suite.T(), "Live merchant", transactions[0].Merchant)
}

func (suite *TestSuiteStandard) TestSourceToggleKeepsBothSubsets() {
	externalID := "ext-1"
	_ = suite.createTestAccount(models.Account{Name: "Demo account"})
	_ = suite.createLiveAccount("Live account", externalID)

	var demo, live, all []models.Account
	assert.Nil(suite.T(), models.SourceDemo.Accounts(models.DB).Find(&demo).Error)
	assert.Nil(suite.T(), models.SourceLive.Accounts(models.DB).Find(&live).Error)
	assert.Nil(suite.T(), models.DB.Find(&all).Error)

	assert.Len(suite.T(), demo, 1)
	assert.Len(suite.T(), live, 1)
	assert.Len(suite.T(), all, 2, "toggling the source must not delete either subset")
}
