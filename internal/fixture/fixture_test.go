package fixture_test

import (
	"log"
	"testing"

	"github.com/pocketledger/backend/internal/fixture"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) {
	err := models.Connect(test.TmpFile(t))
	if err != nil {
		log.Fatalf("Database connection failed with: %#v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := models.DB.DB()
		sqlDB.Close()
	})
}

func TestSeed(t *testing.T) {
	connect(t)

	require.Nil(t, fixture.Seed(models.DB))

	var accounts []models.Account
	require.Nil(t, models.DB.Find(&accounts).Error)
	assert.NotEmpty(t, accounts)
	for _, account := range accounts {
		assert.Nil(t, account.ExternalID, "demo accounts must not carry an external ID")
	}

	var transactionCount, budgetCount int64
	models.DB.Model(&models.Transaction{}).Count(&transactionCount)
	models.DB.Model(&models.BudgetCategory{}).Count(&budgetCount)
	assert.NotZero(t, transactionCount)
	assert.NotZero(t, budgetCount)

	var externalTransactions int64
	models.DB.Model(&models.Transaction{}).Where("external_id IS NOT NULL").Count(&externalTransactions)
	assert.Zero(t, externalTransactions, "demo transactions must not carry an external ID")
}

func TestSeedIdempotent(t *testing.T) {
	connect(t)

	require.Nil(t, fixture.Seed(models.DB))

	var before int64
	models.DB.Model(&models.Transaction{}).Count(&before)

	require.Nil(t, fixture.Seed(models.DB))

	var after int64
	models.DB.Model(&models.Transaction{}).Count(&after)
	assert.Equal(t, before, after, "seeding twice must not duplicate data")
}

func TestSeedVisibleInDemoSource(t *testing.T) {
	connect(t)

	require.Nil(t, fixture.Seed(models.DB))

	var accounts []models.Account
	require.Nil(t, models.SourceDemo.Accounts(models.DB).Find(&accounts).Error)
	assert.NotEmpty(t, accounts, "seeded data must be visible in the demo source view")
}
