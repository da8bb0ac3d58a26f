package report_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createBudget(name string, limit float64, category models.Category) models.BudgetCategory {
	budget := models.BudgetCategory{
		Name:         name,
		MonthlyLimit: decimal.NewFromFloat(limit),
		Category:     category,
	}
	require.Nil(suite.T(), models.DB.Create(&budget).Error)
	return budget
}

func (suite *TestSuiteStandard) TestBudgetProgress() {
	suite.createBudget("Eating out", 250, models.CategoryDining)
	suite.createBudget("Groceries", 100, models.CategoryGroceries)

	suite.createTransaction(day(3), -120, models.CategoryDining, nil)
	suite.createTransaction(day(9), -130, models.CategoryGroceries, nil)

	summary, err := suite.reporter.BudgetProgress(august())
	require.Nil(suite.T(), err)

	require.Len(suite.T(), summary.Budgets, 2)

	dining := summary.Budgets[0]
	assert.Equal(suite.T(), "Eating out", dining.Name)
	assert.True(suite.T(), dining.Spent.Equal(decimal.NewFromInt(120)))
	assert.InDelta(suite.T(), 0.48, dining.Progress, 0.001)
	assert.False(suite.T(), dining.OverBudget)

	groceries := summary.Budgets[1]
	assert.True(suite.T(), groceries.Spent.Equal(decimal.NewFromInt(130)))
	assert.InDelta(suite.T(), 1.3, groceries.Progress, 0.001)
	assert.True(suite.T(), groceries.OverBudget)

	assert.True(suite.T(), summary.TotalBudgeted.Equal(decimal.NewFromInt(350)))
	assert.True(suite.T(), summary.TotalSpent.Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), summary.Remaining.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestBudgetProgressZeroLimit() {
	suite.createBudget("Zero limit", 0, models.CategoryShopping)
	suite.createTransaction(day(3), -50, models.CategoryShopping, nil)

	summary, err := suite.reporter.BudgetProgress(august())
	require.Nil(suite.T(), err)

	require.Len(suite.T(), summary.Budgets, 1)
	assert.True(suite.T(), summary.Budgets[0].Spent.Equal(decimal.NewFromInt(50)))
	assert.Zero(suite.T(), summary.Budgets[0].Progress, "a zero limit must report progress zero, not divide")
	assert.False(suite.T(), summary.Budgets[0].OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetProgressExactLimitNotOver() {
	suite.createBudget("Exact", 100, models.CategoryDining)
	suite.createTransaction(day(3), -100, models.CategoryDining, nil)

	summary, err := suite.reporter.BudgetProgress(august())
	require.Nil(suite.T(), err)

	require.Len(suite.T(), summary.Budgets, 1)
	assert.False(suite.T(), summary.Budgets[0].OverBudget, "spending exactly the limit is not over budget")
}

func (suite *TestSuiteStandard) TestBudgetProgressSpentNeverStored() {
	suite.createBudget("Eating out", 250, models.CategoryDining)
	suite.createTransaction(day(3), -100, models.CategoryDining, nil)

	summary, err := suite.reporter.BudgetProgress(august())
	require.Nil(suite.T(), err)
	assert.True(suite.T(), summary.Budgets[0].Spent.Equal(decimal.NewFromInt(100)))

	// A later transaction changes the computed value on the next read
	suite.createTransaction(day(4), -50, models.CategoryDining, nil)

	summary, err = suite.reporter.BudgetProgress(august())
	require.Nil(suite.T(), err)
	assert.True(suite.T(), summary.Budgets[0].Spent.Equal(decimal.NewFromInt(150)))
}
