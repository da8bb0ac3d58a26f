package report_test

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryBreakdown() {
	suite.createTransaction(day(3), -80, models.CategoryGroceries, nil)
	suite.createTransaction(day(9), -50, models.CategoryGroceries, nil)
	suite.createTransaction(day(12), -50, models.CategoryDining, nil)

	// Income must not show up in the breakdown
	suite.createTransaction(day(1), 3250, models.CategoryIncome, nil)

	breakdown, err := suite.reporter.CategoryBreakdown(august())
	require.Nil(suite.T(), err)

	require.Len(suite.T(), breakdown, 2)

	assert.Equal(suite.T(), models.CategoryGroceries, breakdown[0].Category)
	assert.True(suite.T(), breakdown[0].Total.Equal(decimal.NewFromInt(130)))
	assert.InDelta(suite.T(), 72.2, breakdown[0].Percentage, 0.1)

	assert.Equal(suite.T(), models.CategoryDining, breakdown[1].Category)
	assert.True(suite.T(), breakdown[1].Total.Equal(decimal.NewFromInt(50)))
	assert.InDelta(suite.T(), 27.8, breakdown[1].Percentage, 0.1)
}

func (suite *TestSuiteStandard) TestCategoryBreakdownDeterministicTies() {
	suite.createTransaction(day(3), -50, models.CategoryShopping, nil)
	suite.createTransaction(day(4), -50, models.CategoryDining, nil)

	breakdown, err := suite.reporter.CategoryBreakdown(august())
	require.Nil(suite.T(), err)

	require.Len(suite.T(), breakdown, 2)
	assert.Equal(suite.T(), models.CategoryDining, breakdown[0].Category, "equal totals must be ordered by category name")
	assert.Equal(suite.T(), models.CategoryShopping, breakdown[1].Category)
}

func (suite *TestSuiteStandard) TestCategoryBreakdownEmpty() {
	breakdown, err := suite.reporter.CategoryBreakdown(august())
	require.Nil(suite.T(), err)

	assert.Empty(suite.T(), breakdown)
}

func (suite *TestSuiteStandard) TestComparePeriods() {
	july := types.NewMonth(2026, 7).Period()

	suite.createTransaction(day(3), -130, models.CategoryGroceries, nil)
	suite.createTransaction(day(3).AddDate(0, -1, 0), -100, models.CategoryGroceries, nil)
	suite.createTransaction(day(5).AddDate(0, -1, 0), -40, models.CategoryTravel, nil)

	comparison, err := suite.reporter.ComparePeriods(august(), july)
	require.Nil(suite.T(), err)

	// Union of both category sets
	require.Len(suite.T(), comparison, 2)

	assert.Equal(suite.T(), models.CategoryGroceries, comparison[0].Category)
	assert.True(suite.T(), comparison[0].TotalA.Equal(decimal.NewFromInt(130)))
	assert.True(suite.T(), comparison[0].TotalB.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), comparison[0].Difference.Equal(decimal.NewFromInt(30)))

	assert.Equal(suite.T(), models.CategoryTravel, comparison[1].Category)
	assert.True(suite.T(), comparison[1].TotalA.IsZero(), "a category absent in the first period must report zero")
	assert.True(suite.T(), comparison[1].TotalB.Equal(decimal.NewFromInt(40)))
	assert.True(suite.T(), comparison[1].Difference.Equal(decimal.NewFromInt(-40)))
}
