package report_test

import (
	"time"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDailySpendingPastMonth() {
	// A past month covers all its days
	march := types.NewMonth(2025, 3)

	suite.createTransaction(time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), -10, models.CategoryShopping, nil)
	suite.createTransaction(time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC), -5, models.CategoryDining, nil)
	suite.createTransaction(time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC), -20, models.CategoryShopping, nil)

	// Income must not appear in the spending series
	suite.createTransaction(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), 3250, models.CategoryIncome, nil)

	series, err := suite.reporter.DailySpending(march)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), series, 31)

	assert.Equal(suite.T(), 1, series[0].Day)
	assert.True(suite.T(), series[0].Cumulative.IsZero())
	assert.True(suite.T(), series[1].Cumulative.Equal(decimal.NewFromInt(15)), "both day-two expenses must be summed")
	assert.True(suite.T(), series[28].Cumulative.Equal(decimal.NewFromInt(15)), "the series must carry the sum forward")
	assert.True(suite.T(), series[29].Cumulative.Equal(decimal.NewFromInt(35)))
	assert.True(suite.T(), series[30].Cumulative.Equal(decimal.NewFromInt(35)))
}

func (suite *TestSuiteStandard) TestDailySpendingCurrentMonthEndsToday() {
	now := time.Now().In(time.UTC)
	month := types.MonthOf(now)

	suite.createTransaction(time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC), -10, models.CategoryShopping, nil)

	series, err := suite.reporter.DailySpending(month)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), series, now.Day(), "the running month must end at the current day")
	assert.True(suite.T(), series[len(series)-1].Cumulative.Equal(decimal.NewFromInt(10)))
}

func (suite *TestSuiteStandard) TestDailySpendingEmpty() {
	series, err := suite.reporter.DailySpending(types.NewMonth(2025, 2))
	require.Nil(suite.T(), err)

	require.Len(suite.T(), series, 28)
	for _, point := range series {
		assert.True(suite.T(), point.Cumulative.IsZero())
	}
}
