package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httperror"
	"github.com/pocketledger/backend/internal/types"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func (co *Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.GET("/net-worth", co.GetNetWorth)
	r.GET("/cash-flow", co.GetCashFlow)
	r.GET("/categories", co.GetCategoryBreakdown)
	r.GET("/categories/compare", co.GetCategoryComparison)
	r.GET("/daily", co.GetDailySpending)
	r.GET("/recent", co.GetRecentTransactions)
}

// monthPeriod resolves an optional YYYY-MM query value to a reporting
// period, defaulting to the month of now.
func monthPeriod(value string, now time.Time) (types.Period, error) {
	if value == "" {
		return types.MonthOf(now).Period(), nil
	}

	month, err := types.ParseMonth(value)
	if err != nil {
		return types.Period{}, err
	}
	return month.Period(), nil
}

func (co *Controller) GetNetWorth(c *gin.Context) {
	netWorth, err := co.reporter().NetWorth()
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, netWorth)
}

func (co *Controller) GetCashFlow(c *gin.Context) {
	period, err := monthPeriod(c.Query("month"), time.Now().In(time.UTC))
	if err != nil {
		httperror.InvalidMonth(c)
		return
	}

	flow, err := co.reporter().CashFlow(period)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, flow)
}

func (co *Controller) GetCategoryBreakdown(c *gin.Context) {
	period, err := monthPeriod(c.Query("month"), time.Now().In(time.UTC))
	if err != nil {
		httperror.InvalidMonth(c)
		return
	}

	breakdown, err := co.reporter().CategoryBreakdown(period)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// GetCategoryComparison compares the per-category spending of two months
// given as ?a=YYYY-MM&b=YYYY-MM. b defaults to the month before a, a
// defaults to the current month.
func (co *Controller) GetCategoryComparison(c *gin.Context) {
	now := time.Now().In(time.UTC)

	monthA := types.MonthOf(now)
	if value := c.Query("a"); value != "" {
		var err error
		monthA, err = types.ParseMonth(value)
		if err != nil {
			httperror.InvalidMonth(c)
			return
		}
	}

	monthB := monthA.AddDate(0, -1)
	if value := c.Query("b"); value != "" {
		var err error
		monthB, err = types.ParseMonth(value)
		if err != nil {
			httperror.InvalidMonth(c)
			return
		}
	}

	comparison, err := co.reporter().ComparePeriods(monthA.Period(), monthB.Period())
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

func (co *Controller) GetDailySpending(c *gin.Context) {
	month := types.MonthOf(time.Now().In(time.UTC))
	if value := c.Query("month"); value != "" {
		var err error
		month, err = types.ParseMonth(value)
		if err != nil {
			httperror.InvalidMonth(c)
			return
		}
	}

	series, err := co.reporter().DailySpending(month)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

func (co *Controller) GetRecentTransactions(c *gin.Context) {
	limit := 20
	var filter struct {
		Limit int `form:"limit"`
	}
	if err := c.Bind(&filter); err != nil {
		httperror.InvalidQueryString(c)
		return
	}
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	transactions, err := co.reporter().RecentTransactions(limit)
	if err != nil {
		httperror.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
