package report

import (
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DailySpend is one day of a cumulative spending series.
type DailySpend struct {
	Day        int             `json:"day"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// DailySpending returns the cumulative expense magnitudes for each day of
// the month. For the running month the series ends at the current day, for
// past months it covers the whole month. Comparing the series of two
// months over the same day range gives the "this month so far vs. last
// month" trend.
func (r *Reporter) DailySpending(month types.Month) ([]DailySpend, error) {
	transactions, err := r.periodTransactions(month.Period())
	if err != nil {
		return nil, err
	}

	days := currentDayOf(month, time.Now().In(time.UTC))

	perDay := make([]decimal.Decimal, days+1)
	for i := range perDay {
		perDay[i] = decimal.Zero
	}

	for _, transaction := range transactions {
		if !transaction.Amount.IsNegative() {
			continue
		}
		day := transaction.Date.Day()
		if day > days {
			continue
		}
		perDay[day] = perDay[day].Add(transaction.Amount.Abs())
	}

	series := make([]DailySpend, 0, days)
	cumulative := decimal.Zero
	for day := 1; day <= days; day++ {
		cumulative = cumulative.Add(perDay[day])
		series = append(series, DailySpend{
			Day:        day,
			Cumulative: cumulative,
		})
	}

	return series, nil
}
