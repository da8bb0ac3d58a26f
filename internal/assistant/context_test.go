package assistant_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pocketledger/backend/internal/assistant"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyData() assistant.ContextData {
	return assistant.ContextData{
		Now: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func populatedData() assistant.ContextData {
	data := emptyData()

	data.Accounts = []models.Account{
		{
			Name:        "Everyday Checking",
			Institution: "Maple Trust Bank",
			Type:        models.AccountTypeChecking,
			Balance:     decimal.NewFromFloat(2735.17),
		},
	}
	data.NetWorth = report.NetWorth{
		Assets:      decimal.NewFromInt(3000),
		Liabilities: decimal.NewFromInt(500),
		NetWorth:    decimal.NewFromInt(2500),
		MonthChange: decimal.NewFromInt(300),
	}
	data.CashFlow = report.CashFlow{
		Income:   decimal.NewFromInt(3250),
		Expenses: decimal.NewFromFloat(1536.40),
		Net:      decimal.NewFromFloat(1713.60),
	}
	data.TopCategories = []report.CategorySpend{
		{Category: models.CategoryGroceries, Total: decimal.NewFromInt(130), Percentage: 72.2},
	}
	data.Budgets = report.BudgetSummary{
		Budgets: []report.BudgetStatus{
			{
				BudgetCategory: models.BudgetCategory{
					Name:         "Groceries",
					MonthlyLimit: decimal.NewFromInt(100),
				},
				Spent:      decimal.NewFromInt(130),
				Progress:   1.3,
				OverBudget: true,
			},
		},
	}
	data.Recent = []models.Transaction{
		{
			Date:     time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
			Merchant: "Corner Coffee Roasters",
			Amount:   decimal.NewFromFloat(-4.50),
			Category: models.CategoryDining,
		},
	}

	return data
}

// Every section keeps its header even when there is no data, with an
// explicit sentence saying so.
func TestBuildContextEmptySections(t *testing.T) {
	document := assistant.BuildContext(emptyData())

	for _, header := range []string{
		"## Accounts",
		"## Net worth",
		"## Cash flow (2026-08)",
		"## Top spending categories (2026-08)",
		"## Budgets",
		"## Recent transactions",
	} {
		assert.Contains(t, document, header, "section header missing from empty document")
	}

	assert.Contains(t, document, "There are no visible accounts.")
	assert.Contains(t, document, "There is no net worth data yet.")
	assert.Contains(t, document, "There is no cash flow recorded this month.")
	assert.Contains(t, document, "There is no spending recorded this month.")
	assert.Contains(t, document, "There are no budgets configured.")
	assert.Contains(t, document, "There are no transactions yet.")
}

func TestBuildContextDate(t *testing.T) {
	document := assistant.BuildContext(emptyData())
	assert.Contains(t, document, "Today's date is 2026-08-28.")
}

func TestBuildContextPopulated(t *testing.T) {
	document := assistant.BuildContext(populatedData())

	assert.Contains(t, document, "Everyday Checking (Maple Trust Bank, checking): 2735.17")
	assert.Contains(t, document, "Assets: 3000.00, liabilities: 500.00, net worth: 2500.00.")
	assert.Contains(t, document, "Change since the previous snapshot: 300.00.")
	assert.Contains(t, document, "Income: 3250.00, expenses: 1536.40, net: 1713.60.")
	assert.Contains(t, document, "groceries: 130.00 (72.2%)")
	assert.Contains(t, document, "Groceries: spent 130.00 of 100.00 (130%) OVER BUDGET")
	assert.Contains(t, document, "2026-08-27 Corner Coffee Roasters -4.50 (dining)")

	assert.NotContains(t, document, "There are no visible accounts.")
	assert.NotContains(t, document, "There is no net worth data yet.")
	assert.NotContains(t, document, "There is no cash flow recorded this month.")
}

func TestFakeSessionSend(t *testing.T) {
	session := &assistant.FakeSession{Reply: "You spent 130.00 on groceries."}

	turns := []assistant.Turn{{Role: assistant.RoleUser, Content: "How much did I spend on groceries?"}}
	reply, err := session.Send(context.Background(), turns, "grounding document")

	require.Nil(t, err)
	assert.Equal(t, "You spent 130.00 on groceries.", reply)
	assert.Equal(t, "grounding document", session.Grounding)
	assert.Len(t, session.Turns, 1)
}

func TestUnconfiguredSession(t *testing.T) {
	session := assistant.UnconfiguredSession{}

	_, err := session.Send(context.Background(), nil, "grounding")
	assert.ErrorIs(t, err, assistant.ErrSessionUnconfigured)

	chunks, errs := session.Stream(context.Background(), nil, "grounding")
	for range chunks {
	}
	assert.ErrorIs(t, <-errs, assistant.ErrSessionUnconfigured)
}

func TestFakeSessionStream(t *testing.T) {
	session := &assistant.FakeSession{Reply: "Hello there"}

	chunks, errs := session.Stream(context.Background(), nil, "grounding")

	var parts []string
	for chunk := range chunks {
		parts = append(parts, chunk)
	}

	require.Nil(t, <-errs)
	assert.Greater(t, len(parts), 1, "streaming must produce more than one chunk")
	assert.Equal(t, "Hello there", strings.Join(parts, ""))
}
