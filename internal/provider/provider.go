// Package provider implements the client for the third-party bank-data
// aggregator.
//
// The backend consumes the aggregator through the Client interface so that
// tests and the demo mode can substitute deterministic fixtures.
package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// Credential is the result of exchanging a public token: the long-lived
// access token and the item it belongs to.
type Credential struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// Balances carries the raw balance figures the aggregator reports for an
// account. Either value may be absent.
type Balances struct {
	Current   *decimal.Decimal `json:"current"`
	Available *decimal.Decimal `json:"available"`
}

// ExternalAccount is one account record as reported by the aggregator.
type ExternalAccount struct {
	ExternalID   string   `json:"account_id"`
	Name         string   `json:"name"`
	OfficialName string   `json:"official_name"`
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype"`
	Balances     Balances `json:"balances"`
}

// ExternalTransaction is one transaction record as reported by the
// aggregator. Amounts use the aggregator's sign convention: positive means
// a debit.
type ExternalTransaction struct {
	ExternalID        string          `json:"transaction_id"`
	ExternalAccountID string          `json:"account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"` // YYYY-MM-DD
	Name              string          `json:"name"`
	MerchantName      string          `json:"merchant_name"`
	Pending           bool            `json:"pending"`
	CategoryLabel     string          `json:"category"`
}

// RemovedTransaction identifies a transaction the aggregator reports as
// removed upstream.
type RemovedTransaction struct {
	ExternalID string `json:"transaction_id"`
}

// TransactionsPage is one page of the aggregator's incremental
// transactions sync.
type TransactionsPage struct {
	Added      []ExternalTransaction `json:"added"`
	Modified   []ExternalTransaction `json:"modified"`
	Removed    []RemovedTransaction  `json:"removed"`
	NextCursor string                `json:"next_cursor"`
	HasMore    bool                  `json:"has_more"`
}

// Client is the boundary to the bank-data aggregator.
type Client interface {
	// CreateLinkSession starts a new bank-linking session and returns the
	// session token the frontend hands to the link UI.
	CreateLinkSession(ctx context.Context) (string, error)

	// ExchangePublicToken exchanges the opaque public token produced by
	// the link UI for a long-lived access credential.
	ExchangePublicToken(ctx context.Context, publicToken string) (Credential, error)

	// Balances fetches the current balances for all accounts of the item.
	Balances(ctx context.Context, accessToken string) ([]ExternalAccount, error)

	// TransactionsPage fetches one page of the incremental transactions
	// sync. An empty cursor starts a full sync.
	TransactionsPage(ctx context.Context, accessToken, cursor string) (TransactionsPage, error)
}
