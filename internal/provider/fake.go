package provider

import (
	"context"
	"fmt"
)

// Fake is a deterministic in-memory Client for tests and local
// development. Pages are served in order, with cursors generated from the
// page index.
type Fake struct {
	LinkToken  string
	Credential Credential
	Accounts   []ExternalAccount
	Pages      []TransactionsPage

	// Err is returned by every operation when set.
	Err error

	// FailAtPage makes TransactionsPage fail when serving the page with
	// this index. Negative values disable the failure.
	FailAtPage int

	// BalanceCalls and PageCalls count the requests made.
	BalanceCalls int
	PageCalls    int
}

var _ Client = (*Fake)(nil)

// NewFake returns a Fake with failures disabled.
func NewFake() *Fake {
	return &Fake{
		LinkToken:  "link-session-fake",
		Credential: Credential{AccessToken: "access-fake", ItemID: "item-fake"},
		FailAtPage: -1,
	}
}

// CreateLinkSession implements Client.
func (f *Fake) CreateLinkSession(_ context.Context) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.LinkToken, nil
}

// ExchangePublicToken implements Client.
func (f *Fake) ExchangePublicToken(_ context.Context, _ string) (Credential, error) {
	if f.Err != nil {
		return Credential{}, f.Err
	}
	return f.Credential, nil
}

// Balances implements Client.
func (f *Fake) Balances(_ context.Context, _ string) ([]ExternalAccount, error) {
	f.BalanceCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Accounts, nil
}

// TransactionsPage implements Client.
func (f *Fake) TransactionsPage(_ context.Context, _ string, cursor string) (TransactionsPage, error) {
	f.PageCalls++
	if f.Err != nil {
		return TransactionsPage{}, f.Err
	}

	index := 0
	if cursor != "" {
		if _, err := fmt.Sscanf(cursor, "cursor-%d", &index); err != nil {
			return TransactionsPage{}, fmt.Errorf("%w: unknown cursor %q", ErrUpstream, cursor)
		}
	}

	if index == f.FailAtPage {
		return TransactionsPage{}, fmt.Errorf("%w: page fetch failed", ErrUpstream)
	}

	if index >= len(f.Pages) {
		return TransactionsPage{NextCursor: cursor, HasMore: false}, nil
	}

	page := f.Pages[index]
	page.NextCursor = fmt.Sprintf("cursor-%d", index+1)
	page.HasMore = index+1 < len(f.Pages)
	return page, nil
}
