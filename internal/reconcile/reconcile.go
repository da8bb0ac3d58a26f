// Package reconcile merges externally fetched account and transaction data
// into the ledger database.
//
// Every upsert is keyed by the record's external ID, so a sync pass can be
// retried after any failure without creating duplicates. User edits to a
// transaction's category and note are never overwritten.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Syncer reconciles aggregator data into the ledger database.
//
// Syncer does not serialize concurrent syncs for the same credential,
// callers must not start a sync while another one is in flight.
type Syncer struct {
	db     *gorm.DB
	client provider.Client
	source models.Source
}

// New creates a Syncer.
func New(db *gorm.DB, client provider.Client, source models.Source) *Syncer {
	return &Syncer{
		db:     db,
		client: client,
		source: source,
	}
}

// SyncAccounts fetches the current balances for the credential and upserts
// them into the ledger. It returns the number of external accounts
// processed.
//
// Balances and sync timestamps are overwritten on every call. Name and
// institution are only written when the account is first created so that
// later upstream renames do not clobber what the user is used to seeing.
// An account hidden by a disconnect comes back when its external ID
// reappears under a new credential; accounts the user hid stay hidden.
func (s *Syncer) SyncAccounts(ctx context.Context, credential provider.Credential) (int, error) {
	external, err := s.client.Balances(ctx, credential.AccessToken)
	if err != nil {
		return 0, fmt.Errorf("fetching balances: %w", err)
	}

	now := time.Now().In(time.UTC)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range external {
			if record.ExternalID == "" {
				log.Warn().Str("name", record.Name).Msg("skipping account without external ID")
				continue
			}

			accountType := accountTypeFor(record.Type, record.Subtype)
			balance := storedBalance(accountType, record.Balances)

			var account models.Account
			err := tx.Where(&models.Account{ExternalID: &record.ExternalID}).First(&account).Error
			if err == nil {
				update := map[string]any{
					"balance":        balance,
					"last_synced_at": now,
					"item_id":        credential.ItemID,
				}
				// Disconnect clears the item ID, so an empty one marks
				// a disconnected account that is now re-linked
				if account.ItemID == "" {
					update["hidden"] = false
				}
				if err := tx.Model(&account).Updates(update).Error; err != nil {
					return err
				}
				continue
			}
			if !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			account = models.Account{
				Name:         record.Name,
				Institution:  record.OfficialName,
				Type:         accountType,
				Balance:      balance,
				ExternalID:   &record.ExternalID,
				ItemID:       credential.ItemID,
				LastSyncedAt: &now,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upserting accounts: %w", err)
	}

	log.Info().Int("accounts", len(external)).Msg("account sync completed")
	return len(external), nil
}

// storedBalance translates the aggregator's balance figures into the local
// sign convention: liabilities are always negative, regardless of the sign
// the aggregator reports. Asset accounts prefer the current balance and
// fall back to the available balance, defaulting to zero when both are
// absent.
func storedBalance(accountType models.AccountType, balances provider.Balances) decimal.Decimal {
	raw := decimal.Zero
	if balances.Current != nil {
		raw = *balances.Current
	} else if balances.Available != nil {
		raw = *balances.Available
	}

	if !accountType.IsAsset() {
		return raw.Abs().Neg()
	}

	return raw
}

// SyncTransactions pages through the aggregator's incremental sync starting
// at the given cursor (empty for a full sync). It returns the number of
// added and modified transactions processed and the cursor to store for the
// next incremental sync.
//
// Pages are fetched strictly sequentially and each page commits in its own
// transaction. A page fetch failure aborts the loop, previously committed
// pages stay committed; the retried sync is idempotent per record.
func (s *Syncer) SyncTransactions(ctx context.Context, credential provider.Credential, cursor string) (int, string, error) {
	var processed int

	for {
		// Cancellation is only checked between pages
		if err := ctx.Err(); err != nil {
			return processed, cursor, err
		}

		page, err := s.client.TransactionsPage(ctx, credential.AccessToken, cursor)
		if err != nil {
			return processed, cursor, fmt.Errorf("fetching transactions page: %w", err)
		}

		var added, removed, skipped int
		err = s.db.Transaction(func(tx *gorm.DB) error {
			for _, record := range page.Removed {
				deleted, err := s.removeOne(tx, record)
				if err != nil {
					return err
				}
				if deleted {
					removed++
				}
			}

			// Added and modified records share one upsert path, both
			// need "create if absent, update mutable fields if present"
			for _, record := range append(page.Added, page.Modified...) {
				if record.ExternalID == "" {
					log.Warn().Str("name", record.Name).Msg("skipping transaction without external ID")
					skipped++
					continue
				}

				if err := s.upsertOne(tx, record); err != nil {
					return err
				}
				added++
			}

			return nil
		})
		if err != nil {
			return processed, cursor, fmt.Errorf("upserting transactions: %w", err)
		}

		processed += added
		log.Info().
			Int("added", added).
			Int("removed", removed).
			Int("skipped", skipped).
			Bool("has_more", page.HasMore).
			Msg("transaction page committed")

		cursor = page.NextCursor
		if !page.HasMore {
			break
		}
	}

	return processed, cursor, nil
}

// upsertOne merges one external transaction record into the ledger.
//
// Amount, merchant, pending flag and date are overwritten on updates.
// Category and note are only set on creation: once the user has edited
// them, a later sync never reverts the edit.
func (s *Syncer) upsertOne(tx *gorm.DB, record provider.ExternalTransaction) error {
	// The aggregator reports debits as positive amounts, locally money
	// out is negative
	amount := record.Amount.Neg()

	merchant := record.MerchantName
	if merchant == "" {
		merchant = record.Name
	}

	date, err := time.ParseInLocation("2006-01-02", record.Date, time.UTC)
	if err != nil {
		// A single unparsable date must not fail the whole sync
		log.Warn().Str("external_id", record.ExternalID).Str("date", record.Date).Msg("unparsable transaction date, using now")
		date = time.Now().In(time.UTC)
	}

	var existing models.Transaction
	err = tx.Where(&models.Transaction{ExternalID: &record.ExternalID}).First(&existing).Error
	if err == nil {
		update := map[string]any{
			"amount":   amount,
			"merchant": merchant,
			"pending":  record.Pending,
			"date":     date,
		}
		return tx.Model(&existing).Updates(update).Error
	}
	if !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	transaction := models.Transaction{
		Date:       date,
		Merchant:   merchant,
		Amount:     amount,
		Category:   categoryForLabel(record.CategoryLabel),
		Pending:    record.Pending,
		ExternalID: &record.ExternalID,
		AccountID:  s.accountID(tx, record.ExternalAccountID),
	}
	return tx.Create(&transaction).Error
}

// accountID resolves the local account for an external account ID. A
// transaction without a matching account is tolerated and stays unassigned.
func (s *Syncer) accountID(tx *gorm.DB, externalAccountID string) *uuid.UUID {
	if externalAccountID == "" {
		return nil
	}

	var account models.Account
	err := tx.Where(&models.Account{ExternalID: &externalAccountID}).First(&account).Error
	if err != nil {
		return nil
	}

	return &account.ID
}

// removeOne deletes the local transaction for a removed external record.
// A second removal report for the same ID is a no-op.
func (s *Syncer) removeOne(tx *gorm.DB, record provider.RemovedTransaction) (bool, error) {
	if record.ExternalID == "" {
		return false, nil
	}

	result := tx.Unscoped().Where("external_id = ?", record.ExternalID).Delete(&models.Transaction{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// TakeNetWorthSnapshot rolls the currently visible, non-hidden accounts up
// into a new snapshot. Every call appends, same-day snapshots are not
// deduplicated; the sync orchestration decides the cadence.
func (s *Syncer) TakeNetWorthSnapshot(ctx context.Context) (models.NetWorthSnapshot, error) {
	var accounts []models.Account
	err := s.source.Accounts(s.db.WithContext(ctx)).Where("hidden = ?", false).Find(&accounts).Error
	if err != nil {
		return models.NetWorthSnapshot{}, err
	}

	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, account := range accounts {
		if account.Type.IsAsset() {
			assets = assets.Add(account.Balance)
		} else {
			liabilities = liabilities.Add(account.Balance.Abs())
		}
	}

	snapshot := models.NetWorthSnapshot{
		Date:        time.Now().In(time.UTC),
		Assets:      assets,
		Liabilities: liabilities,
	}
	if err := s.db.WithContext(ctx).Create(&snapshot).Error; err != nil {
		return models.NetWorthSnapshot{}, err
	}

	log.Info().
		Str("assets", assets.String()).
		Str("liabilities", liabilities.String()).
		Msg("net worth snapshot created")

	return snapshot, nil
}

// Result summarizes a full sync pass.
type Result struct {
	Accounts     int                     `json:"accounts"`
	Transactions int                     `json:"transactions"`
	NextCursor   string                  `json:"nextCursor"`
	Snapshot     models.NetWorthSnapshot `json:"snapshot"`
}

// FullSync runs a complete pass: accounts, then transactions, then a net
// worth snapshot. The phases commit separately; a failure between phases
// is repaired by the next idempotent pass.
func (s *Syncer) FullSync(ctx context.Context, credential provider.Credential, cursor string) (Result, error) {
	accounts, err := s.SyncAccounts(ctx, credential)
	if err != nil {
		return Result{}, err
	}

	transactions, nextCursor, err := s.SyncTransactions(ctx, credential, cursor)
	if err != nil {
		return Result{}, err
	}

	snapshot, err := s.TakeNetWorthSnapshot(ctx)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Accounts:     accounts,
		Transactions: transactions,
		NextCursor:   nextCursor,
		Snapshot:     snapshot,
	}, nil
}

// Disconnect hides all accounts of an item and clears their credential
// reference. Records are never physically removed, so reconnecting the
// same bank later is idempotent.
func (s *Syncer) Disconnect(ctx context.Context, itemID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("item_id = ?", itemID).
		Updates(map[string]any{"hidden": true, "item_id": ""}).Error
}
