// Package service implements the five user-facing journal operations.
// The chat front end (or the CLI) supplies a user identity plus
// arguments and forwards the replies; everything here is safe to run
// concurrently for the same user because idempotence lives in the
// store's uniqueness constraint, not in locks.
package service

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/bitjournal/bitunix"
	"github.com/rustyeddy/bitjournal/journal"
	"github.com/rustyeddy/bitjournal/pkg/id"
)

// PageSize is the fixed number of rows per journal view page.
const PageSize = 10

type Service struct {
	store  journal.Store
	client *bitunix.Client
}

func New(store journal.Store, client *bitunix.Client) *Service {
	return &Service{store: store, client: client}
}

// Register stores or replaces the user's Bitunix API key pair.
func (s *Service) Register(userID, apiKey, apiSecret string) error {
	if userID == "" {
		return errors.New("user identity is required")
	}
	if apiKey == "" || apiSecret == "" {
		return errors.New("both api key and api secret are required")
	}

	if err := s.store.UpsertCredential(userID, apiKey, apiSecret); err != nil {
		return errors.Wrap(err, "store credentials")
	}

	logrus.WithField("user", userID).Info("credentials registered")
	return nil
}

// Revoke deletes the user's stored keys. Revoking when nothing is
// stored succeeds; the journal rows are kept either way.
func (s *Service) Revoke(userID string) error {
	if err := s.store.DeleteCredential(userID); err != nil {
		return errors.Wrap(err, "delete credentials")
	}

	logrus.WithField("user", userID).Info("credentials revoked")
	return nil
}

// SyncResult reports one sync run: how many trades the exchange
// returned and how many were new to the journal.
type SyncResult struct {
	Fetched  int
	Inserted int
}

// Sync fetches recent fills from the exchange and merges them into the
// journal. Re-running over an overlapping range only costs the fetch;
// rows already journaled are skipped by the store.
func (s *Service) Sync(ctx context.Context, userID, symbol string, limit int) (SyncResult, error) {
	run := id.New()
	log := logrus.WithFields(logrus.Fields{"run": run, "user": userID})

	fetched, trades, err := s.client.FetchTrades(ctx, userID, bitunix.HistoryRequest{
		Symbol: symbol,
		Limit:  limit,
	})
	if err != nil {
		return SyncResult{}, errors.Wrap(err, "fetch trades")
	}

	inserted, err := s.store.InsertTrades(userID, trades)
	if err != nil {
		return SyncResult{}, errors.Wrap(err, "insert trades")
	}

	log.WithFields(logrus.Fields{
		"fetched":  fetched,
		"inserted": inserted,
	}).Info("journal sync complete")

	return SyncResult{Fetched: fetched, Inserted: inserted}, nil
}

// View returns one page of the user's journal covering the last `days`
// days, optionally restricted to a symbol. days and page are clamped to
// at least 1 rather than rejected.
func (s *Service) View(userID, symbol string, days, page int) (Page, error) {
	if days < 1 {
		days = 1
	}
	if page < 1 {
		page = 1
	}

	since := time.Now().AddDate(0, 0, -days).UnixMilli()
	trades, total, err := s.store.ListTrades(journal.TradeQuery{
		UserID:  userID,
		SinceMS: since,
		Symbol:  symbol,
		Limit:   PageSize,
		Offset:  (page - 1) * PageSize,
	})
	if err != nil {
		return Page{}, errors.Wrap(err, "list trades")
	}

	return Page{
		Trades: trades,
		Total:  total,
		Page:   page,
		Days:   days,
		Symbol: symbol,
	}, nil
}

// Annotate attaches a note to one journaled trade. Returns false when
// the user has no trade with that id.
func (s *Service) Annotate(userID, tradeID, note string) (bool, error) {
	ok, err := s.store.AddNote(userID, tradeID, note)
	if err != nil {
		return false, errors.Wrap(err, "save note")
	}
	if ok {
		logrus.WithFields(logrus.Fields{"user": userID, "trade": tradeID}).Info("note saved")
	}
	return ok, nil
}

// Export writes the user's entire journal as CSV and returns the row
// count.
func (s *Service) Export(w io.Writer, userID string) (int, error) {
	trades, _, err := s.store.ListTrades(journal.TradeQuery{UserID: userID})
	if err != nil {
		return 0, errors.Wrap(err, "list trades")
	}
	if err := journal.WriteCSV(w, trades); err != nil {
		return 0, errors.Wrap(err, "write csv")
	}
	return len(trades), nil
}
