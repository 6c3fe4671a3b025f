package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/bitjournal/bitunix"
	"github.com/rustyeddy/bitjournal/journal"
)

// Page is one window of a user's journal plus the size of the full
// filtered set.
type Page struct {
	Trades []journal.Trade
	Total  int
	Page   int
	Days   int
	Symbol string
}

// Pages returns the number of pages the filtered set spans.
func (p Page) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + PageSize - 1) / PageSize
}

// Totals sums realized P/L and fees over the rows on this page.
// Decimal arithmetic keeps the displayed sums free of float drift.
func (p Page) Totals() (pnl, fees decimal.Decimal) {
	for _, t := range p.Trades {
		pnl = pnl.Add(decimal.NewFromFloat(t.RealizedPNL))
		fees = fees.Add(decimal.NewFromFloat(t.Fee))
	}
	return pnl, fees
}

// FormatSync renders a sync outcome for the user. Zero new rows is a
// neutral "already up to date", not an error.
func FormatSync(r SyncResult) string {
	if r.Inserted == 0 {
		return fmt.Sprintf("No new trades — journal already up to date (%d fetched).", r.Fetched)
	}
	return fmt.Sprintf("Journal updated: %d trades fetched, %d new.", r.Fetched, r.Inserted)
}

// FormatPage renders one journal page as plain text the dispatcher can
// forward verbatim.
func FormatPage(p Page) string {
	var b strings.Builder

	scope := fmt.Sprintf("last %dd", p.Days)
	if p.Symbol != "" {
		scope += " " + p.Symbol
	}

	if p.Total == 0 {
		fmt.Fprintf(&b, "No trades in the journal (%s).", scope)
		return b.String()
	}

	fmt.Fprintf(&b, "Journal (%s) — page %d/%d, %d trades\n", scope, p.Page, p.Pages(), p.Total)
	for _, t := range p.Trades {
		ts := time.UnixMilli(t.TimestampMS).UTC().Format("2006-01-02 15:04")
		fmt.Fprintf(&b, "%s  %-12s %-5s %v @ %v  pnl %v  fee %v", ts, t.Symbol, t.Side, t.Qty, t.Price, t.RealizedPNL, t.Fee)
		if t.Note != "" {
			fmt.Fprintf(&b, "  // %s", t.Note)
		}
		fmt.Fprintf(&b, "  [%s]\n", t.TradeID)
	}

	pnl, fees := p.Totals()
	fmt.Fprintf(&b, "Page totals: pnl %s, fees %s", pnl.String(), fees.String())
	return b.String()
}

// UserMessage turns any propagated failure into a user-facing reply.
// Every operation's failure path ends here; nothing leaks credentials
// or crashes the caller.
func UserMessage(err error) string {
	var (
		transport *bitunix.TransportError
		malformed *bitunix.MalformedResponse
		shape     *bitunix.UnexpectedShape
		exchange  *bitunix.ExchangeError
	)

	switch {
	case errors.Is(err, bitunix.ErrUnregistered):
		return "You are not registered. Link your Bitunix API keys with the register command first (read-only keys recommended)."
	case errors.As(err, &exchange):
		return fmt.Sprintf("Bitunix rejected the request (code %s): %s", exchange.Code, exchange.Message)
	case errors.As(err, &transport):
		return "Could not reach Bitunix. Please try again in a moment."
	case errors.As(err, &malformed), errors.As(err, &shape):
		return "Bitunix returned an unexpected response. Please try again in a moment."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
