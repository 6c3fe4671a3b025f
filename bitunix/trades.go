package bitunix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rustyeddy/bitjournal/journal"
)

const tradeHistoryPath = "/api/v1/futures/trade/get_history_trades"

const (
	defaultFetchLimit = 50
	maxFetchLimit     = 100
)

// HistoryRequest selects a slice of a user's recent fills on the
// exchange. A zero Limit means the default page of 50; anything outside
// [1,100] is clamped rather than rejected.
type HistoryRequest struct {
	Symbol string
	Limit  int
	Skip   int
}

// FetchTrades pulls one page of trade history and normalizes it into
// journal records. The returned count equals len(trades).
func (c *Client) FetchTrades(ctx context.Context, userID string, req HistoryRequest) (int, []journal.Trade, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultFetchLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxFetchLimit {
		limit = maxFetchLimit
	}

	skip := req.Skip
	if skip < 0 {
		skip = 0
	}

	params := map[string]any{"limit": limit, "skip": skip}
	if req.Symbol != "" {
		params["symbol"] = req.Symbol
	}

	payload, err := c.Request(ctx, userID, http.MethodGet, tradeHistoryPath, params, nil)
	if err != nil {
		return 0, nil, err
	}

	trades := NormalizeTrades(payload)
	return len(trades), trades, nil
}

// NormalizeTrades converts the trade-history envelope into journal
// records. A missing or mis-shaped data.tradeList container yields an
// empty slice, entries that are not objects or lack a tradeId are
// dropped, and numeric fields fall back to zero instead of failing the
// batch. Input order is preserved.
func NormalizeTrades(payload map[string]any) []journal.Trade {
	var entries []any
	if data, ok := payload["data"].(map[string]any); ok {
		if list, ok := data["tradeList"].([]any); ok {
			entries = list
		}
	}

	trades := make([]journal.Trade, 0, len(entries))
	for _, e := range entries {
		item, ok := e.(map[string]any)
		if !ok {
			continue
		}
		tid, ok := item["tradeId"]
		if !ok || tid == nil {
			continue
		}

		raw, err := json.Marshal(item)
		if err != nil {
			// item came out of json.Unmarshal, so this should not happen
			raw = nil
		}

		trades = append(trades, journal.Trade{
			TradeID:     fmt.Sprint(tid),
			Symbol:      stringOr(item["symbol"], ""),
			TimestampMS: intOr(item["ctime"], 0),
			Side:        stringOr(item["side"], ""),
			Qty:         floatOr(item["qty"], 0),
			Price:       floatOr(item["price"], 0),
			RealizedPNL: floatOr(item["realizedPNL"], 0),
			Fee:         floatOr(item["fee"], 0),
			RawJSON:     string(raw),
		})
	}
	return trades
}

// floatOr is the tolerant numeric coercion used across normalization:
// unparseable, missing, or wrongly typed input yields the default rather
// than an error.
func floatOr(v any, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return def
}

func intOr(v any, def int64) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func stringOr(v any, def string) string {
	if v == nil {
		return def
	}
	return fmt.Sprint(v)
}
