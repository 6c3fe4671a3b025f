package journal

import (
	"database/sql"
)

// TradeQuery selects a window of a user's journal.
type TradeQuery struct {
	UserID  string
	SinceMS int64  // inclusive lower bound on timestamp_ms
	Symbol  string // empty means all symbols
	Limit   int    // <= 0 means no limit
	Offset  int
}

const tradeColumns = `id, user_id, trade_id, symbol, timestamp_ms, side, qty, price, realized_pnl, fee, note, raw_json`

// ListTrades returns one page of matching trades plus the total count of
// the full filtered set. Ordering is newest first; ties on timestamp_ms
// break on trade_id descending so pagination stays deterministic.
func (j *SQLite) ListTrades(q TradeQuery) ([]Trade, int, error) {
	where := `user_id = ? AND timestamp_ms >= ?`
	args := []any{q.UserID, q.SinceMS}
	if q.Symbol != "" {
		where += ` AND symbol = ?`
		args = append(args, q.Symbol)
	}

	var total int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM trades WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE `+where+`
		ORDER BY timestamp_ms DESC, trade_id DESC
		LIMIT ? OFFSET ?`,
		append(args, limit, q.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetTrade returns a single trade by (user, trade id), or nil when no
// such row exists.
func (j *SQLite) GetTrade(userID, tradeID string) (*Trade, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE user_id = ? AND trade_id = ?`,
		userID, tradeID,
	)

	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		t    Trade
		note sql.NullString
		raw  sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.TradeID, &t.Symbol, &t.TimestampMS, &t.Side,
		&t.Qty, &t.Price, &t.RealizedPNL, &t.Fee, &note, &raw,
	)
	if err != nil {
		return Trade{}, err
	}
	t.Note = note.String
	t.RawJSON = raw.String
	return t, nil
}
