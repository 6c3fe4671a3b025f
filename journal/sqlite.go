package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// UpsertCredential inserts or replaces the key pair for a user. The
// original created_at is preserved across re-registration.
func (j *SQLite) UpsertCredential(userID, apiKey, apiSecret string) error {
	now := time.Now().Unix()
	_, err := j.db.Exec(`
		INSERT INTO users (user_id, api_key, api_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			api_key=excluded.api_key,
			api_secret=excluded.api_secret,
			updated_at=excluded.updated_at`,
		userID, apiKey, apiSecret, now, now,
	)
	return err
}

// GetCredential returns the stored key pair, or nil when the user has
// never registered (or has revoked).
func (j *SQLite) GetCredential(userID string) (*Credential, error) {
	var c Credential

	row := j.db.QueryRow(`
		SELECT user_id, api_key, api_secret, created_at, updated_at
		FROM users
		WHERE user_id = ?`, userID)

	err := row.Scan(&c.UserID, &c.APIKey, &c.APISecret, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCredential removes the user's key pair. Deleting an absent row
// is not an error. Trades are kept; the journal outlives revocation.
func (j *SQLite) DeleteCredential(userID string) error {
	_, err := j.db.Exec(`DELETE FROM users WHERE user_id = ?`, userID)
	return err
}

// InsertTrades bulk-inserts normalized trades for a user. Rows that
// collide on (user_id, trade_id) are skipped, so re-running a sync over
// an overlapping range is safe. Returns the count of rows actually added.
func (j *SQLite) InsertTrades(userID string, trades []Trade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}

	tx, err := j.db.Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO trades
		(user_id, trade_id, symbol, timestamp_ms, side, qty, price, realized_pnl, fee, raw_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range trades {
		res, err := stmt.Exec(
			userID, t.TradeID, t.Symbol, t.TimestampMS, t.Side,
			t.Qty, t.Price, t.RealizedPNL, t.Fee, t.RawJSON,
		)
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// AddNote sets the note on the matching (user, trade id) row. Returns
// false when no such trade exists for that user.
func (j *SQLite) AddNote(userID, tradeID, note string) (bool, error) {
	res, err := j.db.Exec(`
		UPDATE trades SET note = ?
		WHERE user_id = ? AND trade_id = ?`,
		note, userID, tradeID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
