package journal

const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	api_key TEXT NOT NULL,
	api_secret TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	trade_id TEXT NOT NULL,
	symbol TEXT,
	timestamp_ms INTEGER,
	side TEXT,
	qty REAL,
	price REAL,
	realized_pnl REAL,
	fee REAL,
	note TEXT,
	raw_json TEXT,
	UNIQUE(user_id, trade_id)
);

CREATE INDEX IF NOT EXISTS idx_trades_user_time ON trades(user_id, timestamp_ms);
`
