package journal

// Credential is one user's Bitunix API key pair, keyed by the opaque
// chat identity the dispatcher supplies. Secrets are stored verbatim and
// must never be written to logs.
type Credential struct {
	UserID    string
	APIKey    string
	APISecret string
	CreatedAt int64 // epoch seconds
	UpdatedAt int64 // epoch seconds
}

// Trade is one executed fill synchronized from the exchange. The pair
// (UserID, TradeID) is unique; re-ingesting the same fill is a no-op.
type Trade struct {
	ID          int64 // surrogate row id, assigned on insert
	UserID      string
	TradeID     string // exchange-assigned trade id
	Symbol      string
	TimestampMS int64
	Side        string
	Qty         float64
	Price       float64
	RealizedPNL float64
	Fee         float64
	Note        string // user annotation, empty until set
	RawJSON     string // compact serialized source record, kept for audit
}

// Store is the journal's persistence surface.
type Store interface {
	UpsertCredential(userID, apiKey, apiSecret string) error
	GetCredential(userID string) (*Credential, error)
	DeleteCredential(userID string) error

	InsertTrades(userID string, trades []Trade) (int, error)
	ListTrades(q TradeQuery) ([]Trade, int, error)
	GetTrade(userID, tradeID string) (*Trade, error)
	AddNote(userID, tradeID, note string) (bool, error)

	Close() error
}
