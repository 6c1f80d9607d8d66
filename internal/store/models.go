package store

import "time"

type Account struct {
	PlayerID  string
	BalanceCC int64
	UpdatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	PlayerID  string
	Type      string
	AmountCC  int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

// RoundRecord is the immutable record of a completed round: the final
// snapshot and the per-hand results, stored as JSON.
type RoundRecord struct {
	ID          string
	PlayerID    string
	Snapshot    []byte
	Results     []byte
	CompletedAt time.Time
}
