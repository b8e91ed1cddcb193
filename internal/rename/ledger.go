package rename

import "time"

// HistoryEntry is one signed credit movement. Negative amounts are commit
// debits; positive amounts are top-ups.
type HistoryEntry struct {
	ID     string
	Amount int64
	Reason string
	UsedAt time.Time
}

// Ledger is the external credit ledger collaborator. Balances are
// non-negative integers per user; history is append-only. The ledger exposes
// set-balance rather than an atomic decrement, so two commits racing against
// a stale balance read can over-debit. That contract is observed here, not
// fixed.
type Ledger interface {
	// GetBalance returns the user's current balance, creating a zero
	// balance for users the ledger has not seen before.
	GetBalance(userID string) (int64, error)

	// SetBalance overwrites the user's balance.
	SetBalance(userID string, balance int64) error

	// AppendHistory records one credit movement.
	AppendHistory(userID string, entry HistoryEntry) error

	// ListHistory returns the user's credit movements, newest first.
	ListHistory(userID string) ([]HistoryEntry, error)
}
