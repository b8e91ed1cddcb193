package ledger

import (
	"sync"

	"rn-go/internal/rename"
)

// MemoryLedger is an in-memory implementation of the Ledger interface,
// useful for testing. It is safe for concurrent use.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	history  map[string][]rename.HistoryEntry
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]int64),
		history:  make(map[string][]rename.HistoryEntry),
	}
}

func (l *MemoryLedger) GetBalance(userID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Missing users materialize at zero, like the hosted ledger.
	return l.balances[userID], nil
}

func (l *MemoryLedger) SetBalance(userID string, balance int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] = balance
	return nil
}

func (l *MemoryLedger) AppendHistory(userID string, entry rename.HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Prepend so listing is newest first without sorting.
	l.history[userID] = append([]rename.HistoryEntry{entry}, l.history[userID]...)
	return nil
}

func (l *MemoryLedger) ListHistory(userID string) ([]rename.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]rename.HistoryEntry, len(l.history[userID]))
	copy(out, l.history[userID])
	return out, nil
}

// Compile-time check that MemoryLedger implements rename.Ledger
var _ rename.Ledger = (*MemoryLedger)(nil)
