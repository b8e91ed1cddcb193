package testutil

import (
	"errors"
	"sync"

	"rn-go/internal/ledger"
	"rn-go/internal/preset"
	"rn-go/internal/rename"
)

// NewTestLedger returns an empty in-memory ledger.
func NewTestLedger() *ledger.MemoryLedger {
	return ledger.NewMemoryLedger()
}

// NewTestPresetStore returns an empty in-memory preset store.
func NewTestPresetStore() *preset.MemoryStore {
	return preset.NewMemoryStore()
}

// FailingLedger wraps a Ledger and fails selected operations, for exercising
// the commit protocol's post-rename failure path.
type FailingLedger struct {
	rename.Ledger

	mu          sync.Mutex
	FailSet     bool
	FailHistory bool
}

// ErrLedgerDown is the error FailingLedger returns from failing operations.
var ErrLedgerDown = errors.New("ledger unavailable")

func (l *FailingLedger) SetBalance(userID string, balance int64) error {
	l.mu.Lock()
	fail := l.FailSet
	l.mu.Unlock()
	if fail {
		return ErrLedgerDown
	}
	return l.Ledger.SetBalance(userID, balance)
}

func (l *FailingLedger) AppendHistory(userID string, entry rename.HistoryEntry) error {
	l.mu.Lock()
	fail := l.FailHistory
	l.mu.Unlock()
	if fail {
		return ErrLedgerDown
	}
	return l.Ledger.AppendHistory(userID, entry)
}
