package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rn-go/internal/rename"
)

// SQLiteLedger implements the Ledger interface on a SQLite database. The
// schema mirrors the hosted ledger this tool syncs against: a balance row
// per user plus an append-only history table.
type SQLiteLedger struct {
	db    *sql.DB
	clock rename.Clock
}

// NewSQLiteLedger wraps an open database connection. The caller owns the
// connection and its lifecycle.
func NewSQLiteLedger(db *sql.DB, clock rename.Clock) *SQLiteLedger {
	return &SQLiteLedger{db: db, clock: clock}
}

// GetBalance returns the user's balance, creating a zero-balance row on
// first sight of a user.
func (l *SQLiteLedger) GetBalance(userID string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(
		"SELECT credit_balance FROM credit_balances WHERE user_id = ?", userID,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		now := l.clock.Now()
		_, err = l.db.Exec(
			"INSERT INTO credit_balances (user_id, credit_balance, created_at, updated_at) VALUES (?, 0, ?, ?)",
			userID, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("creating balance row: %w", err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}
	return balance, nil
}

// SetBalance overwrites the user's balance.
func (l *SQLiteLedger) SetBalance(userID string, balance int64) error {
	res, err := l.db.Exec(
		"UPDATE credit_balances SET credit_balance = ?, updated_at = ? WHERE user_id = ?",
		balance, l.clock.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no balance row for user %s", userID)
	}
	return nil
}

// AppendHistory records one credit movement.
func (l *SQLiteLedger) AppendHistory(userID string, entry rename.HistoryEntry) error {
	_, err := l.db.Exec(
		"INSERT INTO credit_history (id, user_id, amount, reason, used_at) VALUES (?, ?, ?, ?, ?)",
		entry.ID, userID, entry.Amount, entry.Reason, entry.UsedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// ListHistory returns the user's credit movements, newest first.
func (l *SQLiteLedger) ListHistory(userID string) ([]rename.HistoryEntry, error) {
	rows, err := l.db.Query(
		"SELECT id, amount, reason, used_at FROM credit_history WHERE user_id = ? ORDER BY used_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []rename.HistoryEntry
	for rows.Next() {
		var e rename.HistoryEntry
		var usedAt time.Time
		if err := rows.Scan(&e.ID, &e.Amount, &e.Reason, &usedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.UsedAt = usedAt
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}

// Compile-time check that SQLiteLedger implements rename.Ledger
var _ rename.Ledger = (*SQLiteLedger)(nil)
