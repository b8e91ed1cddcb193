package preset

import (
	"database/sql"
	"fmt"

	"rn-go/internal/rename"
)

// SQLiteStore implements the PresetStore interface on a SQLite database.
// Rule sets are stored as the preset adapter's JSON document in the data
// column, matching the hosted store's row shape.
type SQLiteStore struct {
	db    *sql.DB
	clock rename.Clock
}

// NewSQLiteStore wraps an open database connection. The caller owns the
// connection and its lifecycle.
func NewSQLiteStore(db *sql.DB, clock rename.Clock) *SQLiteStore {
	return &SQLiteStore{db: db, clock: clock}
}

// Save stores a preset. Presets are immutable once stored; saving an
// existing id fails.
func (s *SQLiteStore) Save(userID string, p *rename.Preset) error {
	data, err := rename.EncodeRules(p.Rules)
	if err != nil {
		return fmt.Errorf("encoding preset rules: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO presets (id, user_id, name, data, created_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, userID, p.Name, string(data), s.clock.Now(),
	)
	if err != nil {
		return fmt.Errorf("inserting preset: %w", err)
	}
	return nil
}

// Delete removes a preset. Deleting an unknown id fails.
func (s *SQLiteStore) Delete(userID, presetID string) error {
	res, err := s.db.Exec(
		"DELETE FROM presets WHERE id = ? AND user_id = ?", presetID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no preset %s for user %s", presetID, userID)
	}
	return nil
}

// ListForUser returns the user's presets in creation order.
func (s *SQLiteStore) ListForUser(userID string) ([]rename.Preset, error) {
	rows, err := s.db.Query(
		"SELECT id, name, data FROM presets WHERE user_id = ? ORDER BY created_at, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer rows.Close()

	var presets []rename.Preset
	for rows.Next() {
		var p rename.Preset
		var data string
		if err := rows.Scan(&p.ID, &p.Name, &data); err != nil {
			return nil, fmt.Errorf("scanning preset: %w", err)
		}
		rules, err := rename.DecodeRules([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("decoding preset %s: %w", p.ID, err)
		}
		p.Rules = rules
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading preset rows: %w", err)
	}
	return presets, nil
}

// Compile-time check that SQLiteStore implements rename.PresetStore
var _ rename.PresetStore = (*SQLiteStore)(nil)
