package ledger

import (
	"database/sql"
	"fmt"

	"rn-go/internal/config"
	"rn-go/internal/rename"
)

// NewLedgerFromConfig creates a Ledger implementation based on the database
// config type. SQLite-backed variants share the connection owned by the app.
func NewLedgerFromConfig(cfg config.DatabaseConfig, db *sql.DB, clock rename.Clock) (rename.Ledger, error) {
	switch cfg.Type {
	case "sqlite", "memory":
		if db == nil {
			return nil, fmt.Errorf("database connection required for %s ledger", cfg.Type)
		}
		return NewSQLiteLedger(db, clock), nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
