package preset

import (
	"database/sql"
	"fmt"

	"rn-go/internal/config"
	"rn-go/internal/rename"
)

// NewStoreFromConfig creates a PresetStore implementation based on the
// database config type. SQLite-backed variants share the connection owned by
// the app.
func NewStoreFromConfig(cfg config.DatabaseConfig, db *sql.DB, clock rename.Clock) (rename.PresetStore, error) {
	switch cfg.Type {
	case "sqlite", "memory":
		if db == nil {
			return nil, fmt.Errorf("database connection required for %s preset store", cfg.Type)
		}
		return NewSQLiteStore(db, clock), nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
