package rename

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by any service entry point that needs a
// user identity when none is configured. It fails fast, before touching the
// ledger.
var ErrNotAuthenticated = errors.New("no user identity configured")

// ErrEmptyExport is returned when the exporter is invoked with no files.
// Callers are expected to guard on Batch.ExportReady, which is never set for
// an empty batch.
var ErrEmptyExport = errors.New("nothing to export")

// InsufficientCreditsError is returned by the commit credit check when the
// balance cannot cover one credit per file. No state has been mutated when
// this is returned.
type InsufficientCreditsError struct {
	Required int64
	Balance  int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: need %d, have %d", e.Required, e.Balance)
}
