package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"rn-go/internal/config"
	"rn-go/internal/database"
	"rn-go/internal/intake"
	"rn-go/internal/ledger"
	"rn-go/internal/preset"
	"rn-go/internal/rename"
	"rn-go/internal/sink"
	"rn-go/internal/voucher"
)

// App is the application layer between the CLI and the rename service. It
// constructs all dependencies from config, loads the session, exposes
// high-level operations, and persists the session plus closes resources on
// Close.
type App struct {
	cfg      *config.Config
	db       *sql.DB
	service  *rename.Service
	exporter *rename.Exporter
	loader   *intake.Loader
	session  *Session
	batch    *rename.Batch
	rules    rename.RuleSet
	idgen    rename.IDGenerator
	logger   rename.Logger
	logFile  *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "Apply", "Export"). The caller
// must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if cfg.Database.Type == "sqlite" && cfg.Database.DataDir != "" {
		if err := os.MkdirAll(cfg.Database.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := database.OpenFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	clock := rename.RealClock{}
	idgen := rename.UUIDGenerator{}

	led, err := ledger.NewLedgerFromConfig(cfg.Database, db, clock)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger: %w", err)
	}

	presets, err := preset.NewStoreFromConfig(cfg.Database, db, clock)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating preset store: %w", err)
	}

	session, err := NewSession(cfg.BaseDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session: %w", err)
	}

	batch, rules, err := session.Load()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	return &App{
		cfg:      cfg,
		db:       db,
		service:  rename.NewService(led, presets, logger, clock, idgen),
		exporter: rename.NewExporter(logger),
		loader:   intake.NewLoader(idgen),
		session:  session,
		batch:    batch,
		rules:    rules,
		idgen:    idgen,
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// Close persists the session and releases all resources.
func (a *App) Close() error {
	var firstErr error

	if err := a.session.Save(a.batch, a.rules); err != nil {
		firstErr = fmt.Errorf("saving session: %w", err)
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// Batch operations

// AddFiles reads the given paths into the batch. Returns the number of files
// added.
func (a *App) AddFiles(paths []string) (int, error) {
	records, err := a.loader.Load(paths)
	if err != nil {
		return 0, err
	}
	a.batch.Add(records...)
	a.logger.Info("files added", "count", len(records), "batch", a.batch.Len())
	return len(records), nil
}

// Files returns the batch's records in order.
func (a *App) Files() []rename.FileRecord {
	return a.batch.Files()
}

// ExportReady reports whether the batch has a committed rename to export.
func (a *App) ExportReady() bool {
	return a.batch.ExportReady()
}

// RemoveFile drops one file from the batch.
func (a *App) RemoveFile(id string) {
	a.batch.RemoveFile(id)
}

// ClearBatch drops all files and the export flag.
func (a *App) ClearBatch() {
	a.batch.Clear()
}

// Rule operations

// AddRule appends a new rule of the named kind with its defaults.
func (a *App) AddRule(kindName string) (rename.Rule, error) {
	kind, err := rename.ParseRuleKind(kindName)
	if err != nil {
		return rename.Rule{}, err
	}
	r := rename.NewRule(kind, a.idgen.New())
	a.rules = a.rules.Append(r)
	return r, nil
}

// Rules returns the live rule set.
func (a *App) Rules() rename.RuleSet {
	return a.rules
}

// MoveRule moves a rule one position up or down.
func (a *App) MoveRule(id string, direction string) error {
	var dir rename.MoveDirection
	switch direction {
	case "up":
		dir = rename.MoveUp
	case "down":
		dir = rename.MoveDown
	default:
		return fmt.Errorf("unknown direction: %q", direction)
	}
	a.rules = a.rules.Move(id, dir)
	return nil
}

// ToggleRule flips a rule's active flag.
func (a *App) ToggleRule(id string) {
	a.rules = a.rules.Toggle(id)
}

// RemoveRule drops a rule from the set.
func (a *App) RemoveRule(id string) {
	a.rules = a.rules.Remove(id)
}

// SetRuleOption updates one configuration field of a rule. Keys mirror the
// config field names: text, search, replacement, start, step, digits,
// format, position.
func (a *App) SetRuleOption(id, key, value string) error {
	if a.rules.Position(id) == 0 {
		return fmt.Errorf("no rule with id %s", id)
	}

	update := func(fn func(*rename.RuleConfig)) {
		a.rules = a.rules.Update(id, fn)
	}

	switch key {
	case "text":
		update(func(c *rename.RuleConfig) { c.Text = value })
	case "search":
		update(func(c *rename.RuleConfig) { c.Search = value })
	case "replacement":
		update(func(c *rename.RuleConfig) { c.Replacement = value })
	case "start", "step", "digits":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		update(func(c *rename.RuleConfig) {
			switch key {
			case "start":
				c.Start = n
			case "step":
				c.Step = n
			case "digits":
				c.Digits = n
			}
		})
	case "format":
		update(func(c *rename.RuleConfig) { c.Format = value })
	case "position":
		pos, err := rename.ParsePosition(value)
		if err != nil {
			return err
		}
		update(func(c *rename.RuleConfig) { c.Position = pos })
	default:
		return fmt.Errorf("unknown rule option: %q", key)
	}
	return nil
}

// Commit operations

// Apply commits the batch against the live rule set.
func (a *App) Apply() (*rename.CommitReceipt, error) {
	return a.service.Commit(a.cfg.UserID, a.batch, a.rules)
}

// ApplyPreset commits the batch against a stored preset's rule set.
func (a *App) ApplyPreset(name string) (*rename.CommitReceipt, error) {
	p, err := a.service.FindPreset(a.cfg.UserID, name)
	if err != nil {
		return nil, err
	}
	return a.service.CommitPreset(a.cfg.UserID, a.batch, p)
}

// Preset operations

// SavePreset stores the live rule set under the given name and returns the
// stored preset.
func (a *App) SavePreset(name string) (*rename.Preset, error) {
	return a.service.SavePreset(a.cfg.UserID, name, a.rules)
}

// ListPresets returns the user's stored presets.
func (a *App) ListPresets() ([]rename.Preset, error) {
	return a.service.ListPresets(a.cfg.UserID)
}

// DeletePreset removes a stored preset by id.
func (a *App) DeletePreset(presetID string) error {
	return a.service.DeletePreset(a.cfg.UserID, presetID)
}

// Export and credits

// Export packages the batch into its download artifact and delivers it via
// the configured sink. Returns the artifact name.
func (a *App) Export(ctx context.Context) (string, error) {
	if !a.batch.ExportReady() {
		return "", fmt.Errorf("nothing to export: apply rules first")
	}

	artifact, err := a.exporter.Export(a.batch.Files())
	if err != nil {
		return "", err
	}

	snk, err := sink.NewSinkFromConfig(ctx, a.cfg.Sink)
	if err != nil {
		return "", fmt.Errorf("creating sink: %w", err)
	}

	if err := snk.Deliver(ctx, artifact.Name, artifact.Data); err != nil {
		return "", fmt.Errorf("delivering artifact: %w", err)
	}

	a.logger.Info("artifact delivered", "name", artifact.Name, "bytes", len(artifact.Data))
	return artifact.Name, nil
}

// Balance returns the user's credit balance.
func (a *App) Balance() (int64, error) {
	return a.service.Balance(a.cfg.UserID)
}

// History returns the user's credit movements, newest first.
func (a *App) History() ([]rename.HistoryEntry, error) {
	return a.service.History(a.cfg.UserID)
}

// Redeem verifies a voucher code and credits its amount. Returns the new
// balance.
func (a *App) Redeem(code string) (int64, error) {
	credits, err := voucher.Verify(code, a.cfg.VoucherSecret)
	if err != nil {
		return 0, err
	}
	return a.service.Redeem(a.cfg.UserID, credits, "voucher")
}
