package rename

import "fmt"

// Service is the orchestration layer that couples the pure name transformer
// to the external ledger and preset store. One Service instance serves one
// user session.
type Service struct {
	ledger  Ledger
	presets PresetStore
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(ledger Ledger, presets PresetStore, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		ledger:  ledger,
		presets: presets,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// CommitReceipt describes the outcome of one commit.
type CommitReceipt struct {
	// Applied is false for no-op commits (empty batch or no active rule).
	Applied bool

	// Debited is the number of credits consumed: one per file.
	Debited int64

	// Balance is the requested post-commit balance.
	Balance int64

	// LedgerErr carries a debit or history-append failure. The local rename
	// has already been applied and export enabled when it is set; the
	// inconsistency is logged but not rolled back.
	LedgerErr error
}

// Commit runs the batch commit protocol against the live rule set:
// credit check, transform, ledger debit, history append, export enable.
//
// A commit consumes exactly one credit per file, decided at the moment of
// apply. An empty batch or a set with no active rule is a no-op: no debit,
// no history entry, no state change. If the balance cannot cover the batch,
// an InsufficientCreditsError is returned and nothing is mutated.
//
// The debit and history append are issued after the rename is already
// visible and are not awaited transactionally: if either fails the rename
// stands, the failure is logged, and the receipt carries it.
func (s *Service) Commit(userID string, batch *Batch, rules RuleSet) (*CommitReceipt, error) {
	return s.commit(userID, batch, rules, rules.Label())
}

// CommitPreset runs the identical protocol with the preset's stored rule
// set, using the preset name as the history reason.
func (s *Service) CommitPreset(userID string, batch *Batch, preset *Preset) (*CommitReceipt, error) {
	return s.commit(userID, batch, preset.Rules, preset.Name)
}

func (s *Service) commit(userID string, batch *Batch, rules RuleSet, reason string) (*CommitReceipt, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	if batch.Len() == 0 || rules.ActiveCount() == 0 {
		s.logger.Debug("commit skipped", "files", batch.Len(), "active_rules", rules.ActiveCount())
		return &CommitReceipt{}, nil
	}

	required := int64(batch.Len())
	balance, err := s.ledger.GetBalance(userID)
	if err != nil {
		return nil, fmt.Errorf("checking credit balance: %w", err)
	}
	if balance < required {
		return nil, &InsufficientCreditsError{Required: required, Balance: balance}
	}

	now := s.clock.Now()
	batch.replace(Transform(batch.Files(), rules, now))
	s.logger.Info("batch renamed", "files", required, "reason", reason, "balance_before", balance)

	receipt := &CommitReceipt{
		Applied: true,
		Debited: required,
		Balance: balance - required,
	}

	// Past this point the rename is already applied; ledger failures are
	// surfaced but nothing is undone.
	if err := s.ledger.SetBalance(userID, balance-required); err != nil {
		s.logger.Error("credit debit failed after rename", "required", required, "error", err)
		receipt.LedgerErr = fmt.Errorf("debiting credits: %w", err)
		return receipt, nil
	}

	entry := HistoryEntry{
		ID:     s.idgen.New(),
		Amount: -required,
		Reason: reason,
		UsedAt: now,
	}
	if err := s.ledger.AppendHistory(userID, entry); err != nil {
		s.logger.Error("history append failed after rename", "reason", reason, "error", err)
		receipt.LedgerErr = fmt.Errorf("appending credit history: %w", err)
	}

	return receipt, nil
}

// Redeem credits the user's balance and records a positive history entry.
// The caller has already verified the voucher; amount must be positive.
func (s *Service) Redeem(userID string, amount int64, reason string) (int64, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}
	if amount <= 0 {
		return 0, fmt.Errorf("redeem amount must be positive, got %d", amount)
	}

	balance, err := s.ledger.GetBalance(userID)
	if err != nil {
		return 0, fmt.Errorf("checking credit balance: %w", err)
	}

	newBalance := balance + amount
	if err := s.ledger.SetBalance(userID, newBalance); err != nil {
		return 0, fmt.Errorf("crediting balance: %w", err)
	}

	entry := HistoryEntry{
		ID:     s.idgen.New(),
		Amount: amount,
		Reason: reason,
		UsedAt: s.clock.Now(),
	}
	if err := s.ledger.AppendHistory(userID, entry); err != nil {
		return 0, fmt.Errorf("appending credit history: %w", err)
	}

	s.logger.Info("credits redeemed", "amount", amount, "balance", newBalance)
	return newBalance, nil
}

// Balance returns the user's current credit balance.
func (s *Service) Balance(userID string) (int64, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}
	balance, err := s.ledger.GetBalance(userID)
	if err != nil {
		return 0, fmt.Errorf("fetching credit balance: %w", err)
	}
	return balance, nil
}

// History returns the user's credit movements, newest first.
func (s *Service) History(userID string) ([]HistoryEntry, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	entries, err := s.ledger.ListHistory(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching credit history: %w", err)
	}
	return entries, nil
}

// SavePreset stores the rule set under the given name and returns the stored
// preset. The return value is the completion signal callers forward to
// whatever lists presets; there is no ambient saved-event.
func (s *Service) SavePreset(userID, name string, rules RuleSet) (*Preset, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	preset := &Preset{
		ID:    s.idgen.New(),
		Name:  name,
		Rules: rules,
	}
	if err := s.presets.Save(userID, preset); err != nil {
		return nil, fmt.Errorf("saving preset %q: %w", name, err)
	}
	s.logger.Info("preset saved", "name", name, "rules", rules.Len())
	return preset, nil
}

// DeletePreset removes a stored preset.
func (s *Service) DeletePreset(userID, presetID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if err := s.presets.Delete(userID, presetID); err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}
	return nil
}

// ListPresets returns the user's stored presets.
func (s *Service) ListPresets(userID string) ([]Preset, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	presets, err := s.presets.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	return presets, nil
}

// FindPreset returns the user's preset with the given name.
func (s *Service) FindPreset(userID, name string) (*Preset, error) {
	presets, err := s.ListPresets(userID)
	if err != nil {
		return nil, err
	}
	for i := range presets {
		if presets[i].Name == name {
			return &presets[i], nil
		}
	}
	return nil, fmt.Errorf("no preset named %q", name)
}
