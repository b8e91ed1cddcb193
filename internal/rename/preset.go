package rename

// Preset is a named, persisted RuleSet. Presets are immutable once stored:
// the store supports save, list and delete, but no update.
type Preset struct {
	ID    string
	Name  string
	Rules RuleSet
}

// PresetStore is the external preset persistence collaborator. All presets
// are scoped to a user identity.
type PresetStore interface {
	Save(userID string, preset *Preset) error
	Delete(userID, presetID string) error
	ListForUser(userID string) ([]Preset, error)
}
