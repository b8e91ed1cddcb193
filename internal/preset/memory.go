package preset

import (
	"fmt"
	"sync"

	"rn-go/internal/rename"
)

// MemoryStore is an in-memory implementation of the PresetStore interface,
// useful for testing. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	presets map[string][]rename.Preset // userID -> presets in save order
}

// NewMemoryStore creates an empty in-memory preset store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string][]rename.Preset)}
}

func (s *MemoryStore) Save(userID string, p *rename.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.presets[userID] {
		if existing.ID == p.ID {
			return fmt.Errorf("preset %s already exists", p.ID)
		}
	}
	s.presets[userID] = append(s.presets[userID], *p)
	return nil
}

func (s *MemoryStore) Delete(userID, presetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.presets[userID]
	for i, p := range list {
		if p.ID == presetID {
			s.presets[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no preset %s for user %s", presetID, userID)
}

func (s *MemoryStore) ListForUser(userID string) ([]rename.Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rename.Preset, len(s.presets[userID]))
	copy(out, s.presets[userID])
	return out, nil
}

// Compile-time check that MemoryStore implements rename.PresetStore
var _ rename.PresetStore = (*MemoryStore)(nil)
