package sink

import (
	"context"
	"sync"
)

// MemorySink stores delivered artifacts in memory. Use in tests. It is safe
// for concurrent use.
type MemorySink struct {
	mu        sync.Mutex
	artifacts map[string][]byte
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{artifacts: make(map[string][]byte)}
}

func (s *MemorySink) Deliver(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.artifacts[name] = buf
	return nil
}

func (s *MemorySink) ValidateSetup(context.Context) error { return nil }

// Artifact returns the delivered bytes for name, or nil if nothing was
// delivered under it.
func (s *MemorySink) Artifact(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifacts[name]
}

// Compile-time check that MemorySink implements Sink
var _ Sink = (*MemorySink)(nil)
