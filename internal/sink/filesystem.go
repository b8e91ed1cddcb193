package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSystemSink writes artifacts into a local output directory.
type FileSystemSink struct {
	outDir string
}

// NewFileSystemSink creates a sink rooted at outDir, creating it if needed.
func NewFileSystemSink(outDir string) (*FileSystemSink, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileSystemSink{outDir: outDir}, nil
}

// Deliver writes the artifact under its name in the output directory. An
// existing file with the same name is overwritten, like a browser download
// that the user confirmed.
func (s *FileSystemSink) Deliver(_ context.Context, name string, data []byte) error {
	dest := filepath.Join(s.outDir, filepath.Base(name))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", dest, err)
	}
	return nil
}

// ValidateSetup verifies the output directory is writable.
func (s *FileSystemSink) ValidateSetup(_ context.Context) error {
	info, err := os.Stat(s.outDir)
	if err != nil {
		return fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", s.outDir)
	}
	return nil
}

// Compile-time check that FileSystemSink implements Sink
var _ Sink = (*FileSystemSink)(nil)
