// Package intake turns user-named paths into batch file records. It is the
// only place that reads source files; the batch operates on the copied
// content and never writes back.
package intake

import (
	"fmt"
	"os"
	"path/filepath"

	"rn-go/internal/rename"
)

// Loader reads files from the real filesystem into FileRecords.
type Loader struct {
	idgen rename.IDGenerator
}

// NewLoader creates a Loader using the given id generator for record ids.
func NewLoader(idgen rename.IDGenerator) *Loader {
	return &Loader{idgen: idgen}
}

// Load reads each path into a FileRecord with CurrentName initialized to the
// file's base name. Directories and special files are rejected; one bad path
// fails the whole load so a batch is never half-accepted.
func (l *Loader) Load(paths []string) ([]rename.FileRecord, error) {
	records := make([]rename.FileRecord, 0, len(paths))
	for _, raw := range paths {
		rec, err := l.loadOne(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *Loader) loadOne(raw string) (rename.FileRecord, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return rename.FileRecord{}, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return rename.FileRecord{}, fmt.Errorf("stat path: %w", err)
	}
	if info.IsDir() {
		return rename.FileRecord{}, fmt.Errorf("path is a directory: %s", abs)
	}
	if !info.Mode().IsRegular() {
		return rename.FileRecord{}, fmt.Errorf("not a regular file: %s", abs)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return rename.FileRecord{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	name := filepath.Base(abs)
	return rename.FileRecord{
		ID:           l.idgen.New(),
		OriginalName: name,
		CurrentName:  name,
		Content:      content,
		Size:         int64(len(content)),
	}, nil
}
