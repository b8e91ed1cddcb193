package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rn-go/internal/rename"
)

// The batch and live rule set outlive a single CLI invocation (the browser
// tab gave the original product this for free). They persist under
// <base_dir>/session/: a JSON manifest plus one content blob per file.
// Content is copied at intake, so the source files are never touched.

type sessionDoc struct {
	Files       []sessionFile   `json:"files"`
	ExportReady bool            `json:"export_ready"`
	Rules       json.RawMessage `json:"rules"`
}

type sessionFile struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	CurrentName  string `json:"current_name"`
	Size         int64  `json:"size"`
}

// Session persists batch and rule state between invocations.
type Session struct {
	dir        string
	contentDir string
}

// NewSession creates a session rooted under baseDir, creating its directory
// layout if needed.
func NewSession(baseDir string) (*Session, error) {
	dir := filepath.Join(baseDir, "session")
	contentDir := filepath.Join(dir, "content")
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	return &Session{dir: dir, contentDir: contentDir}, nil
}

func (s *Session) manifestPath() string {
	return filepath.Join(s.dir, "session.json")
}

// Load restores the batch and rule set. A missing manifest yields an empty
// batch and empty rules.
func (s *Session) Load() (*rename.Batch, rename.RuleSet, error) {
	data, err := os.ReadFile(s.manifestPath())
	if err != nil {
		if os.IsNotExist(err) {
			return rename.NewBatch(), rename.NewRuleSet(), nil
		}
		return nil, rename.RuleSet{}, fmt.Errorf("reading session manifest: %w", err)
	}

	var doc sessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, rename.RuleSet{}, fmt.Errorf("decoding session manifest: %w", err)
	}

	files := make([]rename.FileRecord, 0, len(doc.Files))
	for _, sf := range doc.Files {
		content, err := os.ReadFile(filepath.Join(s.contentDir, sf.ID))
		if err != nil {
			return nil, rename.RuleSet{}, fmt.Errorf("reading session content for %s: %w", sf.ID, err)
		}
		files = append(files, rename.FileRecord{
			ID:           sf.ID,
			OriginalName: sf.OriginalName,
			CurrentName:  sf.CurrentName,
			Content:      content,
			Size:         sf.Size,
		})
	}

	rules := rename.NewRuleSet()
	if len(doc.Rules) > 0 {
		rules, err = rename.DecodeRules(doc.Rules)
		if err != nil {
			return nil, rename.RuleSet{}, fmt.Errorf("decoding session rules: %w", err)
		}
	}

	return rename.RestoreBatch(files, doc.ExportReady), rules, nil
}

// Save writes the manifest and content blobs, and removes blobs for files no
// longer in the batch.
func (s *Session) Save(batch *rename.Batch, rules rename.RuleSet) error {
	files := batch.Files()

	doc := sessionDoc{
		Files:       make([]sessionFile, 0, len(files)),
		ExportReady: batch.ExportReady(),
	}

	keep := make(map[string]bool, len(files))
	for _, f := range files {
		keep[f.ID] = true
		doc.Files = append(doc.Files, sessionFile{
			ID:           f.ID,
			OriginalName: f.OriginalName,
			CurrentName:  f.CurrentName,
			Size:         f.Size,
		})
		blob := filepath.Join(s.contentDir, f.ID)
		if err := os.WriteFile(blob, f.Content, 0644); err != nil {
			return fmt.Errorf("writing session content for %s: %w", f.ID, err)
		}
	}

	encoded, err := rename.EncodeRules(rules)
	if err != nil {
		return fmt.Errorf("encoding session rules: %w", err)
	}
	doc.Rules = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session manifest: %w", err)
	}
	if err := os.WriteFile(s.manifestPath(), data, 0644); err != nil {
		return fmt.Errorf("writing session manifest: %w", err)
	}

	// Drop content blobs of removed files.
	entries, err := os.ReadDir(s.contentDir)
	if err != nil {
		return fmt.Errorf("reading session content dir: %w", err)
	}
	for _, e := range entries {
		if !keep[e.Name()] {
			os.Remove(filepath.Join(s.contentDir, e.Name()))
		}
	}

	return nil
}
