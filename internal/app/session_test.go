package app

import (
	"os"
	"path/filepath"
	"testing"

	"rn-go/internal/rename"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(t.TempDir())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func sessionFileRecord(id, name, content string) rename.FileRecord {
	return rename.FileRecord{
		ID:           id,
		OriginalName: name,
		CurrentName:  name,
		Content:      []byte(content),
		Size:         int64(len(content)),
	}
}

func TestSession_LoadWithoutManifest(t *testing.T) {
	s := newTestSession(t)

	batch, rules, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if batch.Len() != 0 {
		t.Errorf("batch.Len = %d, want 0", batch.Len())
	}
	if batch.ExportReady() {
		t.Error("fresh batch export-ready")
	}
	if rules.Len() != 0 {
		t.Errorf("rules.Len = %d, want 0", rules.Len())
	}
}

func TestSession_SaveLoadRoundTrip(t *testing.T) {
	s := newTestSession(t)

	batch := rename.NewBatch()
	batch.Add(
		sessionFileRecord("f1", "a.txt", "alpha"),
		sessionFileRecord("f2", "b.txt", "beta"),
	)

	prefix := rename.NewRule(rename.KindPrefix, "r1")
	prefix.Config.Text = "x_"
	numbering := rename.NewRule(rename.KindNumbering, "r2")
	numbering.Active = false
	rules := rename.NewRuleSet(prefix, numbering)

	if err := s.Save(batch, rules); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotBatch, gotRules, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	files := gotBatch.Files()
	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if files[0].ID != "f1" || string(files[0].Content) != "alpha" {
		t.Errorf("first file = %+v", files[0])
	}
	if files[1].CurrentName != "b.txt" || files[1].Size != 4 {
		t.Errorf("second file = %+v", files[1])
	}

	if gotRules.Len() != 2 {
		t.Fatalf("rules = %d, want 2", gotRules.Len())
	}
	restored := gotRules.Rules()
	if restored[0] != prefix {
		t.Errorf("rule 0 = %+v, want %+v", restored[0], prefix)
	}
	if restored[1].Active {
		t.Error("inactive rule came back active")
	}
}

func TestSession_PreservesExportFlag(t *testing.T) {
	s := newTestSession(t)

	batch := rename.RestoreBatch([]rename.FileRecord{sessionFileRecord("f1", "a.txt", "a")}, true)
	if err := s.Save(batch, rename.NewRuleSet()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.ExportReady() {
		t.Error("export flag lost across save/load")
	}
}

func TestSession_SavePrunesRemovedContent(t *testing.T) {
	s := newTestSession(t)

	batch := rename.NewBatch()
	batch.Add(sessionFileRecord("f1", "a.txt", "a"), sessionFileRecord("f2", "b.txt", "b"))
	if err := s.Save(batch, rename.NewRuleSet()); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	batch.RemoveFile("f1")
	if err := s.Save(batch, rename.NewRuleSet()); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.contentDir, "f1")); !os.IsNotExist(err) {
		t.Errorf("removed file's content blob still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.contentDir, "f2")); err != nil {
		t.Errorf("kept file's content blob missing: %v", err)
	}
}

func TestSession_SaveEmptyState(t *testing.T) {
	s := newTestSession(t)

	batch := rename.NewBatch()
	batch.Add(sessionFileRecord("f1", "a.txt", "a"))
	if err := s.Save(batch, rename.NewRuleSet()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	batch.Clear()
	if err := s.Save(batch, rename.NewRuleSet()); err != nil {
		t.Fatalf("Save after Clear: %v", err)
	}

	got, rules, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != 0 || rules.Len() != 0 {
		t.Errorf("state = %d files, %d rules; want empty", got.Len(), rules.Len())
	}
}
