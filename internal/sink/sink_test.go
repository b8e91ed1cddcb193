package sink_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rn-go/internal/config"
	"rn-go/internal/sink"
)

func TestFileSystemSink_Deliver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := sink.NewFileSystemSink(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("NewFileSystemSink: %v", err)
	}
	if err := s.ValidateSetup(context.Background()); err != nil {
		t.Fatalf("ValidateSetup: %v", err)
	}

	if err := s.Deliver(context.Background(), "renamed.zip", []byte("zip bytes")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "out", "renamed.zip"))
	if err != nil {
		t.Fatalf("reading delivered file: %v", err)
	}
	if string(got) != "zip bytes" {
		t.Errorf("delivered content = %q", got)
	}
}

func TestFileSystemSink_DeliverOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := sink.NewFileSystemSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Deliver(context.Background(), "a.txt", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := s.Deliver(context.Background(), "a.txt", []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want the later delivery", got)
	}
}

func TestFileSystemSink_DeliverStripsPathComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := sink.NewFileSystemSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	// An artifact name with separators must not escape the output directory.
	if err := s.Deliver(context.Background(), "../escape.txt", []byte("x")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err != nil {
		t.Errorf("artifact not written inside the output directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt")); err == nil {
		t.Error("artifact escaped the output directory")
	}
}

func TestMemorySink(t *testing.T) {
	t.Parallel()

	s := sink.NewMemorySink()
	if err := s.ValidateSetup(context.Background()); err != nil {
		t.Fatalf("ValidateSetup: %v", err)
	}

	data := []byte("payload")
	if err := s.Deliver(context.Background(), "a.txt", data); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	// The sink stores a copy, not the caller's slice.
	data[0] = 'X'
	if got := s.Artifact("a.txt"); string(got) != "payload" {
		t.Errorf("Artifact = %q, want %q", got, "payload")
	}

	if got := s.Artifact("missing"); got != nil {
		t.Errorf("Artifact(missing) = %v, want nil", got)
	}
}

func TestNewSinkFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.SinkConfig
		wantErr bool
	}{
		{"filesystem", config.SinkConfig{Type: "filesystem", OutDir: t.TempDir()}, false},
		{"memory", config.SinkConfig{Type: "memory"}, false},
		{"unknown type", config.SinkConfig{Type: "carrier-pigeon"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := sink.NewSinkFromConfig(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewSinkFromConfig succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSinkFromConfig: %v", err)
			}
			if s == nil {
				t.Error("sink is nil")
			}
		})
	}
}
