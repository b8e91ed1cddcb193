package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		UserID:        "test-user-abc",
		BaseDir:       "/home/user/.local/share/rn",
		LogDir:        "/home/user/.local/share/rn/log",
		VoucherSecret: "shhh",
		Database:      DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/rn/data"},
		Sink: SinkConfig{
			Type:     "s3",
			S3Bucket: "rn-exports",
			S3Prefix: "downloads",
			S3Region: "eu-west-1",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.UserID != original.UserID {
		t.Errorf("UserID = %q, want %q", got.UserID, original.UserID)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.VoucherSecret != original.VoucherSecret {
		t.Errorf("VoucherSecret = %q, want %q", got.VoucherSecret, original.VoucherSecret)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", got.Database.Type, "sqlite")
	}
	if got.Database.DataDir != original.Database.DataDir {
		t.Errorf("Database.DataDir = %q, want %q", got.Database.DataDir, original.Database.DataDir)
	}
	if got.Sink.Type != "s3" {
		t.Errorf("Sink.Type = %q, want %q", got.Sink.Type, "s3")
	}
	if got.Sink.S3Bucket != "rn-exports" {
		t.Errorf("Sink.S3Bucket = %q, want %q", got.Sink.S3Bucket, "rn-exports")
	}
	if got.Sink.S3Region != "eu-west-1" {
		t.Errorf("Sink.S3Region = %q, want %q", got.Sink.S3Region, "eu-west-1")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("user-1", "/data/rn")

	if cfg.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", cfg.UserID, "user-1")
	}
	if cfg.BaseDir != "/data/rn" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/rn")
	}
	if cfg.LogDir != "/data/rn/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/rn/log")
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "sqlite")
	}
	if cfg.Database.DataDir != "/data/rn/data" {
		t.Errorf("Database.DataDir = %q, want %q", cfg.Database.DataDir, "/data/rn/data")
	}
	if cfg.Sink.Type != "filesystem" {
		t.Errorf("Sink.Type = %q, want %q", cfg.Sink.Type, "filesystem")
	}
	if cfg.Sink.OutDir != "/data/rn/out" {
		t.Errorf("Sink.OutDir = %q, want %q", cfg.Sink.OutDir, "/data/rn/out")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "rn.toml")
		cfg := NewConfig("u1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "rn.toml")
		cfg := NewConfig("u1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "rn.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.UserID != "read-test" {
			t.Errorf("UserID = %q, want %q", got.UserID, "read-test")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/rn.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
