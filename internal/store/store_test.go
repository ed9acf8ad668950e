package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.db")

	// Open multiple times
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	// Verify schema is intact
	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"patients", "status_changes", "handover_notes"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/triage.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s, _ := newTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
	}
	for name, expected := range checks {
		if err := s.verifyPragma(name, expected); err != nil {
			t.Errorf("pragma check failed: %v", err)
		}
	}
}

func TestCount_EmptyAndAfterCreates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d on empty store, want 0", n)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, waiting("patient")); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	n, err = s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}
