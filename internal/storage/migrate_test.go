// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers record copying and the directory emptiness helper.
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)

	user := uuid.New()
	for i := 0; i < 4; i++ {
		if err := src.UpsertRecord(newTestRecord(user, i)); err != nil {
			t.Fatalf("UpsertRecord failed: %v", err)
		}
	}
	// pre-existing day in dst is replaced, not duplicated
	if err := dst.UpsertRecord(newTestRecord(user, 0)); err != nil {
		t.Fatalf("UpsertRecord failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Records != 4 {
		t.Errorf("summary.Records = %d, want 4", summary.Records)
	}

	records, err := dst.ListRecords(user, nil, 0)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("expected 4 records in destination, got %d", len(records))
	}
}

func TestMigrateDataEmpty(t *testing.T) {
	summary, err := MigrateData(setupTestDB(t), setupTestDB(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Records != 0 {
		t.Errorf("summary.Records = %d, want 0", summary.Records)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if got, err := IsDirNonEmpty(missing); err != nil || got {
		t.Errorf("IsDirNonEmpty(missing) = %v, %v", got, err)
	}

	empty := t.TempDir()
	if got, err := IsDirNonEmpty(empty); err != nil || got {
		t.Errorf("IsDirNonEmpty(empty) = %v, %v", got, err)
	}

	full := t.TempDir()
	if err := os.WriteFile(filepath.Join(full, "f"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if got, err := IsDirNonEmpty(full); err != nil || !got {
		t.Errorf("IsDirNonEmpty(full) = %v, %v", got, err)
	}
}
