package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfbarbosa/eduplan/internal/models"
	"github.com/mfbarbosa/eduplan/internal/storage"
)

func newJSONStoreFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eduplan.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SetDay("2026-12-25", models.DayKindHoliday, "Natal"); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	return path
}

func TestCreateBackup_JSONStore(t *testing.T) {
	path := newJSONStoreFile(t)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("backup extension should follow the store: %s", backupPath)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	dst, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(src) != string(dst) {
		t.Error("JSON backup should be a byte for byte copy")
	}
}

func TestCreateBackup_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestListBackups_NewestFirst(t *testing.T) {
	path := newJSONStoreFile(t)
	mgr := NewManager(path)

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups not sorted newest first")
		}
	}
}

func TestListBackups_NoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "eduplan.json"))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestRestoreBackup_RoundTrip(t *testing.T) {
	path := newJSONStoreFile(t)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Wipe the live store, then restore the snapshot
	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	restored := storage.NewJSONStore(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	ann, ok, err := restored.GetDay("2026-12-25")
	if err != nil || !ok {
		t.Fatalf("restored store missing annotation: ok=%v err=%v", ok, err)
	}
	if ann.Description != "Natal" {
		t.Errorf("restored annotation = %+v", ann)
	}
}

func TestRestoreBackup_RejectsCorruptFile(t *testing.T) {
	path := newJSONStoreFile(t)
	mgr := NewManager(path)

	corrupt := filepath.Join(t.TempDir(), "eduplan-20260101-000000.json")
	if err := os.WriteFile(corrupt, []byte("{broken"), 0600); err != nil {
		t.Fatalf("failed to write corrupt backup: %v", err)
	}

	if err := mgr.RestoreBackup(corrupt); err == nil {
		t.Fatal("expected restore to reject invalid JSON backup")
	}
}

func TestCreateBackup_SQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eduplan.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SetDay("2026-04-21", models.DayKindHoliday, "Tiradentes"); err != nil {
		t.Fatalf("SetDay failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	mgr := NewManager(path)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".db") {
		t.Errorf("backup extension should follow the store: %s", backupPath)
	}

	copy := storage.NewSQLiteStore(backupPath)
	if err := copy.Load(); err != nil {
		t.Fatalf("failed to load backup as store: %v", err)
	}
	defer copy.Close()
	if _, ok, _ := copy.GetDay("2026-04-21"); !ok {
		t.Error("backup missing annotation")
	}
}
