package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/aidant/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "aidant.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('aidant.beneficiaires', '[]'), ('aidant.notes', '[]')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateBackup_UniqueNames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, time.April, 15, 9, 30, 12, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	start := time.Date(2024, time.April, 1, 8, 0, 0, 0, time.Local)

	total := constants.MaxBackups + 3
	for i := 0; i < total; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		mgr.now = func() time.Time { return at }
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	newest := start.Add(time.Duration(total-1) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2024, time.April, 15, 9, 0, 0, 0, time.Local) }

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('aidant.creneaux', '[]')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	mgr.now = func() time.Time { return time.Date(2024, time.April, 15, 10, 0, 0, 0, time.Local) }
	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if got := countRows(t, safety); got != 3 {
		t.Errorf("expected the pre-restore backup to hold 3 rows, got %d", got)
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "aidant-20240101-0000.db")
	if err := os.WriteFile(bogus, []byte("not a database at all, definitely not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected an error restoring an invalid file")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected an error restoring a missing file")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "aidant.json")
	if err := os.WriteFile(dataPath, []byte(`{"version":1,"entries":{}}`), 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(dataPath)
	mgr.now = func() time.Time { return time.Date(2024, time.April, 15, 9, 0, 0, 0, time.Local) }
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected a .json backup, got %s", backupPath)
	}

	if err := os.WriteFile(dataPath, []byte(`{"version":1,"entries":{"k":1}}`), 0600); err != nil {
		t.Fatal(err)
	}
	mgr.now = func() time.Time { return time.Date(2024, time.April, 15, 10, 0, 0, 0, time.Local) }
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	data, _ := os.ReadFile(dataPath)
	if string(data) != `{"version":1,"entries":{}}` {
		t.Errorf("restored content = %s", data)
	}

	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte("{"), 0600)
	if _, err := mgr.RestoreBackup(broken); err == nil {
		t.Error("expected an error restoring invalid JSON")
	}
}

func TestNotFileBacked(t *testing.T) {
	mgr := NewManager("postgresql")
	if _, err := mgr.CreateBackup(); !errors.Is(err, ErrNotFileBacked) {
		t.Errorf("CreateBackup() error = %v, want ErrNotFileBacked", err)
	}
	if _, err := mgr.ListBackups(); !errors.Is(err, ErrNotFileBacked) {
		t.Errorf("ListBackups() error = %v, want ErrNotFileBacked", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
	}{
		{"20240415-0930", true},
		{"20240415-093012", true},
		{"20240415-093012-2", true},
		{"20240415", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if _, ok := parseTimestamp(tt.in); ok != tt.wantOK {
			t.Errorf("parseTimestamp(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
	}
}
