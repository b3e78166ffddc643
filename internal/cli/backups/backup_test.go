package backups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/aidant/internal/backup"
	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/config"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage/sqlite"
	"github.com/julianstephens/aidant/internal/store"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	backend := sqlite.NewStore(dbPath)
	if err := backend.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	return &cli.Context{
		Backend: backend,
		State:   store.NewState(backend),
		Config:  config.Config{Path: dbPath},
	}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if _, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont"}); err != nil {
		t.Fatal(err)
	}
	mgr := backup.NewManager(dbPath)
	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Henri", Nom: "Dubois"}); err != nil {
		t.Fatal(err)
	}

	// Restore by bare file name, resolved inside the backup directory.
	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(snapshot), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	reopened := sqlite.NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reopen restored database: %v", err)
	}
	defer reopened.Close()
	if n := store.NewState(reopened).Beneficiaries.Count(); n != 1 {
		t.Errorf("expected 1 beneficiary after restore, got %d", n)
	}
}

func TestBackupRestore_Cancelled(t *testing.T) {
	ctx, dbPath := setupTestDB(t)
	snapshot, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("non\n")
	if err := (&BackupRestoreCmd{BackupFile: snapshot}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore returned error: %v", err)
	}
	after, err := os.Stat(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("database should be untouched after a cancelled restore")
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "aidant-missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}
