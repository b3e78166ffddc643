package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/aidant/internal/backup"
	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/lockfile"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Backend.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		if errors.Is(err, backup.ErrNotFileBacked) {
			return fmt.Errorf("sauvegarde indisponible pour ce stockage, utilisez pg_dump pour PostgreSQL")
		}
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Sauvegarde créée : %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Backend.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("Aucune sauvegarde.")
		fmt.Printf("Dossier des sauvegardes : %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Sauvegardes disponibles (%d, les %d plus récentes sont conservées) :\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("02/01/2006 15:04:05")
		filename := filepath.Base(b.Path)
		fmt.Printf("  %s  %s  (%.1f Ko)\n", timestamp, filename, sizeKB)
	}
	fmt.Printf("\nDossier des sauvegardes : %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Chemin ou nom du fichier de sauvegarde."`
	Yes        bool   `short:"y" help:"Ne pas demander de confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Backend.GetConfigPath())

	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if holder, ok := lockfile.Check(ctx.DataDir()); ok {
		return fmt.Errorf("%w (pid %d) : fermez l'interface avant de restaurer", lockfile.ErrLocked, holder.PID)
	}

	if !c.Yes {
		fmt.Println("⚠️  ATTENTION : la base actuelle va être remplacée par la sauvegarde.")
		fmt.Println("Une sauvegarde de sécurité de la base actuelle sera créée avant la restauration.")
		fmt.Printf("\nRestaurer depuis : %s\n", backupPath)
		confirmed, err := ctx.Confirm("Continuer ?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restauration annulée.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Backend.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safetyPath, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Base restaurée avec succès !")
	if safetyPath != "" {
		fmt.Printf("  Ancienne base sauvegardée dans : %s\n", filepath.Base(safetyPath))
	}
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return "", fmt.Errorf("sauvegarde introuvable : %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		absPath, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}
	possiblePath := filepath.Join(backupDir, name)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("sauvegarde introuvable : essayé le dossier courant et %s", backupDir)
}
