package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/config"
	"github.com/julianstephens/aidant/internal/lockfile"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/store"
)

type InitCmd struct {
	Force  bool   `help:"Supprimer la base existante avant l'initialisation."`
	Demo   bool   `help:"Remplir la base avec des données de démonstration."`
	Source string `help:"Base source (fichier ou chaîne de connexion PostgreSQL) dont copier les données."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if holder, ok := lockfile.Check(ctx.DataDir()); ok {
			return fmt.Errorf("%w (pid %d) : fermez l'interface avant de réinitialiser", lockfile.ErrLocked, holder.PID)
		}

		dbPath := ctx.Backend.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(config.ExpandPath(c.Source))
			if err == nil && absSource == dbPath {
				return fmt.Errorf("--force impossible quand la source et la destination sont identiques : %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Backend.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Base existante supprimée : %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Backend.Init(); err != nil {
		return err
	}
	fmt.Printf("✓ Stockage aidant initialisé : %s\n", ctx.Backend.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copie des données depuis : %s\n", c.Source)
		n, err := copyKeys(ctx.Backend, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("✓ %d collection(s) copiée(s)\n", n)
	}

	ctx.State = store.NewState(ctx.Backend)

	if c.Demo {
		if err := store.SeedDemo(ctx.State, ctx.Today()); err != nil {
			return err
		}
		fmt.Println("✓ Données de démonstration ajoutées")
	}
	return nil
}

// copyKeys copies every collection of the source backend into dst.
func copyKeys(dst storage.Backend, source string) (int, error) {
	src, err := cli.NewBackend(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := dst.Put(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  %s\n", key)
	}
	return len(keys), nil
}

// ResetCmd empties every record collection. Accounts and settings are kept.
type ResetCmd struct {
	Yes bool `short:"y" help:"Ne pas demander de confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if !c.Yes {
		confirmed, err := ctx.Confirm("Effacer tous les bénéficiaires, interventions, transmissions, notes et badges ?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Réinitialisation annulée.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.State.ResetRecords(); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	fmt.Println("✓ Données effacées (une sauvegarde automatique a été tentée)")
	return nil
}
