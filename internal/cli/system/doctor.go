package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/aidant/internal/backup"
	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/keyring"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/storage/postgres"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type DoctorCmd struct {
	Repair bool `help:"Rewrite damaged collections with the records that could be read (a backup is taken first)."`
}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// warnOnly checks print ⚠ instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Collections", run: checkCollections, needsDB: true},
	{name: "Stored records", run: checkDamage, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Schedule conflicts", run: checkValidation, warnOnly: true, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "Keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Diagnostic en cours...")
	fmt.Println()

	if cmd.Repair {
		if err := repairDamage(ctx); err != nil {
			return err
		}
	}

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostic terminé avec des erreurs.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("Tous les contrôles sont passés !")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Backend.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Backend.Keys(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	versioned, ok := ctx.Backend.(storage.Versioned)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}

// checkCollections verifies that every stored collection is valid JSON.
func checkCollections(ctx *cli.Context) error {
	keys, err := ctx.Backend.Keys()
	if err != nil {
		return err
	}
	var bad []string
	for _, key := range keys {
		data, err := ctx.Backend.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !json.Valid(data) {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("malformed collections (defaults will be used): %v", bad)
	}
	return nil
}

// checkDamage reports collections that loaded with unreadable records. Their
// stores refuse writes until repaired.
func checkDamage(ctx *cli.Context) error {
	if ctx.State == nil {
		return nil
	}
	damage := ctx.State.Damaged()
	if len(damage) == 0 {
		return nil
	}
	parts := make([]string, len(damage))
	for i, d := range damage {
		parts[i] = d.String()
	}
	return fmt.Errorf("%s; writes are disabled, run 'aidant doctor --repair' or restore a backup", strings.Join(parts, ", "))
}

func repairDamage(ctx *cli.Context) error {
	if ctx.State == nil || len(ctx.State.Damaged()) == 0 {
		fmt.Println("Aucune donnée à réparer.")
		fmt.Println()
		return nil
	}

	mgr := backup.NewManager(ctx.Backend.GetConfigPath())
	path, err := mgr.CreateBackup()
	switch {
	case errors.Is(err, backup.ErrNotFileBacked):
		// Server databases keep the previous value in kv_history.
	case err != nil:
		return fmt.Errorf("failed to back up before repair: %w", err)
	default:
		fmt.Printf("✓ Sauvegarde créée : %s\n", path)
	}

	repaired, err := ctx.State.Repair()
	for _, d := range repaired {
		fmt.Printf("✓ Réparé : %s\n", d)
	}
	if err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Backend.(*postgres.Store); ok {
		// Server databases are backed up with pg_dump
		return nil
	}
	mgr := backup.NewManager(ctx.Backend.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		if errors.Is(err, backup.ErrNotFileBacked) {
			return nil
		}
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	latest := backups[0].Timestamp
	if age := time.Since(latest); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if ctx.State == nil {
		return nil
	}
	v := validation.New()
	beneficiaries := ctx.State.Beneficiaries.List()
	schedule := v.ValidateSchedule(beneficiaries)
	planning := v.ValidateInterventions(ctx.State.Interventions.List(), beneficiaries)

	n := len(schedule.Conflicts) + len(planning.Conflicts)
	if n > 0 {
		return fmt.Errorf("%d conflict(s) found, run 'aidant validate' for details", n)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if ctx.State == nil {
		return nil
	}
	tz := ctx.State.Settings.Get().Timezone
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("invalid timezone setting: %s", tz)
	}
	now, err := utils.NowInTimezone(tz)
	if err != nil {
		return err
	}
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring unavailable, PostgreSQL passwords must come from the environment")
	}
	return nil
}
