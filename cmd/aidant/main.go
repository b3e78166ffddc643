package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/cli/auth"
	"github.com/julianstephens/aidant/internal/cli/backups"
	"github.com/julianstephens/aidant/internal/cli/badges"
	"github.com/julianstephens/aidant/internal/cli/beneficiaries"
	"github.com/julianstephens/aidant/internal/cli/creneaux"
	"github.com/julianstephens/aidant/internal/cli/docs"
	"github.com/julianstephens/aidant/internal/cli/interventions"
	"github.com/julianstephens/aidant/internal/cli/notes"
	"github.com/julianstephens/aidant/internal/cli/profile"
	"github.com/julianstephens/aidant/internal/cli/settings"
	"github.com/julianstephens/aidant/internal/cli/stats"
	"github.com/julianstephens/aidant/internal/cli/system"
	"github.com/julianstephens/aidant/internal/cli/transmissions"
	"github.com/julianstephens/aidant/internal/config"
	"github.com/julianstephens/aidant/internal/constants"
	apperrors "github.com/julianstephens/aidant/internal/errors"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Fichier de données (.db ou .json) ou chaîne de connexion PostgreSQL sans mot de passe. Le mot de passe vient de AIDANT_DB_CONNECTION, de .pgpass ou du trousseau." type:"string" env:"AIDANT_CONFIG" default:"~/.config/aidant/aidant.db"`
	Debug   bool   `help:"Afficher les journaux de débogage." env:"AIDANT_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialiser le stockage aidant."`
	Reset    system.ResetCmd    `cmd:"" help:"Effacer toutes les données (comptes et réglages conservés)."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Lancer les contrôles de santé."`
	Validate system.ValidateCmd `cmd:"" help:"Détecter les conflits de planning."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Commandes de diagnostic."`
	Tui      system.TuiCmd      `cmd:"" help:"Lancer l'interface interactive." default:"1"`

	Register auth.RegisterCmd `cmd:"" help:"Créer un compte local."`
	Login    auth.LoginCmd    `cmd:"" help:"Ouvrir une session."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Fermer la session."`
	Whoami   auth.WhoamiCmd   `cmd:"" help:"Afficher la session en cours."`

	Profile struct {
		Show     profile.ShowCmd     `cmd:"" help:"Afficher le profil." default:"1"`
		Set      profile.SetCmd      `cmd:"" help:"Modifier le profil."`
		Photo    profile.PhotoCmd    `cmd:"" help:"Définir la photo du profil."`
		Complete profile.CompleteCmd `cmd:"" help:"Terminer l'inscription."`
		Diploma  struct {
			Add    profile.DiplomaAddCmd    `cmd:"" help:"Ajouter un diplôme."`
			Remove profile.DiplomaRemoveCmd `cmd:"" help:"Retirer un diplôme."`
		} `cmd:"" help:"Gérer les diplômes."`
		Dispo struct {
			Add    profile.AvailabilityAddCmd    `cmd:"" help:"Ajouter une disponibilité."`
			Remove profile.AvailabilityRemoveCmd `cmd:"" help:"Retirer une disponibilité."`
		} `cmd:"" help:"Gérer les disponibilités."`
	} `cmd:"" help:"Gérer votre profil professionnel."`

	Beneficiary struct {
		Add    beneficiaries.AddCmd    `cmd:"" help:"Ajouter un bénéficiaire."`
		Edit   beneficiaries.EditCmd   `cmd:"" help:"Modifier un bénéficiaire."`
		Delete beneficiaries.DeleteCmd `cmd:"" help:"Supprimer un bénéficiaire."`
		List   beneficiaries.ListCmd   `cmd:"" help:"Lister les bénéficiaires." default:"1"`
		Show   beneficiaries.ShowCmd   `cmd:"" help:"Afficher la fiche d'un bénéficiaire."`
		Slot   struct {
			Add    beneficiaries.SlotAddCmd    `cmd:"" help:"Ajouter un créneau habituel."`
			Remove beneficiaries.SlotRemoveCmd `cmd:"" help:"Retirer un créneau habituel."`
		} `cmd:"" help:"Gérer les créneaux habituels."`
	} `cmd:"" aliases:"benef" help:"Gérer les bénéficiaires."`

	Intervention struct {
		Add      interventions.AddCmd      `cmd:"" help:"Planifier une intervention."`
		List     interventions.ListCmd     `cmd:"" help:"Lister les interventions." default:"1"`
		Status   interventions.StatusCmd   `cmd:"" help:"Changer le statut d'une intervention."`
		Delete   interventions.DeleteCmd   `cmd:"" help:"Supprimer une intervention."`
		Generate interventions.GenerateCmd `cmd:"" help:"Générer la semaine depuis les créneaux habituels."`
	} `cmd:"" help:"Gérer le planning."`

	Creneau struct {
		Add    creneaux.AddCmd    `cmd:"" help:"Ajouter un créneau."`
		List   creneaux.ListCmd   `cmd:"" help:"Lister les créneaux." default:"1"`
		Delete creneaux.DeleteCmd `cmd:"" help:"Supprimer un créneau."`
	} `cmd:"" help:"Gérer les créneaux ponctuels."`

	Transmission struct {
		Add    transmissions.AddCmd    `cmd:"" help:"Écrire une transmission."`
		List   transmissions.ListCmd   `cmd:"" help:"Lister les transmissions." default:"1"`
		Last   transmissions.LastCmd   `cmd:"" help:"Dernière transmission d'un bénéficiaire."`
		Rate   transmissions.RateCmd   `cmd:"" help:"Changer une évaluation."`
		Delete transmissions.DeleteCmd `cmd:"" help:"Supprimer une transmission."`
	} `cmd:"" help:"Gérer le cahier de liaison."`

	Note struct {
		Add    notes.AddCmd    `cmd:"" help:"Ajouter une note."`
		List   notes.ListCmd   `cmd:"" help:"Lister les notes." default:"1"`
		Delete notes.DeleteCmd `cmd:"" help:"Supprimer une note."`
	} `cmd:"" help:"Gérer les notes."`

	Badge struct {
		List   badges.ListCmd   `cmd:"" help:"Lister les badges." default:"1"`
		Unlock badges.UnlockCmd `cmd:"" help:"Débloquer un badge."`
		Lock   badges.LockCmd   `cmd:"" help:"Verrouiller un badge."`
	} `cmd:"" help:"Gérer les badges."`

	Stats    stats.StatsCmd       `cmd:"" help:"Tableau de bord du mois."`
	Estimate stats.EstimateCmd    `cmd:"" help:"Estimation pour un bénéficiaire."`
	Settings settings.SettingsCmd `cmd:"" help:"Gérer les réglages."`

	Doc struct {
		Quote    docs.QuoteCmd    `cmd:"" help:"Générer un devis PDF."`
		Contract docs.ContractCmd `cmd:"" help:"Générer un contrat de travail PDF."`
	} `cmd:"" help:"Générer des documents."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Créer une sauvegarde." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"Lister les sauvegardes."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restaurer une sauvegarde."`
	} `cmd:"" help:"Gérer les sauvegardes."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Enregistrer la chaîne de connexion PostgreSQL."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Afficher la chaîne de connexion (masquée)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Supprimer la chaîne de connexion."`
		Status system.KeyringStatusCmd `cmd:"" help:"Vérifier le trousseau du système."`
	} `cmd:"" help:"Gérer les identifiants dans le trousseau du système."`
}

func main() {
	config.LoadEnvFiles(".env", constants.DefaultEnvFile)

	ctx := kong.Parse(&CLI,
		kong.Name("aidant"),
		kong.Description("Carnet de bord de l'aide à domicile : bénéficiaires, planning, transmissions, devis et contrats."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg := config.Load()
	cfg.Path = CLI.Config
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.ConfigDir(cfg.Path)}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		apperrors.Fatal(err)
	}
}

// run owns the backend for the lifetime of the command, so it is closed on every path.
func run(ctx *kong.Context, cfg config.Config) error {
	backend, err := cli.NewBackend(cfg.Path)
	if err != nil {
		return err
	}
	defer backend.Close()

	command := strings.Fields(ctx.Command())[0]
	state, err := openState(command, backend)
	if err != nil {
		return err
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", backend.GetConfigPath())
	return ctx.Run(&cli.Context{
		Backend: backend,
		Config:  cfg,
		State:   state,
	})
}

// openState loads the stores a command needs. Init and keyring manage storage
// themselves; doctor reports load errors instead of failing.
func openState(command string, backend storage.Backend) (*store.State, error) {
	switch command {
	case "init", "keyring":
		return nil, nil
	case "doctor":
		if backend.Load() != nil {
			return nil, nil
		}
		return store.NewState(backend), nil
	default:
		if err := backend.Load(); err != nil {
			return nil, err
		}
		return store.NewState(backend), nil
	}
}
