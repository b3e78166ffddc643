package constants

import tea "github.com/charmbracelet/bubbletea"

// SessionState represents the current screen of the TUI application
type SessionState int

// BeneficiaryStatus represents the follow-up status of a care recipient
type BeneficiaryStatus string

// InterventionStatus represents the lifecycle of a scheduled visit
type InterventionStatus string

// Weekday is a French weekday name as stored in recurring slots
type Weekday string

// Rating is the three-valued assessment used in care logs
type Rating string

// NoteCategory classifies a free-form note
type NoteCategory string

// NoteImportance ranks a note
type NoteImportance string

// ConflictType represents the type of schedule conflict
type ConflictType string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "aidant"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/aidant/aidant.db"
	DefaultEnvFile     = "~/.config/aidant/aidant.env"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"
	BackupPrefix  = "aidant-"

	// Beneficiary statuses
	StatusActif   BeneficiaryStatus = "actif"
	StatusPause   BeneficiaryStatus = "pause"
	StatusTermine BeneficiaryStatus = "termine"

	// Intervention statuses
	InterventionPlanifie InterventionStatus = "planifie"
	InterventionEffectue InterventionStatus = "effectue"
	InterventionAnnule   InterventionStatus = "annule"

	// Ratings
	RatingBien    Rating = "bien"
	RatingMoyen   Rating = "moyen"
	RatingMauvais Rating = "mauvais"

	// Note categories
	CategorieSante         NoteCategory   = "sante"
	CategorieComportement  NoteCategory   = "comportement"
	CategorieFamille       NoteCategory   = "famille"
	CategorieAdministratif NoteCategory   = "administratif"
	ImportanceNormale      NoteImportance = "normale"
	ImportanceImportante   NoteImportance = "importante"
	ImportanceUrgente      NoteImportance = "urgente"

	// Conflict Types
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictOverlappingSlots  ConflictType = "overlapping_slots"
	ConflictDoubleBooking     ConflictType = "double_booking"
	ConflictInvalidWeekday    ConflictType = "invalid_weekday"
	ConflictInterventionClash ConflictType = "intervention_clash"

	// Session States
	StateLogin SessionState = iota
	StateOnboarding
	StateDashboard
	StateBeneficiaries
	StatePlanning
	StateTransmissions
	StateNotes
	StateBadges
	StateProfile
	StateEditing
	StateConfirmDelete
)

// Weekdays lists the recurring-slot day names in calendar order (Monday first).
var Weekdays = []Weekday{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

// TransmissionTasks is the fixed vocabulary offered for completed tasks.
var TransmissionTasks = []string{
	"toilette",
	"repas",
	"courses",
	"menage",
	"linge",
	"medicaments",
	"promenade",
	"stimulation",
	"rendez-vous",
}
