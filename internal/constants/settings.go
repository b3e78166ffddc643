package constants

const (
	// Persisted collection keys
	KeyBeneficiaries = "aidant.beneficiaires"
	KeyInterventions = "aidant.interventions"
	KeyCreneaux      = "aidant.creneaux"
	KeyTransmissions = "aidant.transmissions"
	KeyNotes         = "aidant.notes"
	KeyBadges        = "aidant.badges"
	KeyProfile       = "aidant.profil"
	KeyUsers         = "aidant.users"
	KeySession       = "aidant.session"
	KeySettings      = "aidant.settings"

	// SchemaVersion is written in every persisted envelope
	SchemaVersion = 1

	// Default Settings Values
	DefaultTimezone      = "Local"
	DefaultWeeksPerMonth = 4.0
	DefaultCurrency      = "€"
	DefaultQuoteValidity = 30 // days

	// Paid-leave allowance added on top of CESU hourly wages
	PaidLeaveRate = 0.10

	// MaxPhotoBytes bounds profile photos stored inline
	MaxPhotoBytes = 2 << 20
)
