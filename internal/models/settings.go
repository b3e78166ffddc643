package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string  `json:"timezone"`        // IANA timezone name, or "Local" for the system timezone
	SemainesParMois float64 `json:"semainesParMois"` // weekly -> monthly multiplier for estimates
	Devise          string  `json:"devise"`          // currency symbol used in output and documents
}
