package documents

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

func sampleProfile() models.Profile {
	return models.Profile{
		Prenom:          "Marie",
		Nom:             "Durand",
		Email:           "marie@example.fr",
		Adresse:         models.Address{Rue: "5 rue Victor Hugo", CodePostal: "69002", Ville: "Lyon"},
		NumeroCesu:      "123456789",
		TarifHoraireNet: 11,
		IndemniteKm:     0.3,
	}
}

func sampleBeneficiary() models.Beneficiary {
	return models.Beneficiary{
		Civilite: "Mme",
		Prenom:   "Hélène",
		Nom:      "Lefèvre-Durand",
		Adresse:  models.Address{Rue: "12 rue des Lilas", CodePostal: "69003", Ville: "Lyon"},
		Contrat:  models.ContractTerms{TauxHoraireNet: 12, KmParVisite: 5, DateDebut: "2024-05-02"},
		CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
			{Jour: "jeudi", HeureDebut: "14:00", HeureFin: "15:30"},
			{Jour: "vendredi", HeureDebut: "10:00", HeureFin: "09:00"},
		},
		Statut: constants.StatusActif,
	}
}

func TestSlugAndFilenames(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lefèvre", "lefevre"},
		{"  Éléonore  d'Arc ", "eleonore-d-arc"},
		{"Ça va?!", "ca-va"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	q := QuoteData{Client: Party{Prenom: "Hélène", Nom: "Lefèvre-Durand"}}
	if got, want := QuoteFilename(q), "devis-lefevre-durand-helene.pdf"; got != want {
		t.Errorf("QuoteFilename() = %q, want %q", got, want)
	}
	c := ContractData{Employeur: Party{Prenom: "Henri", Nom: "Dubois"}}
	if got, want := ContractFilename(c), "contrat-dubois-henri.pdf"; got != want {
		t.Errorf("ContractFilename() = %q, want %q", got, want)
	}
	if got, want := ContractFilename(ContractData{}), "contrat.pdf"; got != want {
		t.Errorf("ContractFilename(empty) = %q, want %q", got, want)
	}
}

func TestNewQuoteData(t *testing.T) {
	settings := models.Settings{SemainesParMois: 4, Devise: "€"}
	d := NewQuoteData(sampleProfile(), sampleBeneficiary(), settings)

	if !strings.HasPrefix(d.Numero, "DEV-") {
		t.Errorf("Numero = %q", d.Numero)
	}
	want := []QuoteLine{
		{Libelle: "Aide à domicile, lundi 09:00-12:00", HeuresSemaine: 3, TauxHoraire: 12, MontantSemaine: 36, MontantMois: 144},
		{Libelle: "Aide à domicile, jeudi 14:00-15:30", HeuresSemaine: 1.5, TauxHoraire: 12, MontantSemaine: 18, MontantMois: 72},
	}
	if diff := cmp.Diff(want, d.Lignes); diff != "" {
		t.Errorf("Lignes mismatch (-want +got):\n%s", diff)
	}
	// 2 visits x 5 km x 0.30 (profile fallback) = 3 per week, 12 per month
	if d.Indemnites != 12 {
		t.Errorf("Indemnites = %v, want 12", d.Indemnites)
	}
	if d.TotalSemaine != 57 || d.TotalMois != 228 {
		t.Errorf("totals = %v / %v, want 57 / 228", d.TotalSemaine, d.TotalMois)
	}
	if d.Client.Adresse != "12 rue des Lilas, 69003 Lyon" {
		t.Errorf("Client.Adresse = %q", d.Client.Adresse)
	}
	if d.ValiditeJours != constants.DefaultQuoteValidity {
		t.Errorf("ValiditeJours = %d", d.ValiditeJours)
	}
}

func TestNewContractData(t *testing.T) {
	d := NewContractData(sampleProfile(), sampleBeneficiary())
	if d.DateDebut != "2024-05-02" {
		t.Errorf("DateDebut = %q", d.DateDebut)
	}
	if len(d.Planning) != 2 {
		t.Errorf("Planning keeps invalid slots: %+v", d.Planning)
	}
	if d.HeuresSemaine != 4.5 || d.TauxHoraireNet != 12 || d.IndemniteKm != 0.3 {
		t.Errorf("ContractData = %+v", d)
	}
	if d.Employeur.FullName() != "Mme Hélène Lefèvre-Durand" || d.Salarie.Identifiant != "123456789" {
		t.Errorf("parties = %+v / %+v", d.Employeur, d.Salarie)
	}
}

func TestQuotePDF(t *testing.T) {
	d := NewQuoteData(sampleProfile(), sampleBeneficiary(), models.Settings{SemainesParMois: 4, Devise: "€"})
	d.Date = time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	out, err := QuotePDF(d)
	if err != nil {
		t.Fatalf("QuotePDF() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("QuotePDF() output is not a PDF: %q", out[:min(len(out), 8)])
	}
}

func TestQuotePDF_Empty(t *testing.T) {
	out, err := QuotePDF(QuoteData{Date: time.Now()})
	if err != nil {
		t.Fatalf("QuotePDF(empty) error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("QuotePDF(empty) output is not a PDF")
	}
}

func TestContractPDF_MultiPage(t *testing.T) {
	d := NewContractData(sampleProfile(), sampleBeneficiary())
	for i := 0; i < 40; i++ {
		d.Missions = append(d.Missions, "Mission complémentaire détaillée pour forcer un saut de page")
	}
	out, err := ContractPDF(d)
	if err != nil {
		t.Fatalf("ContractPDF() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("ContractPDF() output is not a PDF")
	}
	if bytes.Count(out, []byte("/Type /Page\n")) < 2 {
		t.Error("expected the contract to span several pages")
	}
}
