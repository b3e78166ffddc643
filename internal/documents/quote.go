package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type QuoteLine struct {
	Libelle        string
	HeuresSemaine  float64
	TauxHoraire    float64
	MontantSemaine float64
	MontantMois    float64
}

type QuoteData struct {
	Numero        string
	Date          time.Time
	ValiditeJours int
	Devise        string
	Intervenant   Party
	Client        Party
	Lignes        []QuoteLine
	Indemnites    float64 // monthly mileage allowance
	TotalSemaine  float64
	TotalMois     float64
	Remarques     string
}

// NewQuoteData builds a quote from the caregiver profile and a beneficiary's
// recurring slots. The beneficiary's contract rate wins over the profile's.
func NewQuoteData(profile models.Profile, b models.Beneficiary, settings models.Settings) QuoteData {
	rate := b.Contrat.TauxHoraireNet
	if rate <= 0 {
		rate = profile.TarifHoraireNet
	}
	priced := b
	priced.Contrat.TauxHoraireNet = rate
	if priced.Contrat.IndemniteKm <= 0 {
		priced.Contrat.IndemniteKm = profile.IndemniteKm
	}
	est := utils.EstimateBeneficiary(priced, settings.SemainesParMois)
	weeks := settings.SemainesParMois
	if weeks <= 0 {
		weeks = constants.DefaultWeeksPerMonth
	}

	now := time.Now()
	data := QuoteData{
		Numero:        fmt.Sprintf("DEV-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8])),
		Date:          now,
		ValiditeJours: constants.DefaultQuoteValidity,
		Devise:        settings.Devise,
		Intervenant: Party{
			Prenom:      profile.Prenom,
			Nom:         profile.Nom,
			Adresse:     formatAddress(profile.Adresse),
			Telephone:   profile.Telephone,
			Email:       profile.Email,
			Identifiant: firstNonEmpty(profile.NumeroSiret, profile.NumeroCesu),
		},
		Client: Party{
			Civilite:    b.Civilite,
			Prenom:      b.Prenom,
			Nom:         b.Nom,
			Adresse:     formatAddress(b.Adresse),
			Telephone:   b.Telephone,
			Identifiant: b.Contrat.NumeroCesu,
		},
		Indemnites:   est.IndemnitesMois,
		TotalSemaine: utils.Round2(est.RevenuSemaine + est.IndemnitesSemaine),
		TotalMois:    est.TotalMois,
	}

	for _, slot := range b.CreneauxHabituels {
		minutes := utils.SlotMinutes(slot)
		if minutes == 0 {
			continue
		}
		hours := float64(minutes) / 60
		weekly := utils.Round2(hours * rate)
		data.Lignes = append(data.Lignes, QuoteLine{
			Libelle:        fmt.Sprintf("Aide à domicile, %s %s-%s", slot.Jour, slot.HeureDebut, slot.HeureFin),
			HeuresSemaine:  utils.Round2(hours),
			TauxHoraire:    rate,
			MontantSemaine: weekly,
			MontantMois:    utils.Round2(weekly * weeks),
		})
	}
	return data
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// QuoteFilename returns devis-<nom>-<prenom>.pdf, ASCII-folded.
func QuoteFilename(d QuoteData) string {
	return filename("devis", d.Client.Nom, d.Client.Prenom)
}

// QuotePDF renders the quote.
func QuotePDF(d QuoteData) ([]byte, error) {
	money := func(v float64) string { return utils.FormatEuros(v, d.Devise) }

	p := newPage("Devis " + d.Numero)
	p.title("DEVIS")
	p.field("Numéro", d.Numero)
	p.field("Date", d.Date.Format(constants.DisplayDateFormat))
	if d.ValiditeJours > 0 {
		p.field("Validité", fmt.Sprintf("%d jours (jusqu'au %s)", d.ValiditeJours,
			d.Date.AddDate(0, 0, d.ValiditeJours).Format(constants.DisplayDateFormat)))
	}

	p.party("Intervenant(e)", d.Intervenant, "SIRET / CESU")
	p.party("Client", d.Client, "N° CESU")

	p.heading("Prestations")
	rows := make([][]string, 0, len(d.Lignes))
	for _, l := range d.Lignes {
		rows = append(rows, []string{
			l.Libelle,
			fmt.Sprintf("%.2f h", l.HeuresSemaine),
			money(l.TauxHoraire),
			money(l.MontantSemaine),
			money(l.MontantMois),
		})
	}
	if d.Indemnites > 0 {
		rows = append(rows, []string{"Indemnités kilométriques", "", "", "", money(d.Indemnites)})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"Aucun créneau habituel renseigné", "", "", "", ""})
	}
	p.table(
		[]string{"Prestation", "Heures/sem.", "Taux net", "Par semaine", "Par mois"},
		[]float64{70, 22, 24, 29, 29},
		[]string{"L", "R", "R", "R", "R"},
		rows,
	)

	p.pdf.Ln(3)
	p.pdf.SetFont(fontFamily, "B", 11)
	p.pdf.CellFormat(0, 7, p.tr("Total hebdomadaire : "+money(d.TotalSemaine)), "", 1, "R", false, 0, "")
	p.pdf.CellFormat(0, 7, p.tr("Total mensuel estimé : "+money(d.TotalMois)), "", 1, "R", false, 0, "")

	p.heading("Conditions")
	p.text("Rémunération par chèque emploi service universel (CESU). Les montants indiqués sont des " +
		"salaires nets, hors cotisations sociales déclarées par l'employeur auprès du Cesu. " +
		"Le total mensuel est une estimation sur la base des créneaux habituels.")
	if d.Remarques != "" {
		p.text(d.Remarques)
	}

	p.signatures("L'intervenant(e)", "Le client")
	return p.bytes()
}
