package documents

import (
	"fmt"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type ContractData struct {
	Employeur      Party // the care recipient
	Salarie        Party // the caregiver
	DateDebut      string
	Planning       []models.WeeklySlot
	HeuresSemaine  float64
	TauxHoraireNet float64
	IndemniteKm    float64
	Devise         string
	Missions       []string
	PeriodeEssai   string
	Lieu           string
	DateSignature  time.Time
}

// NewContractData assembles a CESU employment contract between the
// beneficiary (employer) and the caregiver (employee).
func NewContractData(profile models.Profile, b models.Beneficiary) ContractData {
	rate := b.Contrat.TauxHoraireNet
	if rate <= 0 {
		rate = profile.TarifHoraireNet
	}
	km := b.Contrat.IndemniteKm
	if km <= 0 {
		km = profile.IndemniteKm
	}
	start := b.Contrat.DateDebut
	if start == "" {
		start = time.Now().Format(constants.DateFormat)
	}

	var planning []models.WeeklySlot
	for _, s := range b.CreneauxHabituels {
		if utils.SlotMinutes(s) > 0 {
			planning = append(planning, s)
		}
	}

	return ContractData{
		Employeur: Party{
			Civilite:    b.Civilite,
			Prenom:      b.Prenom,
			Nom:         b.Nom,
			Adresse:     formatAddress(b.Adresse),
			Telephone:   b.Telephone,
			Identifiant: b.Contrat.NumeroCesu,
		},
		Salarie: Party{
			Prenom:      profile.Prenom,
			Nom:         profile.Nom,
			Adresse:     formatAddress(profile.Adresse),
			Telephone:   profile.Telephone,
			Email:       profile.Email,
			Identifiant: profile.NumeroCesu,
		},
		DateDebut:      start,
		Planning:       planning,
		HeuresSemaine:  utils.Round2(utils.WeeklyHours(planning)),
		TauxHoraireNet: rate,
		IndemniteKm:    km,
		Devise:         constants.DefaultCurrency,
		Missions: []string{
			"Aide à la toilette et à l'habillage",
			"Préparation et aide à la prise des repas",
			"Entretien courant du logement et du linge",
			"Courses et accompagnement aux rendez-vous",
			"Stimulation et compagnie",
		},
		PeriodeEssai:  "un mois",
		Lieu:          b.Adresse.Ville,
		DateSignature: time.Now(),
	}
}

// ContractFilename returns contrat-<nom>-<prenom>.pdf for the employer, ASCII-folded.
func ContractFilename(d ContractData) string {
	return filename("contrat", d.Employeur.Nom, d.Employeur.Prenom)
}

// ContractPDF renders the employment contract.
func ContractPDF(d ContractData) ([]byte, error) {
	money := func(v float64) string { return utils.FormatEuros(v, d.Devise) }

	p := newPage("Contrat de travail CESU")
	p.title("CONTRAT DE TRAVAIL À DURÉE INDÉTERMINÉE")
	p.text("Emploi à domicile rémunéré par chèque emploi service universel (CESU), " +
		"régi par la convention collective nationale des particuliers employeurs et de l'emploi à domicile.")

	p.party("Entre l'employeur", d.Employeur, "N° CESU")
	p.party("Et le salarié", d.Salarie, "N° CESU")

	p.heading("Article 1. Date d'effet et période d'essai")
	p.text(fmt.Sprintf("Le présent contrat prend effet le %s. Il est conclu pour une durée indéterminée "+
		"avec une période d'essai de %s.", utils.FormatDisplayDate(d.DateDebut), d.PeriodeEssai))

	p.heading("Article 2. Missions")
	for _, m := range d.Missions {
		p.text("- " + m)
	}

	p.heading("Article 3. Horaires de travail")
	p.text(fmt.Sprintf("La durée hebdomadaire de travail est de %s, répartie comme suit :",
		utils.FormatMinutes(int(d.HeuresSemaine*60+0.5))))
	rows := make([][]string, 0, len(d.Planning))
	for _, s := range d.Planning {
		rows = append(rows, []string{
			string(s.Jour),
			s.HeureDebut,
			s.HeureFin,
			utils.FormatMinutes(utils.SlotMinutes(s)),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"à définir", "", "", ""})
	}
	p.table(
		[]string{"Jour", "Début", "Fin", "Durée"},
		[]float64{55, 40, 40, 39},
		[]string{"L", "C", "C", "R"},
		rows,
	)

	p.heading("Article 4. Rémunération")
	leave := utils.Round2(d.TauxHoraireNet * constants.PaidLeaveRate)
	p.text(fmt.Sprintf("Le salaire horaire net est fixé à %s. Conformément au dispositif CESU, il est majoré "+
		"de %.0f %% au titre des congés payés, soit %s de l'heure (%s net congés payés inclus).",
		money(d.TauxHoraireNet), constants.PaidLeaveRate*100, money(leave), money(utils.Round2(d.TauxHoraireNet+leave))))
	if d.IndemniteKm > 0 {
		p.text(fmt.Sprintf("Les déplacements effectués pour le compte de l'employeur sont indemnisés à %s par kilomètre.",
			money(d.IndemniteKm)))
	}

	p.heading("Article 5. Déclaration")
	p.text("L'employeur déclare chaque mois les heures effectuées auprès du centre national Cesu, " +
		"qui calcule et prélève les cotisations sociales et adresse une attestation d'emploi au salarié.")

	p.pdf.Ln(4)
	place := d.Lieu
	if place == "" {
		place = "...................."
	}
	p.text(fmt.Sprintf("Fait à %s, le %s, en deux exemplaires.", place, d.DateSignature.Format(constants.DisplayDateFormat)))
	p.signatures("L'employeur", "Le salarié")
	return p.bytes()
}
