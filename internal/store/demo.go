package store

import (
	"fmt"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

// SeedDemo fills an empty state with two sample care recipients, this week's
// planning, a care log and a few notes. It refuses to touch existing records.
func SeedDemo(s *State, today time.Time) error {
	if s.Beneficiaries.Count() > 0 {
		return fmt.Errorf("des bénéficiaires existent déjà, données de démonstration ignorées")
	}

	samples := []models.Beneficiary{
		{
			Civilite:       "Mme",
			Prenom:         "Jeanne",
			Nom:            "Martin",
			DateNaissance:  "1938-05-12",
			Adresse:        models.Address{Rue: "12 rue des Lilas", CodePostal: "69003", Ville: "Lyon"},
			Telephone:      "04 78 00 00 01",
			NotesAcces:     "Digicode 4512B, 2e étage gauche",
			ContactUrgence: models.EmergencyContact{Nom: "Paul Martin", Lien: "fils", Telephone: "06 00 00 00 01"},
			Contrat:        models.ContractTerms{TauxHoraireNet: 12.5, IndemniteKm: 0.4, KmParVisite: 6, DateDebut: today.AddDate(0, -3, 0).Format(constants.DateFormat)},
			Sante:          models.HealthNotes{Pathologies: "Arthrose", Mobilite: "Déambulateur", Allergies: "Pénicilline"},
			CreneauxHabituels: []models.WeeklySlot{
				{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
				{Jour: "mercredi", HeureDebut: "09:00", HeureFin: "12:00"},
				{Jour: "vendredi", HeureDebut: "09:00", HeureFin: "12:00"},
			},
			Statut: constants.StatusActif,
		},
		{
			Civilite:       "M.",
			Prenom:         "Henri",
			Nom:            "Dubois",
			DateNaissance:  "1941-11-03",
			Adresse:        models.Address{Rue: "3 place Bellecour", CodePostal: "69002", Ville: "Lyon"},
			Telephone:      "04 78 00 00 02",
			NotesAcces:     "Clé dans la boîte sécurisée, code 1940",
			ContactUrgence: models.EmergencyContact{Nom: "Claire Dubois", Lien: "fille", Telephone: "06 00 00 00 02"},
			Contrat:        models.ContractTerms{TauxHoraireNet: 13, IndemniteKm: 0.4, KmParVisite: 4},
			Sante:          models.HealthNotes{Pathologies: "Diabète de type 2", Traitements: "Metformine matin et soir"},
			CreneauxHabituels: []models.WeeklySlot{
				{Jour: "mardi", HeureDebut: "14:00", HeureFin: "16:30"},
				{Jour: "jeudi", HeureDebut: "14:00", HeureFin: "16:30"},
			},
			Statut: constants.StatusActif,
		},
	}

	var created []models.Beneficiary
	for _, b := range samples {
		added, err := s.Beneficiaries.Add(b)
		if err != nil {
			return err
		}
		created = append(created, added)
	}

	if _, err := s.Interventions.GenerateWeek(today, created); err != nil {
		return err
	}

	bien, moyen := constants.RatingBien, constants.RatingMoyen
	date := today.Format(constants.DateFormat)
	if _, err := s.Transmissions.Add(models.Transmission{
		BeneficiaireID:  created[0].ID,
		Date:            date,
		Heure:           "12:00",
		Humeur:          &bien,
		Appetit:         &moyen,
		Mobilite:        &bien,
		TachesRealisees: []string{"toilette", "repas", "promenade"},
		Observations:    "Bonne matinée, petite promenade au parc.",
		MessageFamille:  "Penser à renouveler l'ordonnance.",
	}); err != nil {
		return err
	}

	notes := []models.Note{
		{BeneficiaireID: created[0].ID, Date: date, Categorie: constants.CategorieSante, Contenu: "Rendez-vous kiné jeudi 10h.", Importance: constants.ImportanceImportante},
		{BeneficiaireID: created[1].ID, Date: date, Categorie: constants.CategorieFamille, Contenu: "Sa fille passe le dimanche.", Importance: constants.ImportanceNormale},
	}
	for _, n := range notes {
		if _, err := s.Notes.Add(n); err != nil {
			return err
		}
	}
	return nil
}
