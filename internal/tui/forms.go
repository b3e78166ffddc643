package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/validation"
)

const (
	authLogin    = "login"
	authRegister = "register"
)

// AuthFormModel backs the login / account creation screen.
type AuthFormModel struct {
	Mode     string
	Email    string
	Password string
	Prenom   string
	Nom      string
}

// ProfileFormModel backs the onboarding wizard and the profile editor.
type ProfileFormModel struct {
	Prenom        string
	Nom           string
	Telephone     string
	DateNaissance string
	Rue           string
	CodePostal    string
	Ville         string
	Zone          string
	Siret         string
	Cesu          string
	Experience    string
	Tarif         string
	IndemniteKm   string
	Competences   string
}

type BeneficiaryFormModel struct {
	Civilite    string
	Prenom      string
	Nom         string
	Telephone   string
	Rue         string
	CodePostal  string
	Ville       string
	NotesAcces  string
	Taux        string
	IndemniteKm string
	KmParVisite string
	Creneaux    string
	Statut      string
}

type NoteFormModel struct {
	BeneficiaireID int64
	Categorie      string
	Importance     string
	Contenu        string
}

type TransmissionFormModel struct {
	BeneficiaireID int64
	Humeur         string
	Appetit        string
	Sommeil        string
	Mobilite       string
	Hygiene        string
	Taches         []string
	Observations   string
	Incidents      string
	MessageFamille string
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s est obligatoire", label)
		}
		return nil
	}
}

func optional(field, tag string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return validation.Var(field, strings.TrimSpace(s), tag)
	}
}

// parseAmount reads a number written with a dot or a French decimal comma.
// An empty string is zero.
func parseAmount(label, s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s : nombre positif attendu", label)
	}
	return v, nil
}

func newAuthForm(f *AuthFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Bienvenue sur aidant").
				Options(
					huh.NewOption("Se connecter", authLogin),
					huh.NewOption("Créer un compte", authRegister),
				).
				Value(&f.Mode),
			huh.NewInput().
				Title("E-mail").
				Value(&f.Email).
				Validate(func(s string) error { return validation.Var("email", strings.TrimSpace(s), "required,email") }),
			huh.NewInput().
				Title("Mot de passe").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password).
				Validate(func(s string) error {
					if len(s) < 6 {
						return errors.New("6 caractères minimum")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().Title("Prénom").Value(&f.Prenom).Validate(required("le prénom")),
			huh.NewInput().Title("Nom").Value(&f.Nom).Validate(required("le nom")),
		).WithHideFunc(func() bool { return f.Mode != authRegister }),
	).WithShowHelp(true)
}

func newProfileFormModel(p models.Profile) *ProfileFormModel {
	f := &ProfileFormModel{
		Prenom:        p.Prenom,
		Nom:           p.Nom,
		Telephone:     p.Telephone,
		DateNaissance: p.DateNaissance,
		Rue:           p.Adresse.Rue,
		CodePostal:    p.Adresse.CodePostal,
		Ville:         p.Adresse.Ville,
		Zone:          p.ZoneIntervention,
		Siret:         p.NumeroSiret,
		Cesu:          p.NumeroCesu,
		Competences:   strings.Join(p.Competences, ", "),
	}
	if p.ExperienceAnnees > 0 {
		f.Experience = strconv.Itoa(p.ExperienceAnnees)
	}
	if p.TarifHoraireNet > 0 {
		f.Tarif = strconv.FormatFloat(p.TarifHoraireNet, 'f', -1, 64)
	}
	if p.IndemniteKm > 0 {
		f.IndemniteKm = strconv.FormatFloat(p.IndemniteKm, 'f', -1, 64)
	}
	return f
}

// apply copies the form into p. Numbers are checked here, field formats by validation.Struct.
func (f *ProfileFormModel) apply(p *models.Profile) error {
	tarif, err := parseAmount("Tarif horaire", f.Tarif)
	if err != nil {
		return err
	}
	km, err := parseAmount("Indemnité kilométrique", f.IndemniteKm)
	if err != nil {
		return err
	}
	experience := 0
	if s := strings.TrimSpace(f.Experience); s != "" {
		if experience, err = strconv.Atoi(s); err != nil || experience < 0 {
			return errors.New("Expérience : nombre d'années attendu")
		}
	}

	p.Prenom = strings.TrimSpace(f.Prenom)
	p.Nom = strings.TrimSpace(f.Nom)
	p.Telephone = strings.TrimSpace(f.Telephone)
	p.DateNaissance = strings.TrimSpace(f.DateNaissance)
	p.Adresse = models.Address{Rue: strings.TrimSpace(f.Rue), CodePostal: strings.TrimSpace(f.CodePostal), Ville: strings.TrimSpace(f.Ville)}
	p.ZoneIntervention = strings.TrimSpace(f.Zone)
	p.NumeroSiret = strings.TrimSpace(f.Siret)
	p.NumeroCesu = strings.TrimSpace(f.Cesu)
	p.ExperienceAnnees = experience
	p.TarifHoraireNet = tarif
	p.IndemniteKm = km
	p.Competences = splitList(f.Competences)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newProfileForm builds the four-step onboarding wizard. The same form edits the profile later.
func newProfileForm(f *ProfileFormModel, onboarding bool) *huh.Form {
	identity := "Votre identité"
	if onboarding {
		identity = "Étape 1/4 · Votre identité"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Prénom").Value(&f.Prenom).Validate(required("le prénom")),
			huh.NewInput().Title("Nom").Value(&f.Nom).Validate(required("le nom")),
			huh.NewInput().Title("Téléphone").Value(&f.Telephone),
			huh.NewInput().Title("Date de naissance (AAAA-MM-JJ)").Value(&f.DateNaissance).Validate(optional("dateNaissance", "date")),
		).Title(identity),
		huh.NewGroup(
			huh.NewInput().Title("Rue").Value(&f.Rue),
			huh.NewInput().Title("Code postal").Value(&f.CodePostal).Validate(optional("codePostal", "numeric,len=5")),
			huh.NewInput().Title("Ville").Value(&f.Ville),
			huh.NewInput().Title("Zone d'intervention").Value(&f.Zone),
		).Title(stepTitle(onboarding, 2, "Adresse et zone")),
		huh.NewGroup(
			huh.NewInput().Title("Numéro SIRET").Value(&f.Siret).Validate(optional("numeroSiret", "numeric,len=14")),
			huh.NewInput().Title("Numéro CESU").Value(&f.Cesu),
			huh.NewInput().Title("Années d'expérience").Value(&f.Experience),
			huh.NewInput().Title("Compétences (séparées par des virgules)").Value(&f.Competences),
		).Title(stepTitle(onboarding, 3, "Activité")),
		huh.NewGroup(
			huh.NewInput().Title("Tarif horaire net (€)").Value(&f.Tarif).Validate(func(s string) error {
				_, err := parseAmount("Tarif horaire", s)
				return err
			}),
			huh.NewInput().Title("Indemnité kilométrique (€/km)").Value(&f.IndemniteKm).Validate(func(s string) error {
				_, err := parseAmount("Indemnité kilométrique", s)
				return err
			}),
		).Title(stepTitle(onboarding, 4, "Tarifs")),
	).WithShowHelp(true)
}

func stepTitle(onboarding bool, step int, title string) string {
	if !onboarding {
		return title
	}
	return fmt.Sprintf("Étape %d/4 · %s", step, title)
}

func newBeneficiaryFormModel(b models.Beneficiary) *BeneficiaryFormModel {
	f := &BeneficiaryFormModel{
		Civilite:   b.Civilite,
		Prenom:     b.Prenom,
		Nom:        b.Nom,
		Telephone:  b.Telephone,
		Rue:        b.Adresse.Rue,
		CodePostal: b.Adresse.CodePostal,
		Ville:      b.Adresse.Ville,
		NotesAcces: b.NotesAcces,
		Statut:     string(b.Statut),
	}
	if f.Statut == "" {
		f.Statut = string(constants.StatusActif)
	}
	if b.Contrat.TauxHoraireNet > 0 {
		f.Taux = strconv.FormatFloat(b.Contrat.TauxHoraireNet, 'f', -1, 64)
	}
	if b.Contrat.IndemniteKm > 0 {
		f.IndemniteKm = strconv.FormatFloat(b.Contrat.IndemniteKm, 'f', -1, 64)
	}
	if b.Contrat.KmParVisite > 0 {
		f.KmParVisite = strconv.FormatFloat(b.Contrat.KmParVisite, 'f', -1, 64)
	}
	specs := make([]string, len(b.CreneauxHabituels))
	for i, s := range b.CreneauxHabituels {
		specs[i] = fmt.Sprintf("%s=%s-%s", s.Jour, s.HeureDebut, s.HeureFin)
	}
	f.Creneaux = strings.Join(specs, ", ")
	return f
}

func (f *BeneficiaryFormModel) apply(b *models.Beneficiary) error {
	taux, err := parseAmount("Taux horaire", f.Taux)
	if err != nil {
		return err
	}
	km, err := parseAmount("Indemnité kilométrique", f.IndemniteKm)
	if err != nil {
		return err
	}
	kmVisite, err := parseAmount("Km par visite", f.KmParVisite)
	if err != nil {
		return err
	}
	slots := []models.WeeklySlot{}
	for _, spec := range splitList(f.Creneaux) {
		slot, err := cli.ParseSlotSpec(spec)
		if err != nil {
			return err
		}
		slots = append(slots, slot)
	}
	status, err := cli.ParseStatus(f.Statut)
	if err != nil {
		return err
	}

	b.Civilite = f.Civilite
	b.Prenom = strings.TrimSpace(f.Prenom)
	b.Nom = strings.TrimSpace(f.Nom)
	b.Telephone = strings.TrimSpace(f.Telephone)
	b.Adresse = models.Address{Rue: strings.TrimSpace(f.Rue), CodePostal: strings.TrimSpace(f.CodePostal), Ville: strings.TrimSpace(f.Ville)}
	b.NotesAcces = strings.TrimSpace(f.NotesAcces)
	b.Contrat.TauxHoraireNet = taux
	b.Contrat.IndemniteKm = km
	b.Contrat.KmParVisite = kmVisite
	b.CreneauxHabituels = slots
	b.Statut = status
	return nil
}

func newBeneficiaryForm(f *BeneficiaryFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Civilité").
				Options(huh.NewOption("Madame", "Mme"), huh.NewOption("Monsieur", "M."), huh.NewOption("Non précisée", "")).
				Value(&f.Civilite),
			huh.NewInput().Title("Prénom").Value(&f.Prenom).Validate(required("le prénom")),
			huh.NewInput().Title("Nom").Value(&f.Nom).Validate(required("le nom")),
			huh.NewInput().Title("Téléphone").Value(&f.Telephone),
		).Title(title),
		huh.NewGroup(
			huh.NewInput().Title("Rue").Value(&f.Rue),
			huh.NewInput().Title("Code postal").Value(&f.CodePostal).Validate(optional("codePostal", "numeric,len=5")),
			huh.NewInput().Title("Ville").Value(&f.Ville),
			huh.NewText().Title("Accès (digicode, clés...)").Value(&f.NotesAcces),
		).Title("Adresse"),
		huh.NewGroup(
			huh.NewInput().Title("Taux horaire net (€)").Value(&f.Taux),
			huh.NewInput().Title("Indemnité kilométrique (€/km)").Value(&f.IndemniteKm),
			huh.NewInput().Title("Km par visite").Value(&f.KmParVisite),
			huh.NewInput().
				Title("Créneaux habituels").
				Description("ex. lundi=09:00-12:00, jeudi=14:00-16:00").
				Value(&f.Creneaux).
				Validate(func(s string) error {
					for _, spec := range splitList(s) {
						if _, err := cli.ParseSlotSpec(spec); err != nil {
							return err
						}
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Statut").
				Options(
					huh.NewOption("Actif", string(constants.StatusActif)),
					huh.NewOption("En pause", string(constants.StatusPause)),
					huh.NewOption("Terminé", string(constants.StatusTermine)),
				).
				Value(&f.Statut),
		).Title("Contrat"),
	).WithShowHelp(true)
}

func beneficiaryOptions(benefs []models.Beneficiary) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(benefs))
	for i, b := range benefs {
		opts[i] = huh.NewOption(b.FullName(), b.ID)
	}
	return opts
}

func newNoteForm(f *NoteFormModel, benefs []models.Beneficiary) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Bénéficiaire").Options(beneficiaryOptions(benefs)...).Value(&f.BeneficiaireID),
			huh.NewSelect[string]().
				Title("Catégorie").
				Options(
					huh.NewOption("Santé", string(constants.CategorieSante)),
					huh.NewOption("Comportement", string(constants.CategorieComportement)),
					huh.NewOption("Famille", string(constants.CategorieFamille)),
					huh.NewOption("Administratif", string(constants.CategorieAdministratif)),
				).
				Value(&f.Categorie),
			huh.NewSelect[string]().
				Title("Importance").
				Options(
					huh.NewOption("Normale", string(constants.ImportanceNormale)),
					huh.NewOption("Importante", string(constants.ImportanceImportante)),
					huh.NewOption("Urgente", string(constants.ImportanceUrgente)),
				).
				Value(&f.Importance),
			huh.NewText().Title("Contenu").Value(&f.Contenu).Validate(required("le contenu")),
		).Title("Nouvelle note"),
	).WithShowHelp(true)
}

func (f *NoteFormModel) build(date string) models.Note {
	return models.Note{
		BeneficiaireID: f.BeneficiaireID,
		Date:           date,
		Categorie:      constants.NoteCategory(f.Categorie),
		Importance:     constants.NoteImportance(f.Importance),
		Contenu:        strings.TrimSpace(f.Contenu),
	}
}

func ratingSelect(title string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(
			huh.NewOption("-", ""),
			huh.NewOption("Bien", string(constants.RatingBien)),
			huh.NewOption("Moyen", string(constants.RatingMoyen)),
			huh.NewOption("Mauvais", string(constants.RatingMauvais)),
		).
		Value(value).
		Inline(true)
}

func newTransmissionForm(f *TransmissionFormModel, benefs []models.Beneficiary) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Bénéficiaire").Options(beneficiaryOptions(benefs)...).Value(&f.BeneficiaireID),
			ratingSelect("Humeur", &f.Humeur),
			ratingSelect("Appétit", &f.Appetit),
			ratingSelect("Sommeil", &f.Sommeil),
			ratingSelect("Mobilité", &f.Mobilite),
			ratingSelect("Hygiène", &f.Hygiene),
		).Title("Nouvelle transmission"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tâches réalisées").
				Options(huh.NewOptions(constants.TransmissionTasks...)...).
				Value(&f.Taches),
			huh.NewText().Title("Observations").Value(&f.Observations),
			huh.NewText().Title("Incidents").Value(&f.Incidents),
			huh.NewText().Title("Message pour la famille").Value(&f.MessageFamille),
		).Title("Compte rendu"),
	).WithShowHelp(true)
}

func (f *TransmissionFormModel) build(date, heure string) models.Transmission {
	t := models.Transmission{
		BeneficiaireID:  f.BeneficiaireID,
		Date:            date,
		Heure:           heure,
		TachesRealisees: append([]string{}, f.Taches...),
		Observations:    strings.TrimSpace(f.Observations),
		Incidents:       strings.TrimSpace(f.Incidents),
		MessageFamille:  strings.TrimSpace(f.MessageFamille),
	}
	values := map[models.RatingField]string{
		models.RatingHumeur:   f.Humeur,
		models.RatingAppetit:  f.Appetit,
		models.RatingSommeil:  f.Sommeil,
		models.RatingMobilite: f.Mobilite,
		models.RatingHygiene:  f.Hygiene,
	}
	for field, v := range values {
		if v == "" {
			continue
		}
		r := constants.Rating(v)
		*t.Rating(field) = &r
	}
	return t
}
