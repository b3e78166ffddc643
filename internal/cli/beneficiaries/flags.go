package beneficiaries

import (
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
)

// Fields are the optional flags shared by add and edit. A nil pointer leaves the value unchanged.
type Fields struct {
	Civilite      *string `help:"Civilité (M. ou Mme)."`
	DateNaissance *string `help:"Date de naissance (AAAA-MM-JJ)." name:"date-naissance"`
	Telephone     *string `help:"Téléphone."`
	Rue           *string `help:"Adresse : rue."`
	CodePostal    *string `help:"Adresse : code postal." name:"code-postal"`
	Ville         *string `help:"Adresse : ville."`
	Acces         *string `help:"Notes d'accès (digicode, clés...)."`

	ContactNom       *string `help:"Contact d'urgence : nom." name:"contact-nom"`
	ContactLien      *string `help:"Contact d'urgence : lien de parenté." name:"contact-lien"`
	ContactTelephone *string `help:"Contact d'urgence : téléphone." name:"contact-telephone"`

	Taux        *float64 `help:"Taux horaire net en euros."`
	IndemniteKm *float64 `help:"Indemnité kilométrique en euros." name:"indemnite-km"`
	KmVisite    *float64 `help:"Kilomètres par visite." name:"km-visite"`
	DateDebut   *string  `help:"Date de début du contrat (AAAA-MM-JJ)." name:"date-debut"`
	Cesu        *string  `help:"Numéro CESU de l'employeur."`

	Pathologies *string `help:"Santé : pathologies."`
	Traitements *string `help:"Santé : traitements."`
	Allergies   *string `help:"Santé : allergies."`
	Mobilite    *string `help:"Santé : mobilité."`
	Remarques   *string `help:"Santé : remarques."`

	Statut   *string  `help:"Statut (actif, pause, termine)."`
	Creneaux []string `help:"Créneaux habituels, remplacent les existants (ex. lundi=09:00-12:00)." sep:","`
}

// parsed holds the flag values that need conversion before they can be applied.
type parsed struct {
	slots []models.WeeklySlot
}

func (f *Fields) parse() (parsed, error) {
	var p parsed
	if f.Creneaux != nil {
		p.slots = []models.WeeklySlot{}
		for _, spec := range f.Creneaux {
			slot, err := cli.ParseSlotSpec(spec)
			if err != nil {
				return parsed{}, err
			}
			p.slots = append(p.slots, slot)
		}
	}
	if f.Statut != nil {
		if _, err := cli.ParseStatus(*f.Statut); err != nil {
			return parsed{}, err
		}
	}
	return p, nil
}

func (f *Fields) apply(b *models.Beneficiary, p parsed) bool {
	updated := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}
	setFloat := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}

	set(&b.Civilite, f.Civilite)
	set(&b.DateNaissance, f.DateNaissance)
	set(&b.Telephone, f.Telephone)
	set(&b.Adresse.Rue, f.Rue)
	set(&b.Adresse.CodePostal, f.CodePostal)
	set(&b.Adresse.Ville, f.Ville)
	set(&b.NotesAcces, f.Acces)
	set(&b.ContactUrgence.Nom, f.ContactNom)
	set(&b.ContactUrgence.Lien, f.ContactLien)
	set(&b.ContactUrgence.Telephone, f.ContactTelephone)
	setFloat(&b.Contrat.TauxHoraireNet, f.Taux)
	setFloat(&b.Contrat.IndemniteKm, f.IndemniteKm)
	setFloat(&b.Contrat.KmParVisite, f.KmVisite)
	set(&b.Contrat.DateDebut, f.DateDebut)
	set(&b.Contrat.NumeroCesu, f.Cesu)
	set(&b.Sante.Pathologies, f.Pathologies)
	set(&b.Sante.Traitements, f.Traitements)
	set(&b.Sante.Allergies, f.Allergies)
	set(&b.Sante.Mobilite, f.Mobilite)
	set(&b.Sante.Remarques, f.Remarques)

	if f.Statut != nil {
		status, _ := cli.ParseStatus(*f.Statut)
		b.Statut = status
		updated = true
	}
	if p.slots != nil {
		b.CreneauxHabituels = p.slots
		updated = true
	}
	return updated
}
