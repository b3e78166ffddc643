package notes

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/store"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type AddCmd struct {
	Beneficiaire int64  `arg:"" help:"ID du bénéficiaire."`
	Contenu      string `arg:"" help:"Texte de la note."`
	Categorie    string `short:"c" help:"Catégorie (sante, comportement, famille, administratif)." default:"sante"`
	Importance   string `short:"i" help:"Importance (normale, importante, urgente)." default:"normale"`
	Date         string `short:"d" help:"Date (par défaut : aujourd'hui)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.Beneficiary(c.Beneficiaire)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	n := models.Note{
		BeneficiaireID: b.ID,
		Date:           date,
		Categorie:      constants.NoteCategory(strings.ToLower(c.Categorie)),
		Contenu:        strings.TrimSpace(c.Contenu),
		Importance:     constants.NoteImportance(strings.ToLower(c.Importance)),
	}
	if err := validation.Struct(n); err != nil {
		return err
	}
	added, err := ctx.State.Notes.Add(n)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	fmt.Printf("✓ Note ajoutée pour %s (ID: %d)\n", b.FullName(), added.ID)
	return nil
}

type ListCmd struct {
	Beneficiaire int64  `short:"b" help:"ID du bénéficiaire."`
	Categorie    string `short:"c" help:"Filtrer par catégorie."`
	Importance   string `short:"i" help:"Filtrer par importance."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	filter := store.NoteFilter{
		BeneficiaireID: c.Beneficiaire,
		Categorie:      constants.NoteCategory(strings.ToLower(c.Categorie)),
		Importance:     constants.NoteImportance(strings.ToLower(c.Importance)),
	}
	if filter.Categorie != "" {
		if err := validation.Var("categorie", string(filter.Categorie), "oneof=sante comportement famille administratif"); err != nil {
			return err
		}
	}
	if filter.Importance != "" {
		if err := validation.Var("importance", string(filter.Importance), "oneof=normale importante urgente"); err != nil {
			return err
		}
	}

	list := ctx.State.Notes.Filter(filter)
	if len(list) == 0 {
		fmt.Println("Aucune note.")
		return nil
	}
	for _, n := range list {
		marker := " "
		switch n.Importance {
		case constants.ImportanceImportante:
			marker = "!"
		case constants.ImportanceUrgente:
			marker = "‼"
		}
		fmt.Printf("%s %s  %s [%s] (ID: %d)\n    %s\n", marker, utils.FormatDisplayDate(n.Date),
			ctx.BeneficiaryName(n.BeneficiaireID), n.Categorie, n.ID, n.Contenu)
	}
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"ID de la note."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if err := ctx.State.Notes.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Note supprimée (ID: %d)\n", c.ID)
	return nil
}
