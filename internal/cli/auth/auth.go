package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/store"
	"github.com/julianstephens/aidant/internal/validation"
)

const minPasswordLength = 6

type RegisterCmd struct {
	Email    string `arg:"" help:"Adresse e-mail du compte."`
	Prenom   string `help:"Prénom." required:""`
	Nom      string `help:"Nom." required:""`
	Password string `help:"Mot de passe (demandé si absent)." env:"AIDANT_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if err := validation.Var("email", c.Email, "required,email"); err != nil {
		return err
	}

	password, err := readPassword(c.Password, true)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("le mot de passe doit contenir au moins %d caractères", minPasswordLength)
	}

	sess, err := ctx.State.Auth.Register(c.Email, password, strings.TrimSpace(c.Prenom), strings.TrimSpace(c.Nom))
	if err != nil {
		return fmt.Errorf("inscription impossible: %w", err)
	}

	// New accounts seed the caregiver profile with their name.
	profile := ctx.State.Profile.Get()
	if profile.Prenom == "" && profile.Nom == "" {
		if _, err := ctx.State.Profile.Update(func(p *models.Profile) {
			p.Prenom = sess.Prenom
			p.Nom = sess.Nom
			p.Email = sess.Email
		}); err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}

	fmt.Printf("✓ Compte créé pour %s %s (%s)\n", sess.Prenom, sess.Nom, sess.Email)
	fmt.Println("  Complétez votre profil avec 'aidant profile set' puis 'aidant profile complete'.")
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Adresse e-mail du compte."`
	Password string `help:"Mot de passe (demandé si absent)." env:"AIDANT_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	password, err := readPassword(c.Password, false)
	if err != nil {
		return err
	}

	sess, err := ctx.State.Auth.Login(c.Email, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return err
		}
		return fmt.Errorf("connexion impossible: %w", err)
	}

	fmt.Printf("✓ Bonjour %s !\n", sess.Prenom)
	if ctx.State.Route() == store.RouteOnboarding {
		fmt.Println("  Votre profil est incomplet : 'aidant profile complete' pour terminer.")
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.State.Auth.Logout(); err != nil {
		return fmt.Errorf("déconnexion impossible: %w", err)
	}
	fmt.Println("✓ Déconnecté")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	sess, ok := ctx.State.Auth.Session()
	if !ok {
		fmt.Println("Aucune session ouverte.")
		return nil
	}
	fmt.Printf("%s %s <%s>\n", sess.Prenom, sess.Nom, sess.Email)
	fmt.Printf("  Connecté depuis : %s\n", sess.StartedAt.Local().Format("02/01/2006 15:04"))
	fmt.Printf("  Écran autorisé  : %s\n", ctx.State.Route())
	return nil
}

// readPassword returns the flag value or prompts for it with a masked input.
func readPassword(value string, confirm bool) (string, error) {
	if value != "" {
		return value, nil
	}

	var password, again string
	fields := []huh.Field{
		huh.NewInput().Title("Mot de passe").EchoMode(huh.EchoModePassword).Value(&password),
	}
	if confirm {
		fields = append(fields, huh.NewInput().Title("Confirmez le mot de passe").EchoMode(huh.EchoModePassword).Value(&again))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", err
	}
	if confirm && password != again {
		return "", errors.New("les mots de passe ne correspondent pas")
	}
	return password, nil
}
