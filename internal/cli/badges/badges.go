package badges

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	unlocked, total := ctx.State.Badges.Unlocked()
	fmt.Printf("Badges : %d/%d débloqués\n", unlocked, total)
	for _, b := range ctx.State.Badges.List() {
		mark := "🔒"
		since := ""
		if b.Unlocked {
			mark = b.Icone
			if b.UnlockedAt != nil {
				since = " (" + b.UnlockedAt.Local().Format("02/01/2006") + ")"
			}
		}
		fmt.Printf("  %s %-22s %s%s  [%s]\n", mark, b.Nom, b.Description, since, b.ID)
	}
	return nil
}

type UnlockCmd struct {
	ID string `arg:"" help:"Identifiant du badge."`
}

func (c *UnlockCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.State.Badges.Unlock(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Badge débloqué : %s %s\n", b.Icone, b.Nom)
	return nil
}

type LockCmd struct {
	ID string `arg:"" help:"Identifiant du badge."`
}

func (c *LockCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.State.Badges.Lock(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Badge verrouillé : %s\n", b.Nom)
	return nil
}
