package docs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/config"
	"github.com/julianstephens/aidant/internal/documents"
	"github.com/julianstephens/aidant/internal/logger"
)

type QuoteCmd struct {
	Beneficiaire int64  `arg:"" help:"ID du bénéficiaire."`
	Output       string `short:"o" help:"Dossier de destination (par défaut : AIDANT_DOCS_DIR)."`
}

func (c *QuoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.Beneficiary(c.Beneficiaire)
	if err != nil {
		return err
	}

	data := documents.NewQuoteData(ctx.State.Profile.Get(), b, ctx.State.Settings.Get())
	if len(data.Lignes) == 0 {
		return fmt.Errorf("%s n'a aucun créneau habituel, impossible d'établir un devis", b.FullName())
	}
	pdf, err := documents.QuotePDF(data)
	if err != nil {
		return fmt.Errorf("failed to render quote: %w", err)
	}
	path, err := write(outputDir(c.Output, ctx), documents.QuoteFilename(data), pdf)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Devis %s enregistré : %s\n", data.Numero, path)
	return nil
}

type ContractCmd struct {
	Beneficiaire int64  `arg:"" help:"ID du bénéficiaire."`
	Output       string `short:"o" help:"Dossier de destination (par défaut : AIDANT_DOCS_DIR)."`
}

func (c *ContractCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.Beneficiary(c.Beneficiaire)
	if err != nil {
		return err
	}

	data := documents.NewContractData(ctx.State.Profile.Get(), b)
	pdf, err := documents.ContractPDF(data)
	if err != nil {
		return fmt.Errorf("failed to render contract: %w", err)
	}
	path, err := write(outputDir(c.Output, ctx), documents.ContractFilename(data), pdf)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Contrat enregistré : %s\n", path)
	return nil
}

func outputDir(flag string, ctx *cli.Context) string {
	if flag != "" {
		return config.ExpandPath(flag)
	}
	if ctx.Config.DocsDir != "" {
		return config.ExpandPath(ctx.Config.DocsDir)
	}
	return "."
}

func write(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	logger.Info("Document written", "path", path, "bytes", len(data))
	return path, nil
}
