// Package documents renders quotes and CESU employment contracts as PDF.
package documents

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/julianstephens/aidant/internal/models"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 5.5
	marginMM   = 18.0
	pageWidth  = 210.0
)

// Party is one side of a document: the caregiver or the care recipient.
type Party struct {
	Civilite    string
	Prenom      string
	Nom         string
	Adresse     string
	Telephone   string
	Email       string
	Identifiant string // SIRET or CESU number
}

func (p Party) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.Civilite, p.Prenom, p.Nom}, " "))
}

func formatAddress(a models.Address) string {
	city := strings.TrimSpace(a.CodePostal + " " + a.Ville)
	switch {
	case a.Rue == "":
		return city
	case city == "":
		return a.Rue
	}
	return a.Rue + ", " + city
}

// page wraps a gofpdf document with the shared layout: A4 portrait,
// cp1252 text and a "page N/M" footer.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(title string) *page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("aidant", true)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return p
}

func (p *page) title(text string) {
	p.pdf.SetFont(fontFamily, "B", 16)
	p.pdf.SetTextColor(30, 60, 110)
	p.pdf.CellFormat(0, 10, p.tr(text), "", 1, "C", false, 0, "")
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.Ln(2)
}

func (p *page) heading(text string) {
	p.pdf.Ln(3)
	p.pdf.SetFont(fontFamily, "B", 11)
	p.pdf.SetFillColor(232, 238, 247)
	p.pdf.CellFormat(0, 7, p.tr(text), "", 1, "L", true, 0, "")
	p.pdf.Ln(1)
}

func (p *page) text(text string) {
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.MultiCell(0, lineHeight, p.tr(text), "", "L", false)
}

func (p *page) field(label, value string) {
	if value == "" {
		return
	}
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(45, lineHeight, p.tr(label), "", 0, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.MultiCell(0, lineHeight, p.tr(value), "", "L", false)
}

func (p *page) party(label string, party Party, idLabel string) {
	p.heading(label)
	p.field("Nom", party.FullName())
	p.field("Adresse", party.Adresse)
	p.field("Téléphone", party.Telephone)
	p.field("Email", party.Email)
	p.field(idLabel, party.Identifiant)
}

// table writes a header row followed by rows; widths are in mm.
func (p *page) table(header []string, widths []float64, aligns []string, rows [][]string) {
	p.pdf.SetFont(fontFamily, "B", 9)
	p.pdf.SetFillColor(30, 60, 110)
	p.pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		p.pdf.CellFormat(widths[i], 7, p.tr(h), "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.SetFont(fontFamily, "", 9)
	for n, row := range rows {
		fill := n%2 == 1
		p.pdf.SetFillColor(245, 245, 245)
		for i, cell := range row {
			p.pdf.CellFormat(widths[i], 6.5, p.tr(cell), "LR", 0, aligns[i], fill, 0, "")
		}
		p.pdf.Ln(-1)
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	p.pdf.CellFormat(total, 0, "", "T", 1, "", false, 0, "")
}

func (p *page) signatures(left, right string) {
	p.pdf.Ln(10)
	p.pdf.SetFont(fontFamily, "B", 10)
	half := (pageWidth - 2*marginMM) / 2
	p.pdf.CellFormat(half, lineHeight, p.tr(left), "", 0, "L", false, 0, "")
	p.pdf.CellFormat(half, lineHeight, p.tr(right), "", 1, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "I", 8)
	p.pdf.CellFormat(half, lineHeight, p.tr("Lu et approuvé, signature"), "", 0, "L", false, 0, "")
	p.pdf.CellFormat(half, lineHeight, p.tr("Lu et approuvé, signature"), "", 1, "L", false, 0, "")
	p.pdf.Ln(20)
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slug folds accents and keeps [a-z0-9], joining the rest with single dashes.
func slug(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func filename(prefix string, parts ...string) string {
	name := prefix
	for _, p := range parts {
		if s := slug(p); s != "" {
			name += "-" + s
		}
	}
	return name + ".pdf"
}
