// PDF renderer.
// Lays the Markdown flyer report out as a PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs and list items.
// Thumbnails are linked, not embedded.

package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders the flyer report as a PDF document.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer()}
}

// Render converts the flyer report into PDF bytes.
func (r *PDFRenderer) Render(shops []core.ShopFlyers, meta core.RunMetadata) ([]byte, error) {
	md, err := r.markdown.Render(shops, meta)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; shop names and titles carry umlauts.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(string(md), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := 0
			for _, ch := range trimmed {
				if ch == '#' {
					level++
				} else {
					break
				}
			}
			text := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			renderHeading(pdf, tr(cleanInlineMarkdown(text)), level)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			text := "- " + cleanInlineMarkdown(strings.TrimSpace(trimmed[2:]))
			pdf.MultiCell(0, 5, tr(text), "", "L", false)
			continue
		}

		if strings.HasPrefix(trimmed, "Source:") || strings.HasPrefix(trimmed, "Generated:") {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

var (
	boldMarkdown = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	linkMarkdown = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
)

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
// Links keep their target, since that is the only way to reach a thumbnail.
func cleanInlineMarkdown(text string) string {
	text = boldMarkdown.ReplaceAllString(text, "$1")
	text = linkMarkdown.ReplaceAllString(text, "$1: $2")
	text = strings.ReplaceAll(text, `\`, "")
	return strings.TrimSpace(text)
}
