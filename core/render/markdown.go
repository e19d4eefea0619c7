// Package render provides output renderers for the FlyerPipe pipeline.
// This file implements the Markdown report: the flyers are laid out as HTML
// and converted with the Markdown normalizer, so the PDF report can share it.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/gaurav-prasanna/flyerpipe/core/normalize"
)

// MarkdownRenderer writes a human-readable flyer report.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render returns the report as Markdown.
func (r *MarkdownRenderer) Render(shops []core.ShopFlyers, meta core.RunMetadata) ([]byte, error) {
	markdown, err := r.normalizer.Normalize(reportHTML(shops, meta))
	if err != nil {
		return nil, err
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// reportHTML lays out one section per shop and one list item per flyer.
func reportHTML(shops []core.ShopFlyers, meta core.RunMetadata) string {
	var b strings.Builder
	b.WriteString("<h1>Flyers</h1>\n")
	fmt.Fprintf(&b, "<p>Source: %s<br>Generated: %s</p>\n",
		html.EscapeString(meta.Source), html.EscapeString(meta.GeneratedAt))

	if len(shops) == 0 {
		b.WriteString("<p>No valid flyers found.</p>\n")
		return b.String()
	}

	for _, shop := range shops {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", html.EscapeString(shop.Shop.Name))
		for _, f := range shop.Flyers {
			fmt.Fprintf(&b, "<li><strong>%s</strong> valid %s to %s",
				html.EscapeString(f.Title),
				html.EscapeString(f.ValidFrom),
				html.EscapeString(f.ValidTo))
			if f.ThumbnailURL != "" {
				fmt.Fprintf(&b, ` (<a href="%s">preview</a>)`, html.EscapeString(f.ThumbnailURL))
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	return b.String()
}
