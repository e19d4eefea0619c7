// Package crawl discovers the shops of a category listing page.
// It keeps site discovery separate from flyer extraction.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/gaurav-prasanna/flyerpipe/core/normalize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("flyerpipe/crawl")

// Resolver builds the shop directory from a category listing page.
type Resolver struct {
	selectors core.Selectors
	base      *url.URL
	logger    *slog.Logger
}

// NewResolver creates a Resolver. Links pointing away from baseURL's host
// are not considered shop endpoints.
func NewResolver(baseURL string, selectors core.Selectors, logger *slog.Logger) (*Resolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return &Resolver{selectors: selectors, base: base, logger: logger}, nil
}

// Resolve parses the listing page into a directory of endpoint -> shop name.
// A page without the shop list container yields an empty directory.
func (r *Resolver) Resolve(ctx context.Context, html string) (*Directory, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	dir := NewDirectory()

	list := doc.Find(r.selectors.ShopList).First()
	if list.Length() == 0 {
		r.logger.WarnContext(ctx, "shop list container not found", "selector", r.selectors.ShopList)
		return dir, nil
	}

	list.Find(r.selectors.ShopEntry).Each(func(_ int, entry *goquery.Selection) {
		a := entry.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok || !IsUsableLink(href, r.base) {
			return
		}
		name := normalize.Text(a.Text())
		if name == "" {
			return
		}
		dir.Add(strings.TrimSpace(href), name)
	})

	span.SetAttributes(attribute.Int("shops", dir.Len()))
	r.logger.DebugContext(ctx, "resolved shop directory", "shops", dir.Len())
	return dir, nil
}
