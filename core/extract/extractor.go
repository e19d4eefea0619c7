// Package extract pulls flyer records out of a shop's listing page by:
//  1. Locating the flyer fragments inside the page body
//  2. Reading thumbnail, title and date text from each fragment
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/gaurav-prasanna/flyerpipe/core/normalize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("flyerpipe/core/extract")

// jpegURLPattern finds an absolute JPEG URL, also when it is wrapped in a
// proxy or tracking URL's query string.
var jpegURLPattern = regexp.MustCompile(`(?i)https?://[^\s"'<>?&=]+\.jpe?g`)

// FragmentExtractor turns flyer markup fragments into core.Flyer records.
type FragmentExtractor struct {
	selectors core.Selectors
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a FragmentExtractor. now stamps ParsedAt; nil means time.Now.
func New(selectors core.Selectors, logger *slog.Logger, now func() time.Time) *FragmentExtractor {
	if now == nil {
		now = time.Now
	}
	return &FragmentExtractor{selectors: selectors, logger: logger, now: now}
}

// Fragments parses a shop page and returns its flyer fragments.
// A page without the body container has no fragments.
func (e *FragmentExtractor) Fragments(html string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing shop HTML: %w", err)
	}
	return doc.Find(e.selectors.PageBody).Find(e.selectors.Fragment), nil
}

// fields holds the values resolved so far for one fragment.
type fields struct {
	title     string
	thumbnail string
	validFrom string
	validTo   string
}

func (f fields) build(shopName string, parsedAt time.Time) core.Flyer {
	return core.Flyer{
		Title:        f.title,
		ThumbnailURL: f.thumbnail,
		ShopName:     shopName,
		ValidFrom:    f.validFrom,
		ValidTo:      f.validTo,
		ParsedAt:     parsedAt.Format(core.TimestampLayout),
	}
}

// Extract builds the flyer record for one fragment. It never fails: a
// fragment without a description block yields a record with default fields,
// and a failure halfway through yields the fields resolved up to that point.
func (e *FragmentExtractor) Extract(ctx context.Context, fragment *goquery.Selection, shopName string) (flyer core.Flyer) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("shop", shopName))

	f := fields{validFrom: core.Unknown, validTo: core.Unknown}

	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "extraction failed")
			e.logger.WarnContext(ctx, "failed to extract flyer fragment", "shop", shopName, "err", fmt.Sprint(r))
			flyer = f.build(shopName, e.now())
		}
	}()

	desc := fragment.Find(e.selectors.Description).First()
	if desc.Length() == 0 {
		e.logger.WarnContext(ctx, "flyer fragment has no description block", "shop", shopName)
		return f.build(shopName, e.now())
	}

	f.thumbnail = Thumbnail(fragment.Find(e.selectors.Image).First())

	f.title = core.Unknown
	if title := desc.Find(e.selectors.Title).First(); title.Length() > 0 {
		f.title = normalize.Text(Text(title))
	}

	if dates := desc.Find(e.selectors.Dates).First(); dates.Length() > 0 {
		f.validFrom, f.validTo = normalize.ParseRange(Text(dates))
	}

	e.logger.DebugContext(ctx, "extracted flyer",
		"shop", shopName,
		"title", f.title,
		"valid_from", f.validFrom,
		"valid_to", f.validTo)

	return f.build(shopName, e.now())
}

// Thumbnail reads an image's lazy-load source, falling back to src.
// An absolute JPEG URL embedded in the value is returned on its own;
// otherwise the raw value is kept.
func Thumbnail(img *goquery.Selection) string {
	src := strings.TrimSpace(img.AttrOr("data-src", ""))
	if src == "" {
		src = strings.TrimSpace(img.AttrOr("src", ""))
	}
	if m := jpegURLPattern.FindString(src); m != "" {
		return m
	}
	return src
}
