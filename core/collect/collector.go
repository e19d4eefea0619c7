// Package collect orchestrates a flyer crawl:
// resolve shops → fetch each shop page → extract fragments → keep valid flyers.
//
// Shops are processed one at a time; a shop that fails to load or has no
// valid flyers is skipped without affecting the rest of the run.
package collect

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/gaurav-prasanna/flyerpipe/core/extract"
	"github.com/gaurav-prasanna/flyerpipe/core/normalize"
	"github.com/gaurav-prasanna/flyerpipe/crawl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("flyerpipe/core/collect")

// Options configures a Collector.
type Options struct {
	// BaseURL is the site root shop endpoints are resolved against.
	BaseURL string
	// CategoryPath is the listing page of the shop category, relative to BaseURL.
	CategoryPath string
	// Today returns the current date for validity checks; nil means time.Now.
	Today func() time.Time
}

// Collector gathers the currently valid flyers of every shop in a category.
type Collector struct {
	fetcher   core.Fetcher
	resolver  *crawl.Resolver
	extractor *extract.FragmentExtractor
	opts      Options
	logger    *slog.Logger
}

// New creates a Collector.
func New(
	fetcher core.Fetcher,
	resolver *crawl.Resolver,
	extractor *extract.FragmentExtractor,
	opts Options,
	logger *slog.Logger,
) *Collector {
	if opts.Today == nil {
		opts.Today = time.Now
	}
	return &Collector{
		fetcher:   fetcher,
		resolver:  resolver,
		extractor: extractor,
		opts:      opts,
		logger:    logger,
	}
}

// CategoryURL returns the absolute URL of the category listing page.
func (c *Collector) CategoryURL() (string, error) {
	return crawl.ResolveURL(c.opts.BaseURL, c.opts.CategoryPath)
}

// Directory fetches the category listing page and resolves its shops.
// Failures are logged and produce an empty directory.
func (c *Collector) Directory(ctx context.Context) *crawl.Directory {
	ctx, span := tracer.Start(ctx, "Directory")
	defer span.End()

	categoryURL, err := c.CategoryURL()
	if err != nil {
		c.logger.ErrorContext(ctx, "invalid category URL", "err", err)
		return crawl.NewDirectory()
	}

	result, err := c.fetcher.Fetch(ctx, categoryURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch category page")
		c.logFetchError(ctx, "category", categoryURL, err)
		return crawl.NewDirectory()
	}

	dir, err := c.resolver.Resolve(ctx, result.HTML)
	if err != nil {
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "failed to resolve shop directory", "url", categoryURL, "err", err)
		return crawl.NewDirectory()
	}

	c.logger.InfoContext(ctx, "shop directory resolved", "url", categoryURL, "shops", dir.Len())
	return dir
}

// Shops lazily yields the valid flyers of each shop in dir, in directory
// order. Shops that fail to load or have no valid flyer are not yielded.
// The sequence performs network requests as it is consumed and is not
// meant to be ranged over twice.
func (c *Collector) Shops(ctx context.Context, dir *crawl.Directory) iter.Seq[core.ShopFlyers] {
	return func(yield func(core.ShopFlyers) bool) {
		today := c.opts.Today()

		for _, shop := range dir.Shops() {
			if ctx.Err() != nil {
				return
			}

			flyers, err := c.CollectShop(ctx, shop, today)
			if err != nil {
				continue
			}
			if len(flyers) == 0 {
				continue
			}
			if !yield(core.ShopFlyers{Shop: shop, Flyers: flyers}) {
				return
			}
		}
	}
}

// CollectAll resolves the directory and materializes every shop's flyers.
func (c *Collector) CollectAll(ctx context.Context) []core.ShopFlyers {
	var out []core.ShopFlyers
	for shop := range c.Shops(ctx, c.Directory(ctx)) {
		out = append(out, shop)
	}
	return out
}

// CollectShop fetches one shop page and returns its flyers valid on today.
// Fetch failures are logged and returned.
func (c *Collector) CollectShop(ctx context.Context, shop core.Shop, today time.Time) ([]core.Flyer, error) {
	ctx, span := tracer.Start(ctx, "CollectShop")
	defer span.End()
	span.SetAttributes(attribute.String("shop", shop.Name))

	startTime := time.Now()

	shopURL, err := crawl.ResolveURL(c.opts.BaseURL, shop.Endpoint)
	if err != nil {
		c.logger.WarnContext(ctx, "invalid shop endpoint", "shop", shop.Name, "endpoint", shop.Endpoint, "err", err)
		return nil, err
	}

	result, err := c.fetcher.Fetch(ctx, shopURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch shop page")
		c.logFetchError(ctx, shop.Name, shopURL, err)
		return nil, err
	}

	fragments, err := c.extractor.Fragments(result.HTML)
	if err != nil {
		span.RecordError(err)
		c.logger.WarnContext(ctx, "failed to parse shop page", "shop", shop.Name, "url", shopURL, "err", err)
		return nil, fmt.Errorf("parsing page of %s: %w", shop.Name, err)
	}

	var flyers []core.Flyer
	for i := range fragments.Length() {
		flyer := c.extractor.Extract(ctx, fragments.Eq(i), shop.Name)
		if !normalize.IsValid(flyer, today) {
			c.logger.DebugContext(ctx, "flyer not currently valid, skipping",
				"shop", shop.Name,
				"title", flyer.Title,
				"valid_from", flyer.ValidFrom,
				"valid_to", flyer.ValidTo)
			continue
		}
		flyers = append(flyers, flyer)
	}

	span.SetAttributes(attribute.Int("fragments", fragments.Length()), attribute.Int("valid", len(flyers)))
	c.logger.InfoContext(ctx, "shop processed",
		"shop", shop.Name,
		"duration", time.Since(startTime),
		"fragments", fragments.Length(),
		"valid", len(flyers))

	return flyers, nil
}

func (c *Collector) logFetchError(ctx context.Context, shop, url string, err error) {
	var statusErr *core.StatusError
	switch {
	case errors.Is(err, core.ErrEmptyPage):
		c.logger.WarnContext(ctx, "page had no content, skipping", "shop", shop, "url", url)
	case errors.As(err, &statusErr):
		c.logger.WarnContext(ctx, "page returned an error status, skipping", "shop", shop, "url", url, "status", statusErr.Code)
	default:
		c.logger.ErrorContext(ctx, "failed to fetch page, skipping", "shop", shop, "url", url, "err", err)
	}
}
