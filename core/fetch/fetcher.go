// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests with sensible defaults for web scraping.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "FlyerPipe/1.0 (https://github.com/gaurav-prasanna/flyerpipe)"
)

var tracer = otel.Tracer("flyerpipe/core/fetch")

// Options configures an HTTPFetcher. Zero values fall back to defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// CloudflareBypass wraps the transport so requests look like a regular browser.
	CloudflareBypass bool
}

// HTTPFetcher fetches web pages via HTTP. It never retries.
type HTTPFetcher struct {
	client *resty.Client
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL.
//
// A non-2xx response yields *core.StatusError and a blank body yields
// core.ErrEmptyPage, so callers can tell them apart from network failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	span.SetAttributes(attribute.Int("status", res.StatusCode()))
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, &core.StatusError{URL: url, Code: res.StatusCode()}
	}

	body := res.String()
	if strings.TrimSpace(body) == "" {
		span.SetStatus(codes.Error, "empty page")
		return nil, fmt.Errorf("fetching %s: %w", url, core.ErrEmptyPage)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: res.StatusCode(),
		HTML:       body,
	}, nil
}
