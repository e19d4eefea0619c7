// Package core defines the pipeline types and interfaces for FlyerPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"errors"
	"fmt"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// ErrEmptyPage is returned by a Fetcher when the server answered
// successfully but the page had no content.
var ErrEmptyPage = errors.New("page has no content")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// RunMetadata describes a single collection run. Report renderers print it.
type RunMetadata struct {
	Source      string
	GeneratedAt string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts collected flyers into a final output format.
type Renderer interface {
	Render(shops []ShopFlyers, meta RunMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}
