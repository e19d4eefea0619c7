// Link rules.
// Decides which shop links are usable and resolves them against the site root.

package crawl

import (
	"fmt"
	"net/url"
	"strings"
)

// IsUsableLink reports whether href can serve as a shop endpoint on the
// site rooted at base: non-empty, not a pseudo-scheme or fragment, parseable,
// and not pointing to another host.
func IsUsableLink(href string, base *url.URL) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return false
	}
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return false
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	if parsed.IsAbs() && base != nil && parsed.Host != base.Host {
		return false
	}
	return true
}

// ResolveURL resolves a shop endpoint against the site's base URL.
func ResolveURL(baseURL string, endpoint string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String(), nil
}
