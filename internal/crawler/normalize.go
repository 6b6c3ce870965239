package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Shortest host accepted by the normalizer ("a.co")
const minHostLength = 4

// Normalize maps a raw URL to its canonical domain key of the form
// "https://domain/". Relative, path-relative and protocol-relative URLs are
// resolved against baseURL first. The scheme is discarded: the crawler indexes
// one representative page per domain, not per protocol. A leading "www." label
// is stripped; other subdomains are kept.
func Normalize(rawURL, baseURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("unparseable URL: %w", err)
	}

	if baseURL != "" {
		base, err := url.Parse(baseURL)
		if err != nil {
			return "", fmt.Errorf("unparseable base URL: %w", err)
		}
		parsed = base.ResolveReference(parsed)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("URL has no host")
	}

	host = strings.TrimPrefix(host, "www.")

	// Sanity filter against malformed hosts
	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("host %q has no domain separator", host)
	}
	if len(host) < minHostLength {
		return "", fmt.Errorf("host %q too short", host)
	}

	return "https://" + host + "/", nil
}
