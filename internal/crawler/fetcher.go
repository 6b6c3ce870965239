package crawler

import "context"

// PageData is the structured result of fetching and parsing one page
type PageData struct {
	Title       string
	Description string
	// Links holds the raw href values found on the page, unresolved and
	// unfiltered; repeated links are kept as-is
	Links []string
}

// Fetcher retrieves and parses the representative page for a domain key.
// Implementations must enforce their own request timeout and surface any
// network, status or parse problem as an error.
type Fetcher interface {
	Fetch(ctx context.Context, domainKey string) (*PageData, error)
}
