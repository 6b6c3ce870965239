package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// The first-paragraph fallback is cut before the index-level truncation
const maxParagraphFallback = 160

// CollyFetcher implements Fetcher using the Colly collector
type CollyFetcher struct {
	base      *colly.Collector
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher builds a fetcher with the given identity and request timeout
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	c := colly.NewCollector(colly.Async(false))

	// Best-effort character-encoding resolution before parsing
	c.DetectCharset = true
	c.AllowURLRevisit = true

	return &CollyFetcher{
		base:      c,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// page accumulates extraction results while a visit is in flight
type page struct {
	title     string
	metaDesc  string
	ogDesc    string
	paragraph string
	links     []string
}

// Fetch retrieves one page and extracts its title, description and links
func (f *CollyFetcher) Fetch(ctx context.Context, domainKey string) (*PageData, error) {
	collector := f.base.Clone()
	if f.userAgent != "" {
		collector.UserAgent = f.userAgent
	}
	timeout := f.timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	var (
		captured page
		fetchErr error
	)

	// Extract title (first occurrence wins)
	collector.OnHTML("title", func(e *colly.HTMLElement) {
		if captured.title == "" {
			captured.title = strings.TrimSpace(e.Text)
		}
	})

	// Extract description candidates
	collector.OnHTML("meta[name=description]", func(e *colly.HTMLElement) {
		if captured.metaDesc == "" {
			captured.metaDesc = strings.TrimSpace(e.Attr("content"))
		}
	})
	collector.OnHTML(`meta[property="og:description"]`, func(e *colly.HTMLElement) {
		if captured.ogDesc == "" {
			captured.ogDesc = strings.TrimSpace(e.Attr("content"))
		}
	})
	collector.OnHTML("p", func(e *colly.HTMLElement) {
		if captured.paragraph == "" {
			captured.paragraph = strings.TrimSpace(e.Text)
		}
	})

	// Harvest raw links; resolution and deduplication happen in the merge
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		captured.links = append(captured.links, e.Attr("href"))
	})

	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(domainKey)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("visit failed: %w", err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("request failed: %w", fetchErr)
		}
	}

	return &PageData{
		Title:       captured.title,
		Description: captured.description(),
		Links:       captured.links,
	}, nil
}

// description picks the best extracted description: the description meta tag,
// then og:description, then a truncated first paragraph
func (p *page) description() string {
	if p.metaDesc != "" {
		return p.metaDesc
	}
	if p.ogDesc != "" {
		return p.ogDesc
	}
	if p.paragraph != "" {
		if runes := []rune(p.paragraph); len(runes) > maxParagraphFallback {
			return string(runes[:maxParagraphFallback]) + "..."
		}
		return p.paragraph
	}
	return ""
}
