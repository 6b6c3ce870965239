package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func newPageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCollyFetcherExtractsMetadataAndLinks(t *testing.T) {
	t.Parallel()

	server := newPageServer(t, `<!DOCTYPE html>
		<html><head>
			<title>  Test Page  </title>
			<meta name="description" content="A test page.">
			<meta property="og:description" content="OG description.">
		</head><body>
			<p>First paragraph.</p>
			<a href="https://example.com/one">one</a>
			<a href="/relative">two</a>
			<a href="https://example.com/one">repeat</a>
		</body></html>`)

	fetcher := NewCollyFetcher("test-agent", 5*time.Second)
	page, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	require.Equal(t, "Test Page", page.Title)
	require.Equal(t, "A test page.", page.Description)
	// Repeated hrefs are kept; each one counts as a separate reference
	require.Equal(t, []string{"https://example.com/one", "/relative", "https://example.com/one"}, page.Links)
}

func TestCollyFetcherDescriptionFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("og description when meta absent", func(t *testing.T) {
		server := newPageServer(t, `<html><head>
			<meta property="og:description" content="OG only.">
		</head><body><p>Paragraph.</p></body></html>`)

		fetcher := NewCollyFetcher("test-agent", 5*time.Second)
		page, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.Equal(t, "OG only.", page.Description)
	})

	t.Run("first paragraph truncated when no meta tags", func(t *testing.T) {
		long := strings.Repeat("z", 400)
		server := newPageServer(t, `<html><body><p>`+long+`</p></body></html>`)

		fetcher := NewCollyFetcher("test-agent", 5*time.Second)
		page, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.Equal(t, strings.Repeat("z", maxParagraphFallback)+"...", page.Description)
	})

	t.Run("multibyte paragraph truncated on rune boundary", func(t *testing.T) {
		long := strings.Repeat("ж", 400)
		server := newPageServer(t, `<html><body><p>`+long+`</p></body></html>`)

		fetcher := NewCollyFetcher("test-agent", 5*time.Second)
		page, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.True(t, utf8.ValidString(page.Description))
		require.Equal(t, strings.Repeat("ж", maxParagraphFallback)+"...", page.Description)
	})

	t.Run("empty when nothing to extract", func(t *testing.T) {
		server := newPageServer(t, `<html><body></body></html>`)

		fetcher := NewCollyFetcher("test-agent", 5*time.Second)
		page, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.Empty(t, page.Description)
		require.Empty(t, page.Title)
	})
}

func TestCollyFetcherNonSuccessStatusFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	fetcher := NewCollyFetcher("test-agent", 5*time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)
}

func TestCollyFetcherUnreachableHostFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	fetcher := NewCollyFetcher("test-agent", 2*time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.Error(t, err)
}

func TestCollyFetcherSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		w.Write([]byte("<html><head><title>ok</title></head></html>"))
	}))
	t.Cleanup(server.Close)

	fetcher := NewCollyFetcher("BLUOMSearchBot/2.0", 5*time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, "BLUOMSearchBot/2.0", gotAgent)
}
