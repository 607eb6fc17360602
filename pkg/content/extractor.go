// Package content pulls the readable text of an article page. It is used for feed items
// that carry a link but neither content nor a description.
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
)

// Page is the extraction result
type Page struct {
	Text     string
	ImageURL string
}

// HTTPExtractor extracts article content from URLs using trafilatura
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(timeout time.Duration, userAgent string, minTextLength int) *HTTPExtractor {
	return &HTTPExtractor{
		client:        &http.Client{Timeout: timeout},
		userAgent:     userAgent,
		minTextLength: minTextLength,
	}
}

// Extract retrieves the page and returns its main text and lead image
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (Page, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return Page{}, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return Page{}, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	req.Header.Set("Accept-Charset", "utf-8")

	resp, err := e.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return Page{}, fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return Page{}, fmt.Errorf("no content extracted from %s", urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" || utf8.RuneCountInString(text) < e.minTextLength {
		return Page{}, fmt.Errorf("extracted text too short (%d chars) from %s", utf8.RuneCountInString(text), urlStr)
	}

	return Page{Text: text, ImageURL: result.Metadata.Image}, nil
}
