package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/leadfeed/pkg/content"
	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/normalize"
)

// DefaultHoursBack is the recency window used when the caller passes a non-positive value
const DefaultHoursBack = 24

// maxFeedSize caps the feed document read from the network
const maxFeedSize = 20 * 1024 * 1024

// Extractor pulls the readable text of an article page
type Extractor interface {
	Extract(ctx context.Context, url string) (content.Page, error)
}

// Params configures Fetcher
type Params struct {
	Timeout   time.Duration
	UserAgent string
	Extractor Extractor // optional, used for items with neither content nor description
}

// Fetcher retrieves feeds over HTTP and converts their items to normalized articles
type Fetcher struct {
	client    *http.Client
	userAgent string
	extractor Extractor
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewFetcher creates a new feed fetcher
func NewFetcher(params Params) *Fetcher {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: params.UserAgent,
		extractor: params.Extractor,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// FetchArticles retrieves the feed and returns its items published within the last hoursBack hours.
// Items without a publication date are always included. Errors are *domain.FetchError.
func (f *Fetcher) FetchArticles(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error) {
	feed, err := f.parse(ctx, feedURL)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}

	if hoursBack <= 0 {
		hoursBack = DefaultHoursBack
	}
	cutoff := f.now().Add(-time.Duration(hoursBack) * time.Hour)

	res := make([]domain.ParsedArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		article := f.convert(item)
		if article.PubDate != nil && article.PubDate.Before(cutoff) {
			continue
		}
		if f.extractor != nil && article.Content == "" && article.Description == "" && article.Link != "" {
			f.enrich(ctx, &article)
		}
		res = append(res, article)
	}

	log.Printf("[DEBUG] fetched %d of %d items from %s (cutoff %s)", len(res), len(feed.Items), feedURL, cutoff.Format(time.RFC3339))
	return res, nil
}

// Validate reports whether the URL can be fetched and parsed as a feed
func (f *Fetcher) Validate(ctx context.Context, feedURL string) bool {
	if _, err := f.parse(ctx, feedURL); err != nil {
		log.Printf("[DEBUG] feed %s failed validation: %v", feedURL, err)
		return false
	}
	return true
}

// parse fetches and parses the feed document
func (f *Fetcher) parse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(io.LimitReader(body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// fetch retrieves content from a URL
func (f *Fetcher) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setFeedHeaders(req, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// enrich fills content of a bare item from the article page, failures are not fatal
func (f *Fetcher) enrich(ctx context.Context, article *domain.ParsedArticle) {
	page, err := f.extractor.Extract(ctx, article.Link)
	if err != nil {
		log.Printf("[DEBUG] no page content for %s: %v", article.Link, err)
		return
	}
	article.Content = normalize.StripBoilerplate(normalize.RepairEncoding(page.Text))
	if article.ImageURL == "" {
		article.ImageURL = page.ImageURL
	}
}
