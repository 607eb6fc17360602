package feed

import "net/http"

// DefaultUserAgent identifies the fetcher to feed publishers
const DefaultUserAgent = "Mozilla/5.0 (compatible; RSS-Sales-Intelligence/1.0)"

// setFeedHeaders sets the identifying user agent and negotiates an xml document in utf-8
func setFeedHeaders(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("Accept-Charset", "utf-8")
	req.Header.Set("Accept-Language", "da-DK,da;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
}
