package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/leadfeed/pkg/content"
	"github.com/umputun/leadfeed/pkg/domain"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestFetcher(extractor Extractor) *Fetcher {
	f := NewFetcher(Params{Timeout: 5 * time.Second, Extractor: extractor})
	f.now = func() time.Time { return fixedNow }
	return f
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_FetchArticles_Cutoff(t *testing.T) {
	rss := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Byggeri</title>
	<item>
		<title>Old article</title>
		<link>https://example.com/old</link>
		<pubDate>%s</pubDate>
	</item>
	<item>
		<title>Dateless article</title>
		<link>https://example.com/dateless</link>
	</item>
	<item>
		<title>Fresh article</title>
		<link>https://example.com/fresh</link>
		<pubDate>%s</pubDate>
	</item>
</channel>
</rss>`, fixedNow.Add(-30*time.Hour).Format(time.RFC1123Z), fixedNow.Add(-2*time.Hour).Format(time.RFC1123Z))

	srv := feedServer(t, rss)
	f := newTestFetcher(nil)

	articles, err := f.FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "https://example.com/dateless", articles[0].Link)
	assert.Nil(t, articles[0].PubDate)
	assert.Equal(t, "https://example.com/fresh", articles[1].Link)

	cutoff := fixedNow.Add(-24 * time.Hour)
	for _, a := range articles {
		assert.True(t, a.PubDate == nil || !a.PubDate.Before(cutoff))
	}

	t.Run("wider window includes old article", func(t *testing.T) {
		articles, err := f.FetchArticles(context.Background(), srv.URL, 48)
		require.NoError(t, err)
		assert.Len(t, articles, 3)
	})

	t.Run("non-positive window uses default", func(t *testing.T) {
		articles, err := f.FetchArticles(context.Background(), srv.URL, 0)
		require.NoError(t, err)
		assert.Len(t, articles, 2)
	})
}

func TestFetcher_FetchArticles_FieldMapping(t *testing.T) {
	upsell := "Vil du have det hele med? Prøv 30 dage for 0 kr. Ingen binding eller kortoplysninger påkrævet. " +
		"Prøv nu Køb et abonnement Udforsk vores abonnementer, og vælg den løsning, der matcher dine behov. " +
		"Vælg dit abonnement Log ind"
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
	<title>Byggeri</title>
	<item>
		<title>Nye dÃ¸re til RÃ¥dhuset</title>
		<link>https://example.com/raadhus</link>
		<description><![CDATA[<p>Kort <b>resumé</b> &amp; mere</p>]]></description>
		<content:encoded><![CDATA[<p>Hele artiklen om rådhuset i Aarhus.</p> ` + upsell + `]]></content:encoded>
		<dc:creator>Mette Hansen</dc:creator>
		<guid>raadhus-1</guid>
	</item>
	<item>
		<title></title>
		<link>https://example.com/untitled</link>
		<description>Kun beskrivelse</description>
		<author>redaktion@example.com (Redaktionen)</author>
	</item>
	<item>
		<title>No link</title>
	</item>
</channel>
</rss>`

	srv := feedServer(t, rss)
	articles, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	require.Len(t, articles, 3)

	first := articles[0]
	assert.Equal(t, "Nye døre til Rådhuset", first.Title)
	assert.Equal(t, "Kort resumé & mere", first.Description)
	assert.Equal(t, "<p>Hele artiklen om rådhuset i Aarhus.</p>", first.Content)
	assert.Equal(t, "Mette Hansen", first.Author)
	assert.Equal(t, "raadhus-1", first.GUID)

	second := articles[1]
	assert.Equal(t, "Untitled", second.Title)
	assert.Equal(t, "https://example.com/untitled", second.GUID, "guid falls back to link")
	assert.Equal(t, "Kun beskrivelse", second.Content, "content falls back to description")
	assert.Equal(t, "Redaktionen", second.Author)

	assert.Empty(t, articles[2].Link, "linkless items are returned, the caller decides")
}

func TestFetcher_FetchArticles_Image(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
	<title>Images</title>
	<item>
		<title>Enclosure wins</title>
		<link>https://example.com/1</link>
		<enclosure url="https://cdn.example.com/audio.mp3" type="audio/mpeg" length="1"/>
		<enclosure url="https://cdn.example.com/enc.jpg" type="image/jpeg" length="1"/>
		<media:content url="https://cdn.example.com/media.jpg" medium="image"/>
		<content:encoded><![CDATA[<img src="https://cdn.example.com/inline.jpg">]]></content:encoded>
	</item>
	<item>
		<title>Media second</title>
		<link>https://example.com/2</link>
		<enclosure url="https://cdn.example.com/audio.mp3" type="audio/mpeg" length="1"/>
		<media:content url="https://cdn.example.com/media.jpg" medium="image"/>
		<content:encoded><![CDATA[<img src="https://cdn.example.com/inline.jpg">]]></content:encoded>
	</item>
	<item>
		<title>Inline third</title>
		<link>https://example.com/3</link>
		<content:encoded><![CDATA[<p>text</p><img alt="x"><img src="https://cdn.example.com/inline.jpg"><img src="https://cdn.example.com/second.jpg">]]></content:encoded>
	</item>
	<item>
		<title>Description fallback</title>
		<link>https://example.com/4</link>
		<description><![CDATA[<img src="https://cdn.example.com/desc.jpg"> tekst]]></description>
	</item>
	<item>
		<title>No image</title>
		<link>https://example.com/5</link>
		<description>tekst</description>
	</item>
</channel>
</rss>`

	srv := feedServer(t, rss)
	articles, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	require.Len(t, articles, 5)

	assert.Equal(t, "https://cdn.example.com/enc.jpg", articles[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/media.jpg", articles[1].ImageURL)
	assert.Equal(t, "https://cdn.example.com/inline.jpg", articles[2].ImageURL)
	assert.Equal(t, "https://cdn.example.com/desc.jpg", articles[3].ImageURL)
	assert.Empty(t, articles[4].ImageURL)
}

func TestFetcher_FetchArticles_Atom(t *testing.T) {
	atom := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom</title>
	<entry>
		<title>Atom entry</title>
		<link href="https://example.com/atom1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>%s</updated>
		<summary>Entry summary</summary>
		<author><name>John Doe</name></author>
	</entry>
</feed>`, fixedNow.Add(-time.Hour).Format(time.RFC3339))

	srv := feedServer(t, atom)
	articles, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Atom entry", articles[0].Title)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", articles[0].GUID)
	assert.Equal(t, "Entry summary", articles[0].Description)
	assert.Equal(t, "John Doe", articles[0].Author)
	require.NotNil(t, articles[0].PubDate)
}

func TestFetcher_FetchArticles_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
		require.Error(t, err)
		var fetchErr *domain.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, srv.URL, fetchErr.URL)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("malformed document", func(t *testing.T) {
		srv := feedServer(t, "this is not a feed")
		_, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("unreachable host", func(t *testing.T) {
		_, err := newTestFetcher(nil).FetchArticles(context.Background(), "http://127.0.0.1:1/feed", 24)
		var fetchErr *domain.FetchError
		require.ErrorAs(t, err, &fetchErr)
	})
}

func TestFetcher_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "utf-8", r.Header.Get("Accept-Charset"))
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		_, _ = w.Write([]byte(`<rss version="2.0"><channel><title>t</title></channel></rss>`))
	}))
	defer srv.Close()

	articles, err := newTestFetcher(nil).FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestFetcher_Validate(t *testing.T) {
	good := feedServer(t, `<rss version="2.0"><channel><title>ok</title></channel></rss>`)
	bad := feedServer(t, `<html><body>not a feed</body></html>`)

	f := newTestFetcher(nil)
	assert.True(t, f.Validate(context.Background(), good.URL))
	assert.False(t, f.Validate(context.Background(), bad.URL))
	assert.False(t, f.Validate(context.Background(), "http://127.0.0.1:1/feed"))
}

type extractorFunc func(ctx context.Context, url string) (content.Page, error)

func (e extractorFunc) Extract(ctx context.Context, url string) (content.Page, error) { return e(ctx, url) }

func TestFetcher_FetchArticles_Extractor(t *testing.T) {
	rss := `<rss version="2.0"><channel><title>t</title>
		<item><title>Bare</title><link>https://example.com/bare</link></item>
		<item><title>Failing</title><link>https://example.com/fail</link></item>
		<item><title>Has text</title><link>https://example.com/text</link><description>tekst</description></item>
	</channel></rss>`
	srv := feedServer(t, rss)

	var calls int32
	ext := extractorFunc(func(_ context.Context, url string) (content.Page, error) {
		atomic.AddInt32(&calls, 1)
		if url == "https://example.com/fail" {
			return content.Page{}, errors.New("boom")
		}
		return content.Page{Text: "Udtrukket RÃ¥dhus tekst", ImageURL: "https://cdn.example.com/lead.jpg"}, nil
	})

	articles, err := newTestFetcher(ext).FetchArticles(context.Background(), srv.URL, 24)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "only items without text are extracted")
	assert.Equal(t, "Udtrukket Rådhus tekst", articles[0].Content)
	assert.Equal(t, "https://cdn.example.com/lead.jpg", articles[0].ImageURL)
	assert.Empty(t, articles[1].Content)
	assert.Equal(t, "tekst", articles[2].Content)
}
