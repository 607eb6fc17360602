package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/leadfeed/pkg/domain"
)

func testViews() []domain.ArticleView {
	pubTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	later := pubTime.Add(time.Hour)
	return []domain.ArticleView{
		{
			Article: domain.Article{
				ID:          1,
				Title:       "Nyt hovedsæde i Ørestad",
				Link:        "https://example.com/article1",
				GUID:        "guid1",
				Description: "Kort beskrivelse",
				Author:      "Mette Hansen",
				PubDate:     &pubTime,
				ImageURL:    "https://cdn.example.com/hq.png?w=600",
			},
			FeedName: "Byggeri",
			Evaluation: &domain.Evaluation{
				RelevanceScore:   85,
				Priority:         domain.PriorityHigh,
				KeyReasons:       []string{"Corporate HQ", "Bespoke doors"},
				Categories:       []string{"Corporate HQ", "Custom Architecture"},
				SuggestedActions: "Contact the architect",
				Summary:          "Nyt hovedsæde med specialdøre",
			},
		},
		{
			Article: domain.Article{
				ID:          2,
				Title:       "Hotel renovering",
				Link:        "https://example.com/article2",
				GUID:        "https://example.com/article2",
				Description: "Hotel i Aarhus",
				PubDate:     &later,
			},
			Evaluation: &domain.Evaluation{RelevanceScore: 65, Priority: domain.PriorityMedium, Categories: []string{"Hotel Development"}},
		},
		{
			Article: domain.Article{ID: 3, Title: "Not evaluated", Link: "https://example.com/article3"},
		},
	}
}

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com")
	generator.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	t.Run("sales intelligence feed", func(t *testing.T) {
		rss, err := generator.GenerateRSS(testViews(), 60)
		require.NoError(t, err)

		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Leadfeed - Sales Intelligence (Score ≥ 60)</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `href="https://example.com/rss/sales?min_score=60"`)
		assert.Contains(t, rss, `<lastBuildDate>Tue, 02 Jan 2024 00:00:00 +0000</lastBuildDate>`)

		assert.Contains(t, rss, `<title>[85] Nyt hovedsæde i Ørestad</title>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">guid1</guid>`)
		assert.Contains(t, rss, `<guid isPermaLink="true">https://example.com/article2</guid>`)
		assert.Contains(t, rss, `<author>Mette Hansen</author>`)
		assert.Contains(t, rss, `<category>Custom Architecture</category>`)
		assert.Contains(t, rss, `<enclosure url="https://cdn.example.com/hq.png?w=600" type="image/png" length="0"></enclosure>`)
		assert.Contains(t, rss, `Score: 85/100 (HIGH)`)
		assert.Contains(t, rss, `Nyt hovedsæde med specialdøre`)
		assert.Contains(t, rss, `Contact the architect`)

		assert.Contains(t, rss, `<title>[65] Hotel renovering</title>`)
		assert.Contains(t, rss, "Hotel i Aarhus", "description used when there is no summary")
		assert.NotContains(t, rss, "Not evaluated")
	})

	t.Run("empty items", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, 60)
		require.NoError(t, err)
		assert.Contains(t, rss, `<channel>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("trailing slash in base URL", func(t *testing.T) {
		gen := NewGenerator("https://example.com/")
		rss, err := gen.GenerateRSS(testViews()[:1], 70)
		require.NoError(t, err)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.NotContains(t, rss, `https://example.com//`)
	})

	t.Run("valid xml with escaped characters", func(t *testing.T) {
		views := testViews()[:1]
		views[0].Title = "Døre & vinduer <nye>"
		rss, err := generator.GenerateRSS(views, 60)
		require.NoError(t, err)
		assert.Contains(t, rss, "Døre &amp; vinduer &lt;nye&gt;")

		var doc RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
		require.Len(t, doc.Channel.Items, 1)
		assert.Equal(t, "[85] Døre & vinduer <nye>", doc.Channel.Items[0].Title)
	})
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "image/png", imageType("https://x/a.PNG"))
	assert.Equal(t, "image/jpeg", imageType("https://x/a.jpg#frag"))
	assert.Equal(t, "image/jpeg", imageType("https://x/image"))
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://example.com")

	feeds := []domain.Feed{
		{ID: 1, Name: "Byggeri", URL: "https://byggeri.dk/feed.xml", Active: true},
		{ID: 2, Name: "Arkitektur", URL: "https://arkitektur.dk/rss", Active: true},
		{ID: 3, Name: "Paused Feed", URL: "https://paused.dk/feed", Active: false},
	}

	opml, err := generator.GenerateOPML(feeds)
	require.NoError(t, err)

	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>Leadfeed Subscriptions</title>`)
	assert.Contains(t, opml, `text="Byggeri"`)
	assert.Contains(t, opml, `xmlUrl="https://byggeri.dk/feed.xml"`)
	assert.Contains(t, opml, `xmlUrl="https://arkitektur.dk/rss"`)
	assert.NotContains(t, opml, "Paused Feed")
}
