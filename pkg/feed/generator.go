package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/leadfeed/pkg/domain"
)

// Generator renders stored articles and feeds as RSS and OPML documents
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of evaluated articles scoring at least minScore
func (g *Generator) GenerateRSS(items []domain.ArticleView, minScore int) (string, error) {
	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		if item.Evaluation == nil {
			continue
		}
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("Leadfeed - Sales Intelligence (Score ≥ %d)", minScore),
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Articles with sales relevance score ≥ %d", minScore),
			Language:      "da",
			AtomLink:      &AtomLink{Href: fmt.Sprintf("%s/rss/sales?min_score=%d", g.baseURL, minScore), Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem converts an evaluated article to an RSS item
func (g *Generator) convertToRSSItem(item domain.ArticleView) *RSSItem {
	eval := item.Evaluation

	var desc strings.Builder
	fmt.Fprintf(&desc, "Score: %d/100 (%s)", eval.RelevanceScore, eval.Priority)
	if eval.Summary != "" {
		desc.WriteString("\n\n" + eval.Summary)
	} else if item.Description != "" {
		desc.WriteString("\n\n" + item.Description)
	}
	if len(eval.KeyReasons) > 0 {
		desc.WriteString("\n\nReasons:\n- " + strings.Join(eval.KeyReasons, "\n- "))
	}
	if eval.SuggestedActions != "" {
		desc.WriteString("\n\nSuggested actions:\n" + eval.SuggestedActions)
	}

	res := &RSSItem{
		Title:       fmt.Sprintf("[%d] %s", eval.RelevanceScore, item.Title),
		Link:        item.Link,
		Description: desc.String(),
		Author:      item.Author,
		Categories:  eval.Categories,
	}
	if item.GUID != "" {
		res.GUID = &RSSGUID{Value: item.GUID, IsPermaLink: item.GUID == item.Link}
	}
	if item.PubDate != nil {
		res.PubDate = item.PubDate.Format(time.RFC1123Z)
	}
	if item.ImageURL != "" {
		res.Enclosure = &RSSEnclosure{URL: item.ImageURL, Type: imageType(item.ImageURL)}
	}
	return res
}

// imageType guesses the mime type of an image url from its extension
func imageType(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(u))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}

// GenerateOPML creates an OPML file with active feed subscriptions
func (g *Generator) GenerateOPML(feeds []domain.Feed) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLURL  string   `xml:"xmlUrl,attr"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(feeds))
	for _, f := range feeds {
		if !f.Active {
			continue
		}
		outlines = append(outlines, outline{Text: f.Name, Title: f.Name, Type: "rss", XMLURL: f.URL})
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: "Leadfeed Subscriptions", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
