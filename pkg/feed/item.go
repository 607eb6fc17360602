package feed

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/normalize"
)

// untitled is used when an item has no usable title
const untitled = "Untitled"

// convert maps a parsed feed item to a normalized article
func (f *Fetcher) convert(item *gofeed.Item) domain.ParsedArticle {
	rich := item.Content // content:encoded for rss, content for atom
	if rich == "" {
		rich = item.Description
	}

	res := domain.ParsedArticle{
		Title:       normalize.RepairEncoding(item.Title),
		Description: normalize.RepairEncoding(f.snippet(item)),
		Content:     normalize.StripBoilerplate(normalize.RepairEncoding(rich)),
		Author:      normalize.RepairEncoding(itemAuthor(item)),
		Link:        strings.TrimSpace(item.Link),
		GUID:        strings.TrimSpace(item.GUID),
		ImageURL:    itemImage(item),
	}
	if res.Title == "" {
		res.Title = untitled
	}
	if res.GUID == "" {
		res.GUID = res.Link
	}

	switch {
	case item.PublishedParsed != nil:
		ts := *item.PublishedParsed
		res.PubDate = &ts
	case item.UpdatedParsed != nil:
		ts := *item.UpdatedParsed
		res.PubDate = &ts
	}
	return res
}

// snippet returns the short plain-text form of the item summary
func (f *Fetcher) snippet(item *gofeed.Item) string {
	src := item.Description
	if src == "" {
		src = item.Content
	}
	if src == "" {
		return ""
	}
	text := html.UnescapeString(f.sanitizer.Sanitize(src))
	return strings.Join(strings.Fields(text), " ")
}

// itemAuthor prefers dc:creator over the author element
func itemAuthor(item *gofeed.Item) string {
	if item.DublinCoreExt != nil {
		for _, c := range item.DublinCoreExt.Creator {
			if c = strings.TrimSpace(c); c != "" {
				return c
			}
		}
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

// itemImage picks the article image: image enclosure, then media extension url, then the first img in the html
func itemImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(strings.ToLower(enc.Type), "image/") {
			return enc.URL
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := strings.TrimSpace(ext.Attrs["url"]); u != "" {
					return u
				}
			}
		}
	}

	src := item.Content
	if src == "" {
		src = item.Description
	}
	return firstImage(src)
}

// firstImage returns src of the first img element in an html fragment
func firstImage(fragment string) string {
	if !strings.Contains(strings.ToLower(fragment), "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var res string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			res = strings.TrimSpace(src)
			return false
		}
		return true
	})
	return res
}
