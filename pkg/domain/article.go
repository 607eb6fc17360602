package domain

import "time"

// Article is one ingested item, unique by Link
type Article struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Content     string     `json:"content,omitempty"`
	Author      string     `json:"author,omitempty"`
	Link        string     `json:"link"`
	GUID        string     `json:"guid,omitempty"`
	PubDate     *time.Time `json:"pub_date,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ParsedArticle is a normalized feed item as returned by the fetcher
type ParsedArticle struct {
	Title       string
	Description string
	Content     string
	Author      string
	Link        string
	GUID        string
	PubDate     *time.Time
	ImageURL    string
}

// Text returns the fields used for relevance evaluation
func (a ParsedArticle) Text() ArticleText {
	return ArticleText{Title: a.Title, Description: a.Description, Content: a.Content}
}

// Text returns the fields used for relevance evaluation
func (a Article) Text() ArticleText {
	return ArticleText{Title: a.Title, Description: a.Description, Content: a.Content}
}

// ArticleText is the evaluator input
type ArticleText struct {
	Title       string
	Description string
	Content     string
}
