package domain

import "time"

// Feed represents a registered article source
type Feed struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// ArticleCount is filled by feed reads, not stored
	ArticleCount int `json:"article_count"`
}

// FeedDetails is a feed with its most recent articles
type FeedDetails struct {
	Feed
	RecentArticles []ArticleView `json:"recent_articles"`
}

// FeedRequest is the admin input for registering a new feed
type FeedRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	URL         string `json:"url" validate:"required,http_url,max=2048"`
	Description string `json:"description" validate:"max=1000"`
}

// FeedUpdate carries a partial feed update, nil fields are left untouched
type FeedUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=1000"`
	Active      *bool   `json:"active,omitempty"`
}
