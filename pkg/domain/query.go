package domain

import "time"

// TimeWindow selects articles by publication date relative to now
type TimeWindow string

// supported time windows
const (
	WindowAll       TimeWindow = "all"
	WindowToday     TimeWindow = "today"
	WindowWeek      TimeWindow = "week"
	WindowMonth     TimeWindow = "month"
	WindowLastMonth TimeWindow = "lastMonth"
)

// SortDir is the sort direction applied to the relevance score
type SortDir string

// sort directions
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ArticleFilter is the query surface input
type ArticleFilter struct {
	Window   TimeWindow
	Search   string
	FeedID   int64 // 0 means any feed
	IsRead   *bool
	MinScore *int
	Sort     SortDir
	Page     int
	Limit    int

	// resolved by the query service from Window
	From, To *time.Time
	// ScoreOnly drops the secondary publish date ordering and requires an evaluation
	ScoreOnly bool
}

// ArticleView is an article with its feed name and evaluation, if any
type ArticleView struct {
	Article
	FeedName   string      `json:"feed_name"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Pagination describes the returned page
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ArticlePage is one page of query results
type ArticlePage struct {
	Items      []ArticleView `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
