// Package query builds filtered, paginated views of stored articles.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/leadfeed/pkg/domain"
)

//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore

// ArticleStore runs filtered article queries and returns the page with the total match count
type ArticleStore interface {
	QueryArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleView, int, error)
}

// Service resolves query parameters into store filters and paginates the results
type Service struct {
	store        ArticleStore
	defaultLimit int
	maxLimit     int
	minScore     int
	loc          *time.Location
	now          func() time.Time
}

// Params holds dependencies and defaults of Service
type Params struct {
	Store        ArticleStore
	DefaultLimit int            // 20 if not set
	MaxLimit     int            // 100 if not set
	MinScore     int            // default sales intelligence threshold, 60 if not set
	Location     *time.Location // time zone of time windows, local if nil
}

// NewService creates a query service
func NewService(p Params) *Service {
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = 20
	}
	if p.MaxLimit <= 0 {
		p.MaxLimit = 100
	}
	if p.MinScore <= 0 {
		p.MinScore = 60
	}
	if p.Location == nil {
		p.Location = time.Local
	}
	return &Service{
		store:        p.Store,
		defaultLimit: p.DefaultLimit,
		maxLimit:     p.MaxLimit,
		minScore:     p.MinScore,
		loc:          p.Location,
		now:          time.Now,
	}
}

// Articles returns one page of articles matching the filter. Articles without evaluation sort last.
func (s *Service) Articles(ctx context.Context, filter domain.ArticleFilter) (*domain.ArticlePage, error) {
	from, to, err := s.window(filter.Window)
	if err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to
	filter.ScoreOnly = false
	return s.page(ctx, filter)
}

// SalesIntelligence returns evaluated articles scored at least minScore, ordered by score only.
// A nil minScore uses the configured default, an explicit value is clamped to 0..100.
func (s *Service) SalesIntelligence(ctx context.Context, minScore *int, sort domain.SortDir, page, limit int) (*domain.ArticlePage, error) {
	threshold := s.minScore
	if minScore != nil {
		threshold = domain.ClampScore(*minScore)
	}
	filter := domain.ArticleFilter{
		Window:    domain.WindowAll,
		MinScore:  &threshold,
		Sort:      sort,
		Page:      page,
		Limit:     limit,
		ScoreOnly: true,
	}
	return s.page(ctx, filter)
}

func (s *Service) page(ctx context.Context, filter domain.ArticleFilter) (*domain.ArticlePage, error) {
	switch filter.Sort {
	case domain.SortAsc, domain.SortDesc:
	case "":
		filter.Sort = domain.SortAsc
	default:
		return nil, &domain.ValidationError{Field: "sort", Message: "must be asc or desc"}
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = s.defaultLimit
	}
	filter.Limit = min(filter.Limit, s.maxLimit)

	items, total, err := s.store.QueryArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	if items == nil {
		items = []domain.ArticleView{}
	}
	return &domain.ArticlePage{
		Items: items,
		Pagination: domain.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: (total + filter.Limit - 1) / filter.Limit,
		},
	}, nil
}

// window returns the [from, to) publish date range of a time window, nil bounds for "all"
func (s *Service) window(w domain.TimeWindow) (from, to *time.Time, err error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	var start, end time.Time
	switch w {
	case "", domain.WindowAll:
		return nil, nil, nil
	case domain.WindowToday:
		start, end = today, today.AddDate(0, 0, 1)
	case domain.WindowWeek:
		offset := (int(today.Weekday()) + 6) % 7 // days since monday
		start = today.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case domain.WindowMonth:
		start, end = thisMonth, thisMonth.AddDate(0, 1, 0)
	case domain.WindowLastMonth:
		start, end = thisMonth.AddDate(0, -1, 0), thisMonth
	default:
		return nil, nil, &domain.ValidationError{Field: "filter", Message: "must be one of all, today, week, month, lastMonth"}
	}
	return &start, &end, nil
}
