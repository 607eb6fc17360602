package server

import (
	"context"

	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetFeeds returns all feeds, active and paused
func (r *RepositoryAdapter) GetFeeds(ctx context.Context) ([]domain.Feed, error) {
	return r.repos.Feed.GetFeeds(ctx, false)
}

// GetFeed returns a feed by id
func (r *RepositoryAdapter) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	return r.repos.Feed.GetFeed(ctx, id)
}

// RecentArticles returns the newest articles of a feed
func (r *RepositoryAdapter) RecentArticles(ctx context.Context, feedID int64, limit int) ([]domain.ArticleView, error) {
	return r.repos.Article.RecentArticles(ctx, feedID, limit)
}

// UpdateFeed applies a partial update to a feed
func (r *RepositoryAdapter) UpdateFeed(ctx context.Context, id int64, upd domain.FeedUpdate) (*domain.Feed, error) {
	return r.repos.Feed.UpdateFeed(ctx, id, upd)
}

// DeleteFeed removes a feed, its articles and their evaluations
func (r *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return r.repos.Feed.DeleteFeed(ctx, id)
}

// MarkRead sets or clears the read flag of an article
func (r *RepositoryAdapter) MarkRead(ctx context.Context, articleID int64, read bool) error {
	return r.repos.Article.MarkRead(ctx, articleID, read)
}
