package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/leadfeed/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	URL         string     `db:"url"`
	Description string     `db:"description"`
	Active      bool       `db:"active"`
	LastFetched *time.Time `db:"last_fetched"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	ArticleCount int `db:"article_count"`
}

// selectFeeds selects feed rows with the number of their articles
func selectFeeds() sq.SelectBuilder {
	articleCount := sq.Select("COUNT(*)").From("articles a").Where("a.feed_id = f.id")
	return sq.Select("f.*").Column(sq.Alias(articleCount, "article_count")).From("feeds f")
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed, a feed with the same url gives domain.ErrDuplicate
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	now := time.Now().UTC()
	sqlFeed := &feedSQL{
		Name:        strings.TrimSpace(feed.Name),
		URL:         strings.TrimSpace(feed.URL),
		Description: feed.Description,
		Active:      feed.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO feeds (name, url, description, active, created_at, updated_at)
		VALUES (:name, :url, :description, :active, :created_at, :updated_at)
	`
	var id int64
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("create feed %s: %w", sqlFeed.URL, domain.ErrDuplicate)
		}
		return fmt.Errorf("create feed: %w", err)
	}

	feed.ID = id
	feed.Name, feed.URL = sqlFeed.Name, sqlFeed.URL
	feed.CreatedAt, feed.UpdatedAt = now, now
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	query, args, err := selectFeeds().Where(sq.Eq{"f.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed query: %w", err)
	}
	var sqlFeed feedSQL
	err = r.db.GetContext(ctx, &sqlFeed, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// GetFeeds retrieves all feeds or active ones only, ordered by name
func (r *FeedRepository) GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error) {
	builder := selectFeeds().OrderBy("f.name", "f.id")
	if activeOnly {
		builder = builder.Where(sq.Eq{"f.active": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feeds query: %w", err)
	}

	var sqlFeeds []feedSQL
	if err := r.db.SelectContext(ctx, &sqlFeeds, query, args...); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = *r.toDomainFeed(&sqlFeeds[i])
	}
	return feeds, nil
}

// UpdateFeed applies a partial update and returns the updated feed
func (r *FeedRepository) UpdateFeed(ctx context.Context, id int64, upd domain.FeedUpdate) (*domain.Feed, error) {
	builder := sq.Update("feeds").Set("updated_at", time.Now().UTC()).Where(sq.Eq{"id": id})
	if upd.Name != nil {
		builder = builder.Set("name", strings.TrimSpace(*upd.Name))
	}
	if upd.Description != nil {
		builder = builder.Set("description", *upd.Description)
	}
	if upd.Active != nil {
		builder = builder.Set("active", *upd.Active)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feed update: %w", err)
	}

	var affected int64
	err = withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update feed: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update feed %d: %w", id, domain.ErrNotFound)
	}
	return r.GetFeed(ctx, id)
}

// DeleteFeed removes a feed with all its articles and evaluations
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	var affected int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete feed %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateFeedFetched records the time of the last completed run
func (r *FeedRepository) UpdateFeedFetched(ctx context.Context, feedID int64, fetchedAt time.Time) error {
	err := withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE feeds SET last_fetched = ?, updated_at = ? WHERE id = ?",
			fetchedAt.UTC(), time.Now().UTC(), feedID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update feed fetched: %w", err)
	}
	return nil
}

// toDomainFeed converts feedSQL to domain.Feed
func (r *FeedRepository) toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:          sqlFeed.ID,
		Name:        sqlFeed.Name,
		URL:         sqlFeed.URL,
		Description: sqlFeed.Description,
		Active:      sqlFeed.Active,
		LastFetched: sqlFeed.LastFetched,
		CreatedAt:   sqlFeed.CreatedAt,
		UpdatedAt:   sqlFeed.UpdatedAt,

		ArticleCount: sqlFeed.ArticleCount,
	}
}
