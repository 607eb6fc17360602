package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/leadfeed/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64      `db:"id"`
	FeedID      int64      `db:"feed_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Content     string     `db:"content"`
	Author      string     `db:"author"`
	Link        string     `db:"link"`
	GUID        string     `db:"guid"`
	PubDate     *time.Time `db:"pub_date"`
	ImageURL    string     `db:"image_url"`
	IsRead      bool       `db:"is_read"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// CreateArticle inserts a parsed article for the feed. An article with the same link gives domain.ErrDuplicate.
func (r *ArticleRepository) CreateArticle(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
	now := time.Now().UTC()
	sqlArticle := &articleSQL{
		FeedID:      feedID,
		Title:       parsed.Title,
		Description: parsed.Description,
		Content:     parsed.Content,
		Author:      parsed.Author,
		Link:        parsed.Link,
		GUID:        parsed.GUID,
		PubDate:     utcPtr(parsed.PubDate),
		ImageURL:    parsed.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO articles (
			feed_id, title, description, content, author, link, guid,
			pub_date, image_url, created_at, updated_at
		) VALUES (
			:feed_id, :title, :description, :content, :author, :link, :guid,
			:pub_date, :image_url, :created_at, :updated_at
		)
	`
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, sqlArticle)
		if err != nil {
			return err
		}
		sqlArticle.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return nil, fmt.Errorf("create article %s: %w", parsed.Link, domain.ErrDuplicate)
		}
		return nil, fmt.Errorf("create article: %w", err)
	}
	return r.toDomainArticle(sqlArticle), nil
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var sqlArticle articleSQL
	err := r.db.GetContext(ctx, &sqlArticle, "SELECT * FROM articles WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return r.toDomainArticle(&sqlArticle), nil
}

// GetArticleByLink retrieves an article by its link
func (r *ArticleRepository) GetArticleByLink(ctx context.Context, link string) (*domain.Article, error) {
	var sqlArticle articleSQL
	err := r.db.GetContext(ctx, &sqlArticle, "SELECT * FROM articles WHERE link = ?", link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article by link %s: %w", link, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article by link: %w", err)
	}
	return r.toDomainArticle(&sqlArticle), nil
}

// BackfillContent sets the content of an article whose stored content is empty. It reports whether
// this call made the change, so of two concurrent back-fills only one sees true.
func (r *ArticleRepository) BackfillContent(ctx context.Context, id int64, content string) (bool, error) {
	query := `
		UPDATE articles
		SET content = ?, updated_at = ?
		WHERE id = ? AND TRIM(content) = ''
	`
	var affected int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query, content, time.Now().UTC(), id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("backfill content: %w", err)
	}
	return affected > 0, nil
}

// ListArticles returns up to limit articles with id greater than afterID, in id order
func (r *ArticleRepository) ListArticles(ctx context.Context, afterID int64, limit int) ([]domain.Article, error) {
	query := "SELECT * FROM articles WHERE id > ? ORDER BY id LIMIT ?"
	var sqlArticles []articleSQL
	if err := r.db.SelectContext(ctx, &sqlArticles, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return r.toDomainArticles(sqlArticles), nil
}

// ListArticlesWithoutEvaluation returns up to limit unevaluated articles with id greater than afterID
func (r *ArticleRepository) ListArticlesWithoutEvaluation(ctx context.Context, afterID int64, limit int) ([]domain.Article, error) {
	query := `
		SELECT a.* FROM articles a
		LEFT JOIN evaluations e ON e.article_id = a.id
		WHERE e.id IS NULL AND a.id > ?
		ORDER BY a.id
		LIMIT ?
	`
	var sqlArticles []articleSQL
	if err := r.db.SelectContext(ctx, &sqlArticles, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("list articles without evaluation: %w", err)
	}
	return r.toDomainArticles(sqlArticles), nil
}

// CountWithoutEvaluation returns the number of articles with no evaluation
func (r *ArticleRepository) CountWithoutEvaluation(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM articles a
		LEFT JOIN evaluations e ON e.article_id = a.id
		WHERE e.id IS NULL
	`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count articles without evaluation: %w", err)
	}
	return count, nil
}

// MarkRead sets the read flag of an article
func (r *ArticleRepository) MarkRead(ctx context.Context, id int64, read bool) error {
	var affected int64
	err := withRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, "UPDATE articles SET is_read = ?, updated_at = ? WHERE id = ?",
			read, time.Now().UTC(), id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("mark article read: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark article %d read: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ArticleRepository) toDomainArticles(sqlArticles []articleSQL) []domain.Article {
	res := make([]domain.Article, len(sqlArticles))
	for i := range sqlArticles {
		res[i] = *r.toDomainArticle(&sqlArticles[i])
	}
	return res
}

// toDomainArticle converts articleSQL to domain.Article
func (r *ArticleRepository) toDomainArticle(a *articleSQL) *domain.Article {
	return &domain.Article{
		ID:          a.ID,
		FeedID:      a.FeedID,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Author:      a.Author,
		Link:        a.Link,
		GUID:        a.GUID,
		PubDate:     a.PubDate,
		ImageURL:    a.ImageURL,
		IsRead:      a.IsRead,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
