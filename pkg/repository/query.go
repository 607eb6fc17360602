package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/umputun/leadfeed/pkg/domain"
)

// articleViewSQL is an article joined with its feed name and optional evaluation
type articleViewSQL struct {
	articleSQL
	FeedName             string         `db:"feed_name"`
	EvalID               sql.NullInt64  `db:"eval_id"`
	EvalScore            sql.NullInt64  `db:"eval_score"`
	EvalKeyReasons       stringsSQL     `db:"eval_key_reasons"`
	EvalSuggestedActions sql.NullString `db:"eval_suggested_actions"`
	EvalCategories       stringsSQL     `db:"eval_categories"`
	EvalPriority         sql.NullString `db:"eval_priority"`
	EvalSummary          sql.NullString `db:"eval_summary"`
	EvalScoreBreakdown   breakdownSQL   `db:"eval_score_breakdown"`
	EvalCreatedAt        *time.Time     `db:"eval_created_at"`
}

var articleViewColumns = []string{
	"a.id", "a.feed_id", "a.title", "a.description", "a.content", "a.author", "a.link", "a.guid",
	"a.pub_date", "a.image_url", "a.is_read", "a.created_at", "a.updated_at",
	"f.name AS feed_name",
	"e.id AS eval_id",
	"e.relevance_score AS eval_score",
	"e.key_reasons AS eval_key_reasons",
	"e.suggested_actions AS eval_suggested_actions",
	"e.categories AS eval_categories",
	"e.priority AS eval_priority",
	"e.summary AS eval_summary",
	"e.score_breakdown AS eval_score_breakdown",
	"e.created_at AS eval_created_at",
}

// QueryArticles returns one page of articles matching the filter and the total number of matches.
// Page and Limit are expected to be normalized by the caller.
func (r *ArticleRepository) QueryArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleView, int, error) {
	countQuery, countArgs, err := applyFilter(sq.Select("COUNT(*)"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err = r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	limit, page := max(filter.Limit, 1), max(filter.Page, 1)
	builder := applyFilter(sq.Select(articleViewColumns...), filter).
		OrderBy(orderBy(filter)...).
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build articles query: %w", err)
	}

	var rows []articleViewSQL
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("query articles: %w", err)
	}

	items := make([]domain.ArticleView, len(rows))
	for i := range rows {
		items[i] = r.toDomainView(&rows[i])
	}
	return items, total, nil
}

// RecentArticles returns up to limit newest articles of a feed with their evaluations
func (r *ArticleRepository) RecentArticles(ctx context.Context, feedID int64, limit int) ([]domain.ArticleView, error) {
	query, args, err := applyFilter(sq.Select(articleViewColumns...), domain.ArticleFilter{FeedID: feedID}).
		OrderBy("a.pub_date IS NULL", "a.pub_date DESC", "a.id DESC").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent articles query: %w", err)
	}

	var rows []articleViewSQL
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("recent articles: %w", err)
	}
	items := make([]domain.ArticleView, len(rows))
	for i := range rows {
		items[i] = r.toDomainView(&rows[i])
	}
	return items, nil
}

// applyFilter adds joins and conditions shared by the count and page queries
func applyFilter(b sq.SelectBuilder, filter domain.ArticleFilter) sq.SelectBuilder {
	b = b.From("articles a").
		Join("feeds f ON f.id = a.feed_id").
		LeftJoin("evaluations e ON e.article_id = a.id")

	if filter.From != nil {
		b = b.Where(sq.GtOrEq{"a.pub_date": filter.From.UTC()})
	}
	if filter.To != nil {
		b = b.Where(sq.Lt{"a.pub_date": filter.To.UTC()})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		b = b.Where(sq.Or{
			sq.Expr(lowerFunc+`(a.title) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(lowerFunc+`(a.description) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(lowerFunc+`(a.content) LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if filter.FeedID > 0 {
		b = b.Where(sq.Eq{"a.feed_id": filter.FeedID})
	}
	if filter.IsRead != nil {
		b = b.Where(sq.Eq{"a.is_read": *filter.IsRead})
	}
	if filter.MinScore != nil {
		b = b.Where(sq.GtOrEq{"e.relevance_score": *filter.MinScore})
	}
	if filter.ScoreOnly {
		b = b.Where(sq.NotEq{"e.id": nil})
	}
	return b
}

// orderBy sorts on the relevance score with unevaluated articles last, then by newest publish date
func orderBy(filter domain.ArticleFilter) []string {
	dir := "ASC"
	if filter.Sort == domain.SortDesc {
		dir = "DESC"
	}
	if filter.ScoreOnly {
		return []string{"e.relevance_score " + dir, "a.id DESC"}
	}
	return []string{"e.relevance_score IS NULL", "e.relevance_score " + dir, "a.pub_date DESC", "a.id DESC"}
}

// escapeLike escapes LIKE wildcards so the search term matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ArticleRepository) toDomainView(row *articleViewSQL) domain.ArticleView {
	res := domain.ArticleView{Article: *r.toDomainArticle(&row.articleSQL), FeedName: row.FeedName}
	if !row.EvalID.Valid {
		return res
	}
	res.Evaluation = &domain.Evaluation{
		ID:               row.EvalID.Int64,
		ArticleID:        row.ID,
		RelevanceScore:   int(row.EvalScore.Int64),
		KeyReasons:       nonNilStrings(row.EvalKeyReasons),
		SuggestedActions: row.EvalSuggestedActions.String,
		Categories:       nonNilStrings(row.EvalCategories),
		Priority:         domain.Priority(row.EvalPriority.String),
		Summary:          row.EvalSummary.String,
		ScoreBreakdown:   row.EvalScoreBreakdown.breakdown,
	}
	if row.EvalCreatedAt != nil {
		res.Evaluation.CreatedAt = *row.EvalCreatedAt
	}
	return res
}
