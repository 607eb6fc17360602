package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/leadfeed/pkg/domain"
)

// EvaluationRepository handles evaluation-related database operations
type EvaluationRepository struct {
	db *sqlx.DB
}

// evaluationSQL represents an evaluation for SQL operations
type evaluationSQL struct {
	ID               int64          `db:"id"`
	ArticleID        int64          `db:"article_id"`
	RelevanceScore   int            `db:"relevance_score"`
	KeyReasons       stringsSQL     `db:"key_reasons"`
	SuggestedActions sql.NullString `db:"suggested_actions"`
	Categories       stringsSQL     `db:"categories"`
	Priority         string         `db:"priority"`
	Summary          sql.NullString `db:"summary"`
	ScoreBreakdown   breakdownSQL   `db:"score_breakdown"`
	CreatedAt        time.Time      `db:"created_at"`
}

// stringsSQL is a JSON array of strings stored as text
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = stringsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected string list type %T", value)
	}
	var res []string
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	if res == nil {
		res = []string{}
	}
	*s = res
	return nil
}

// breakdownSQL is an optional score breakdown stored as JSON text, NULL when absent
type breakdownSQL struct {
	breakdown *domain.ScoreBreakdown
}

// Value implements driver.Valuer for database storage
func (b breakdownSQL) Value() (driver.Value, error) {
	if b.breakdown == nil {
		return nil, nil
	}
	data, err := json.Marshal(b.breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal score breakdown: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (b *breakdownSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		b.breakdown = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected score breakdown type %T", value)
	}
	var res domain.ScoreBreakdown
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal score breakdown: %w", err)
	}
	b.breakdown = &res
	return nil
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(database *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: database}
}

const insertEvaluation = `
	INSERT INTO evaluations (
		article_id, relevance_score, key_reasons, suggested_actions, categories,
		priority, summary, score_breakdown, created_at
	) VALUES (
		:article_id, :relevance_score, :key_reasons, :suggested_actions, :categories,
		:priority, :summary, :score_breakdown, :created_at
	)
`

// CreateEvaluation stores the evaluation of an article. An article already evaluated gives domain.ErrDuplicate.
func (r *EvaluationRepository) CreateEvaluation(ctx context.Context, eval *domain.Evaluation) error {
	sqlEval := toSQLEvaluation(eval)
	err := withRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, insertEvaluation, sqlEval)
		if err != nil {
			return err
		}
		sqlEval.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("create evaluation for article %d: %w", eval.ArticleID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create evaluation: %w", err)
	}
	eval.ID, eval.CreatedAt = sqlEval.ID, sqlEval.CreatedAt
	return nil
}

// ReplaceEvaluation deletes the existing evaluation of the article, if any, and stores the new one
// in a single transaction
func (r *EvaluationRepository) ReplaceEvaluation(ctx context.Context, eval *domain.Evaluation) error {
	sqlEval := toSQLEvaluation(eval)
	err := withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err = tx.ExecContext(ctx, "DELETE FROM evaluations WHERE article_id = ?", eval.ArticleID); err != nil {
			return err
		}
		result, err := tx.NamedExecContext(ctx, insertEvaluation, sqlEval)
		if err != nil {
			return err
		}
		if sqlEval.ID, err = result.LastInsertId(); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("replace evaluation for article %d: %w", eval.ArticleID, err)
	}
	eval.ID, eval.CreatedAt = sqlEval.ID, sqlEval.CreatedAt
	return nil
}

// GetEvaluation retrieves the evaluation of an article
func (r *EvaluationRepository) GetEvaluation(ctx context.Context, articleID int64) (*domain.Evaluation, error) {
	var sqlEval evaluationSQL
	err := r.db.GetContext(ctx, &sqlEval, "SELECT * FROM evaluations WHERE article_id = ?", articleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get evaluation for article %d: %w", articleID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get evaluation: %w", err)
	}
	return toDomainEvaluation(&sqlEval), nil
}

// HasEvaluation checks if the article is evaluated
func (r *EvaluationRepository) HasEvaluation(ctx context.Context, articleID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM evaluations WHERE article_id = ?)", articleID)
	if err != nil {
		return false, fmt.Errorf("check evaluation exists: %w", err)
	}
	return exists, nil
}

func toSQLEvaluation(eval *domain.Evaluation) *evaluationSQL {
	return &evaluationSQL{
		ArticleID:        eval.ArticleID,
		RelevanceScore:   domain.ClampScore(eval.RelevanceScore),
		KeyReasons:       stringsSQL(eval.KeyReasons),
		SuggestedActions: sql.NullString{String: eval.SuggestedActions, Valid: eval.SuggestedActions != ""},
		Categories:       stringsSQL(eval.Categories),
		Priority:         string(domain.PriorityFromScore(domain.ClampScore(eval.RelevanceScore))),
		Summary:          sql.NullString{String: eval.Summary, Valid: eval.Summary != ""},
		ScoreBreakdown:   breakdownSQL{breakdown: eval.ScoreBreakdown},
		CreatedAt:        time.Now().UTC(),
	}
}

func toDomainEvaluation(e *evaluationSQL) *domain.Evaluation {
	return &domain.Evaluation{
		ID:               e.ID,
		ArticleID:        e.ArticleID,
		RelevanceScore:   e.RelevanceScore,
		KeyReasons:       nonNilStrings(e.KeyReasons),
		SuggestedActions: e.SuggestedActions.String,
		Categories:       nonNilStrings(e.Categories),
		Priority:         domain.Priority(e.Priority),
		Summary:          e.Summary.String,
		ScoreBreakdown:   e.ScoreBreakdown.breakdown,
		CreatedAt:        e.CreatedAt,
	}
}

func nonNilStrings(s stringsSQL) []string {
	if s == nil {
		return []string{}
	}
	return s
}
