package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/locker"
	"github.com/umputun/leadfeed/pkg/metrics"
)

//go:generate moq -out mocks/feed_manager.go -pkg mocks -skip-ensure -fmt goimports . FeedManager
//go:generate moq -out mocks/article_manager.go -pkg mocks -skip-ensure -fmt goimports . ArticleManager
//go:generate moq -out mocks/evaluation_manager.go -pkg mocks -skip-ensure -fmt goimports . EvaluationManager
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/evaluator.go -pkg mocks -skip-ensure -fmt goimports . Evaluator
//go:generate moq -out mocks/locker.go -pkg mocks -skip-ensure -fmt goimports . Locker

// FeedManager handles feed storage
type FeedManager interface {
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeeds(ctx context.Context, activeOnly bool) ([]domain.Feed, error)
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	UpdateFeedFetched(ctx context.Context, feedID int64, fetchedAt time.Time) error
}

// ArticleManager handles article storage
type ArticleManager interface {
	GetArticleByLink(ctx context.Context, link string) (*domain.Article, error)
	CreateArticle(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error)
	BackfillContent(ctx context.Context, id int64, content string) (bool, error)
	ListArticles(ctx context.Context, afterID int64, limit int) ([]domain.Article, error)
	ListArticlesWithoutEvaluation(ctx context.Context, afterID int64, limit int) ([]domain.Article, error)
	CountWithoutEvaluation(ctx context.Context) (int, error)
}

// EvaluationManager handles evaluation storage
type EvaluationManager interface {
	HasEvaluation(ctx context.Context, articleID int64) (bool, error)
	CreateEvaluation(ctx context.Context, eval *domain.Evaluation) error
	ReplaceEvaluation(ctx context.Context, eval *domain.Evaluation) error
}

// Fetcher retrieves feeds and parses them into articles
type Fetcher interface {
	FetchArticles(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error)
	Validate(ctx context.Context, feedURL string) bool
}

// Evaluator scores an article for sales relevance, it never fails
type Evaluator interface {
	Evaluate(ctx context.Context, article domain.ArticleText) domain.Evaluation
}

// Locker guards scoring of a single article across overlapping runs
type Locker interface {
	TryLock(ctx context.Context, key string) (locker.ReleaseFunc, bool, error)
}

// articleResult is the outcome of processing one fetched article
type articleResult int

const (
	resultNoop articleResult = iota
	resultCreated
	resultUpdated
)

// FeedProcessor is the ingestion pipeline: it fetches feeds, stores new articles, back-fills
// content of link-only ones and scores each article once. Manual, scheduled and bulk runs all
// call it independently, overlapping runs rely on storage uniqueness and never create duplicates.
type FeedProcessor struct {
	feeds       FeedManager
	articles    ArticleManager
	evaluations EvaluationManager
	fetcher     Fetcher
	evaluator   Evaluator
	locker      Locker

	maxWorkers int
	hoursBack  int
	batchSize  int
	now        func() time.Time
}

// Params holds dependencies and settings of FeedProcessor
type Params struct {
	FeedManager       FeedManager
	ArticleManager    ArticleManager
	EvaluationManager EvaluationManager
	Fetcher           Fetcher
	Evaluator         Evaluator
	Locker            Locker // in-process locker if nil
	MaxWorkers        int    // feeds ingested concurrently, 5 if not set
	HoursBack         int    // ingestion window, 24 if not set
	BatchSize         int    // page size of bulk evaluation runs, 50 if not set
}

// NewFeedProcessor creates a new feed processor
func NewFeedProcessor(p Params) *FeedProcessor {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 5
	}
	if p.HoursBack <= 0 {
		p.HoursBack = 24
	}
	if p.BatchSize <= 0 {
		p.BatchSize = 50
	}
	if p.Locker == nil {
		p.Locker = locker.NewLocal()
	}
	return &FeedProcessor{
		feeds:       p.FeedManager,
		articles:    p.ArticleManager,
		evaluations: p.EvaluationManager,
		fetcher:     p.Fetcher,
		evaluator:   p.Evaluator,
		locker:      p.Locker,
		maxWorkers:  p.MaxWorkers,
		hoursBack:   p.HoursBack,
		batchSize:   p.BatchSize,
		now:         time.Now,
	}
}

// IngestFeed runs ingestion for a single feed. A feed that can't be fetched returns *domain.FetchError
// and leaves storage untouched.
func (fp *FeedProcessor) IngestFeed(ctx context.Context, feedID int64) (domain.IngestSummary, error) {
	runID := newRunID()
	feed, err := fp.feeds.GetFeed(ctx, feedID)
	if err != nil {
		return domain.IngestSummary{RunID: runID}, fmt.Errorf("get feed %d: %w", feedID, err)
	}
	res, err := fp.ingest(ctx, runID, *feed)
	res.RunID = runID
	return res, err
}

// IngestAllActiveFeeds runs ingestion for every active feed, up to maxWorkers feeds at a time.
// A feed that fails to fetch counts as one error, other feeds are not affected.
func (fp *FeedProcessor) IngestAllActiveFeeds(ctx context.Context) (domain.IngestSummary, error) {
	runID := newRunID()
	res := domain.IngestSummary{RunID: runID}

	feeds, err := fp.feeds.GetFeeds(ctx, true)
	if err != nil {
		return res, fmt.Errorf("get active feeds: %w", err)
	}
	lgr.Printf("[INFO] run %s: ingesting %d active feeds", runID, len(feeds))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(fp.maxWorkers)
	for _, f := range feeds {
		g.Go(func() error {
			feedRes, err := fp.ingest(ctx, runID, f)
			if err != nil {
				lgr.Printf("[WARN] run %s: feed %s failed: %v", runID, feedName(f), err)
				feedRes.Errors++
			}
			mu.Lock()
			res.Add(feedRes)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	lgr.Printf("[INFO] run %s: %d feeds, %d created, %d updated, %d errors",
		runID, res.Feeds, res.Created, res.Updated, res.Errors)
	return res, nil
}

// ingest fetches one feed and processes its articles sequentially
func (fp *FeedProcessor) ingest(ctx context.Context, runID string, f domain.Feed) (domain.IngestSummary, error) {
	st := time.Now()
	res := domain.IngestSummary{Feeds: 1}
	name := feedName(f)
	lgr.Printf("[DEBUG] run %s: fetching feed %s", runID, name)

	parsed, err := fp.fetcher.FetchArticles(ctx, f.URL, fp.hoursBack)
	if err != nil {
		metrics.RecordFeedRun("fetch_error", time.Since(st))
		return res, err
	}

	for _, article := range parsed {
		if ctx.Err() != nil {
			break
		}
		result, err := fp.processArticle(ctx, f.ID, article)
		if err != nil {
			lgr.Printf("[WARN] run %s: feed %s, article %q: %v", runID, name, article.Link, err)
			res.Errors++
			continue
		}
		switch result {
		case resultCreated:
			res.Created++
		case resultUpdated:
			res.Updated++
		}
	}

	if err := fp.feeds.UpdateFeedFetched(ctx, f.ID, fp.now()); err != nil {
		lgr.Printf("[WARN] run %s: failed to update last fetched for feed %s: %v", runID, name, err)
	}

	status := "ok"
	if res.Errors > 0 {
		status = "error"
	}
	metrics.RecordFeedRun(status, time.Since(st))
	metrics.RecordArticles(res.Created, res.Updated, res.Errors)
	lgr.Printf("[INFO] run %s: feed %s, %d fetched, %d created, %d updated, %d errors in %v",
		runID, name, len(parsed), res.Created, res.Updated, res.Errors, time.Since(st).Truncate(time.Millisecond))
	return res, ctx.Err()
}

// processArticle applies the create-or-backfill decision to one fetched article
func (fp *FeedProcessor) processArticle(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (articleResult, error) {
	if strings.TrimSpace(parsed.Link) == "" {
		return resultNoop, nil // link is the dedup key
	}

	existing, err := fp.articles.GetArticleByLink(ctx, parsed.Link)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fp.createArticle(ctx, feedID, parsed)
	case err != nil:
		return resultNoop, fmt.Errorf("lookup article: %w", err)
	}

	// first non-empty content wins, stored content is never replaced
	if strings.TrimSpace(parsed.Content) == "" || strings.TrimSpace(existing.Content) != "" {
		return resultNoop, nil
	}
	updated, err := fp.articles.BackfillContent(ctx, existing.ID, parsed.Content)
	if err != nil {
		return resultNoop, fmt.Errorf("backfill content: %w", err)
	}
	if !updated {
		return resultNoop, nil // another run back-filled it first
	}

	existing.Content = parsed.Content
	if _, err := fp.evaluateOnce(ctx, *existing); err != nil {
		return resultNoop, fmt.Errorf("evaluate back-filled article %d: %w", existing.ID, err)
	}
	return resultUpdated, nil
}

func (fp *FeedProcessor) createArticle(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (articleResult, error) {
	article, err := fp.articles.CreateArticle(ctx, feedID, parsed)
	if errors.Is(err, domain.ErrDuplicate) {
		return resultNoop, nil // a concurrent run inserted the same link first
	}
	if err != nil {
		return resultNoop, fmt.Errorf("create article: %w", err)
	}
	if _, err := fp.evaluateOnce(ctx, *article); err != nil {
		return resultNoop, fmt.Errorf("evaluate new article %d: %w", article.ID, err)
	}
	return resultCreated, nil
}

// evaluateOnce scores the article and stores the evaluation, unless it is already evaluated or
// another run holds its lock. Returns true if a new evaluation was stored.
func (fp *FeedProcessor) evaluateOnce(ctx context.Context, article domain.Article) (bool, error) {
	release, ok, err := fp.locker.TryLock(ctx, lockKey(article.ID))
	switch {
	case err != nil:
		lgr.Printf("[WARN] lock for article %d failed, evaluating without lock: %v", article.ID, err)
	case !ok:
		metrics.RecordEvaluation(metrics.OutcomeSkipped, 0)
		return false, nil
	default:
		defer release()
	}

	has, err := fp.evaluations.HasEvaluation(ctx, article.ID)
	if err != nil {
		return false, fmt.Errorf("check evaluation: %w", err)
	}
	if has {
		return false, nil
	}

	eval := fp.score(ctx, article)
	if err := fp.evaluations.CreateEvaluation(ctx, &eval); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		metrics.RecordEvaluation(metrics.OutcomeError, 0)
		return false, fmt.Errorf("store evaluation: %w", err)
	}
	return true, nil
}

// score calls the evaluator and records the outcome
func (fp *FeedProcessor) score(ctx context.Context, article domain.Article) domain.Evaluation {
	st := time.Now()
	eval := fp.evaluator.Evaluate(ctx, article.Text())
	eval.ArticleID = article.ID
	outcome := metrics.OutcomeScored
	if eval.Fallback {
		outcome = metrics.OutcomeFallback
	}
	metrics.RecordEvaluation(outcome, time.Since(st))
	return eval
}

// EvaluateMissing scores every article that has no evaluation yet, each at most once
func (fp *FeedProcessor) EvaluateMissing(ctx context.Context) (domain.BatchSummary, error) {
	res := domain.BatchSummary{RunID: newRunID()}
	lgr.Printf("[INFO] run %s: evaluating articles without evaluation", res.RunID)

	var afterID int64
	for {
		page, err := fp.articles.ListArticlesWithoutEvaluation(ctx, afterID, fp.batchSize)
		if err != nil {
			return res, fmt.Errorf("list articles without evaluation: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, article := range page {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Total++
			stored, err := fp.evaluateOnce(ctx, article)
			switch {
			case err != nil:
				lgr.Printf("[WARN] run %s: article %d: %v", res.RunID, article.ID, err)
				res.Errors++
			case stored:
				res.Processed++
			default:
				res.Skipped++
			}
		}
		afterID = page[len(page)-1].ID
	}

	lgr.Printf("[INFO] run %s: %d missing, %d evaluated, %d skipped, %d errors",
		res.RunID, res.Total, res.Processed, res.Skipped, res.Errors)
	return res, nil
}

// ReEvaluateAll rescores every stored article and replaces its evaluation. The new score is
// computed before the old evaluation is removed, so a failed run never leaves an article unscored.
func (fp *FeedProcessor) ReEvaluateAll(ctx context.Context) (domain.BatchSummary, error) {
	res := domain.BatchSummary{RunID: newRunID()}
	lgr.Printf("[INFO] run %s: re-evaluating all articles", res.RunID)

	var afterID int64
	for {
		page, err := fp.articles.ListArticles(ctx, afterID, fp.batchSize)
		if err != nil {
			return res, fmt.Errorf("list articles: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, article := range page {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Total++
			if err := fp.reEvaluate(ctx, article); err != nil {
				if errors.Is(err, errLocked) {
					res.Skipped++
					continue
				}
				lgr.Printf("[WARN] run %s: article %d: %v", res.RunID, article.ID, err)
				res.Errors++
				continue
			}
			res.Processed++
		}
		afterID = page[len(page)-1].ID
	}

	lgr.Printf("[INFO] run %s: %d articles, %d re-evaluated, %d skipped, %d errors",
		res.RunID, res.Total, res.Processed, res.Skipped, res.Errors)
	return res, nil
}

var errLocked = errors.New("article is being evaluated by another run")

func (fp *FeedProcessor) reEvaluate(ctx context.Context, article domain.Article) error {
	release, ok, err := fp.locker.TryLock(ctx, lockKey(article.ID))
	switch {
	case err != nil:
		lgr.Printf("[WARN] lock for article %d failed, re-evaluating without lock: %v", article.ID, err)
	case !ok:
		return errLocked
	default:
		defer release()
	}

	eval := fp.score(ctx, article)
	if err := fp.evaluations.ReplaceEvaluation(ctx, &eval); err != nil {
		metrics.RecordEvaluation(metrics.OutcomeError, 0)
		return fmt.Errorf("replace evaluation: %w", err)
	}
	return nil
}

// ValidateFeedURL reports whether the url can be fetched and parsed as a feed
func (fp *FeedProcessor) ValidateFeedURL(ctx context.Context, feedURL string) bool {
	return fp.fetcher.Validate(ctx, feedURL)
}

// RegisterFeed validates and stores a new feed, then runs its first ingestion. A failed first
// ingestion is logged and reported in the summary, the feed stays registered.
func (fp *FeedProcessor) RegisterFeed(ctx context.Context, req domain.FeedRequest) (*domain.Feed, domain.IngestSummary, error) {
	req.Name, req.URL = strings.TrimSpace(req.Name), strings.TrimSpace(req.URL)
	if err := domain.Validate(req); err != nil {
		return nil, domain.IngestSummary{}, err
	}
	if !fp.fetcher.Validate(ctx, req.URL) {
		return nil, domain.IngestSummary{}, &domain.ValidationError{Field: "url", Message: "is not a reachable rss or atom feed"}
	}

	feed := &domain.Feed{Name: req.Name, URL: req.URL, Description: req.Description, Active: true}
	if err := fp.feeds.CreateFeed(ctx, feed); err != nil {
		return nil, domain.IngestSummary{}, fmt.Errorf("register feed: %w", err)
	}
	lgr.Printf("[INFO] registered feed %d: %s (%s)", feed.ID, feed.Name, feed.URL)

	runID := newRunID()
	res, err := fp.ingest(ctx, runID, *feed)
	res.RunID = runID
	if err != nil {
		lgr.Printf("[WARN] initial ingestion of feed %s failed: %v", feed.Name, err)
		res.Errors++
	}
	return feed, res, nil
}

// CountMissing returns the number of articles without evaluation
func (fp *FeedProcessor) CountMissing(ctx context.Context) (int, error) {
	count, err := fp.articles.CountWithoutEvaluation(ctx)
	if err != nil {
		return 0, fmt.Errorf("count missing evaluations: %w", err)
	}
	return count, nil
}

func lockKey(articleID int64) string {
	return fmt.Sprintf("article:%d", articleID)
}

func newRunID() string {
	return uuid.NewString()[:8]
}

// feedName returns a human-readable identifier for a feed
func feedName(f domain.Feed) string {
	if f.Name != "" {
		return f.Name
	}
	return f.URL
}
