package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/locker"
	"github.com/umputun/leadfeed/pkg/metrics"
	"github.com/umputun/leadfeed/pkg/repository"
	"github.com/umputun/leadfeed/pkg/scheduler/mocks"
)

// fixedEvaluator returns the same score for every article and counts calls
func fixedEvaluator(score int) *mocks.EvaluatorMock {
	return &mocks.EvaluatorMock{
		EvaluateFunc: func(ctx context.Context, article domain.ArticleText) domain.Evaluation {
			return domain.Evaluation{
				RelevanceScore: score,
				KeyReasons:     []string{"mentions " + article.Title},
				Categories:     []string{"construction"},
				Priority:       domain.PriorityFromScore(score),
			}
		},
	}
}

func staticFetcher(articles ...domain.ParsedArticle) *mocks.FetcherMock {
	return &mocks.FetcherMock{
		FetchArticlesFunc: func(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error) {
			return articles, nil
		},
		ValidateFunc: func(ctx context.Context, feedURL string) bool { return true },
	}
}

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func newTestProcessor(repos *repository.Repositories, fetcher Fetcher, evaluator Evaluator) *FeedProcessor {
	return NewFeedProcessor(Params{
		FeedManager:       repos.Feed,
		ArticleManager:    repos.Article,
		EvaluationManager: repos.Evaluation,
		Fetcher:           fetcher,
		Evaluator:         evaluator,
		BatchSize:         2,
	})
}

func TestFeedProcessor_IngestFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("second run is idempotent", func(t *testing.T) {
		repos := setupRepos(t)
		feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
		require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

		evaluator := fixedEvaluator(85)
		fp := newTestProcessor(repos, staticFetcher(
			domain.ParsedArticle{Title: "Ny skole i Aarhus", Link: "https://example.com/a1", Content: "byggeri"},
			domain.ParsedArticle{Title: "Hospital udvidelse", Link: "https://example.com/a2"},
		), evaluator)

		res, err := fp.IngestFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Created)
		assert.Equal(t, 0, res.Updated)
		assert.Equal(t, 0, res.Errors)
		assert.Len(t, res.RunID, 8)
		assert.Len(t, evaluator.EvaluateCalls(), 2)

		res, err = fp.IngestFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 0, res.Updated)
		assert.Len(t, evaluator.EvaluateCalls(), 2, "no new evaluations on the second run")

		articles, err := repos.Article.ListArticles(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		for _, a := range articles {
			eval, err := repos.Evaluation.GetEvaluation(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, 85, eval.RelevanceScore)
			assert.Equal(t, domain.PriorityHigh, eval.Priority)
		}

		stored, err := repos.Feed.GetFeed(ctx, feed.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LastFetched)
	})

	t.Run("content back-fill updates article once", func(t *testing.T) {
		repos := setupRepos(t)
		feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
		require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

		// article stored earlier from a link-only item
		existing, err := repos.Article.CreateArticle(ctx, feed.ID, domain.ParsedArticle{Title: "Ny skole", Link: "https://example.com/a1"})
		require.NoError(t, err)

		evaluator := fixedEvaluator(70)
		fetcher := staticFetcher(domain.ParsedArticle{Title: "Ny skole", Link: "https://example.com/a1", Content: "full body text"})
		fp := newTestProcessor(repos, fetcher, evaluator)

		res, err := fp.IngestFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 1, res.Updated)

		got, err := repos.Article.GetArticle(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "full body text", got.Content)
		eval, err := repos.Evaluation.GetEvaluation(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, 70, eval.RelevanceScore)
		require.Len(t, evaluator.EvaluateCalls(), 1)
		assert.Equal(t, "full body text", evaluator.EvaluateCalls()[0].Article.Content)

		// stored content is never replaced
		fp.fetcher = staticFetcher(domain.ParsedArticle{Title: "Ny skole", Link: "https://example.com/a1", Content: "another body"})
		res, err = fp.IngestFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Updated)
		got, err = repos.Article.GetArticle(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "full body text", got.Content)
		assert.Len(t, evaluator.EvaluateCalls(), 1)
	})

	t.Run("fetch failure leaves storage untouched", func(t *testing.T) {
		repos := setupRepos(t)
		feed := &domain.Feed{Name: "Broken", URL: "https://example.com/broken", Active: true}
		require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

		fetcher := &mocks.FetcherMock{
			FetchArticlesFunc: func(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error) {
				return nil, &domain.FetchError{URL: feedURL, Err: errors.New("status 503")}
			},
		}
		fp := newTestProcessor(repos, fetcher, fixedEvaluator(50))

		res, err := fp.IngestFeed(ctx, feed.ID)
		var fe *domain.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "https://example.com/broken", fe.URL)
		assert.Equal(t, 0, res.Created)

		stored, err := repos.Feed.GetFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.LastFetched)
		count, err := repos.Article.CountWithoutEvaluation(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("unknown feed", func(t *testing.T) {
		repos := setupRepos(t)
		fp := newTestProcessor(repos, staticFetcher(), fixedEvaluator(50))
		_, err := fp.IngestFeed(ctx, 42)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("fallback evaluation is stored", func(t *testing.T) {
		repos := setupRepos(t)
		feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
		require.NoError(t, repos.Feed.CreateFeed(ctx, feed))
		evaluator := &mocks.EvaluatorMock{
			EvaluateFunc: func(ctx context.Context, article domain.ArticleText) domain.Evaluation {
				return domain.Evaluation{KeyReasons: []string{"Error during evaluation"}, Priority: domain.PriorityLow, Fallback: true}
			},
		}
		fp := newTestProcessor(repos, staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}), evaluator)

		res, err := fp.IngestFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		a, err := repos.Article.GetArticleByLink(ctx, "https://example.com/a1")
		require.NoError(t, err)
		eval, err := repos.Evaluation.GetEvaluation(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, eval.RelevanceScore)
		assert.Equal(t, []string{"Error during evaluation"}, eval.KeyReasons)
	})
}

func TestFeedProcessor_ProcessArticle(t *testing.T) {
	ctx := context.Background()
	feed := &domain.Feed{ID: 1, Name: "Byggeri", URL: "https://example.com/rss", Active: true}
	feeds := &mocks.FeedManagerMock{
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) { return feed, nil },
		UpdateFeedFetchedFunc: func(ctx context.Context, feedID int64, fetchedAt time.Time) error {
			return errors.New("db is locked")
		},
	}
	evals := &mocks.EvaluationManagerMock{
		HasEvaluationFunc:    func(ctx context.Context, articleID int64) (bool, error) { return false, nil },
		CreateEvaluationFunc: func(ctx context.Context, eval *domain.Evaluation) error { return nil },
	}

	t.Run("link conflict is a benign skip", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			GetArticleByLinkFunc: func(ctx context.Context, link string) (*domain.Article, error) {
				return nil, domain.ErrNotFound
			},
			CreateArticleFunc: func(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
				return nil, fmt.Errorf("insert: %w", domain.ErrDuplicate)
			},
		}
		evaluator := fixedEvaluator(90)
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: evals,
			Fetcher: staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}), Evaluator: evaluator})

		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.IngestSummary{RunID: res.RunID, Feeds: 1}, res)
		assert.Empty(t, evaluator.EvaluateCalls())
		assert.Len(t, feeds.UpdateFeedFetchedCalls(), 1, "last fetched updated even if it fails")
	})

	t.Run("items without link are skipped", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{}
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: evals,
			Fetcher: staticFetcher(domain.ParsedArticle{Title: "no link"}, domain.ParsedArticle{Title: "blank", Link: "  "}),
			Evaluator: fixedEvaluator(90)})

		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 0, res.Errors)
	})

	t.Run("per-article errors are counted", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			GetArticleByLinkFunc: func(ctx context.Context, link string) (*domain.Article, error) {
				if link == "https://example.com/bad" {
					return nil, errors.New("disk I/O error")
				}
				return nil, domain.ErrNotFound
			},
			CreateArticleFunc: func(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
				return &domain.Article{ID: 7, FeedID: feedID, Title: parsed.Title, Link: parsed.Link}, nil
			},
		}
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: evals,
			Fetcher: staticFetcher(
				domain.ParsedArticle{Title: "bad", Link: "https://example.com/bad"},
				domain.ParsedArticle{Title: "good", Link: "https://example.com/good"},
			), Evaluator: fixedEvaluator(90)})

		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Errors)
	})

	t.Run("locked article is not evaluated", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			GetArticleByLinkFunc: func(ctx context.Context, link string) (*domain.Article, error) {
				return nil, domain.ErrNotFound
			},
			CreateArticleFunc: func(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
				return &domain.Article{ID: 7, FeedID: feedID, Title: parsed.Title, Link: parsed.Link}, nil
			},
		}
		lock := &mocks.LockerMock{
			TryLockFunc: func(ctx context.Context, key string) (locker.ReleaseFunc, bool, error) {
				return nil, false, nil
			},
		}
		evaluator := fixedEvaluator(90)
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: evals,
			Fetcher: staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}), Evaluator: evaluator,
			Locker: lock})

		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Empty(t, evaluator.EvaluateCalls())
		require.Len(t, lock.TryLockCalls(), 1)
		assert.Equal(t, "article:7", lock.TryLockCalls()[0].Key)
	})

	t.Run("lock failure evaluates without lock", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			GetArticleByLinkFunc: func(ctx context.Context, link string) (*domain.Article, error) {
				return nil, domain.ErrNotFound
			},
			CreateArticleFunc: func(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
				return &domain.Article{ID: 8, FeedID: feedID, Title: parsed.Title, Link: parsed.Link}, nil
			},
		}
		lock := &mocks.LockerMock{
			TryLockFunc: func(ctx context.Context, key string) (locker.ReleaseFunc, bool, error) {
				return nil, false, errors.New("redis unavailable")
			},
		}
		evaluator := fixedEvaluator(90)
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: evals,
			Fetcher: staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}), Evaluator: evaluator,
			Locker: lock})

		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Len(t, evaluator.EvaluateCalls(), 1)
	})

	t.Run("failed evaluation store counts as error", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			GetArticleByLinkFunc: func(ctx context.Context, link string) (*domain.Article, error) {
				return nil, domain.ErrNotFound
			},
			CreateArticleFunc: func(ctx context.Context, feedID int64, parsed domain.ParsedArticle) (*domain.Article, error) {
				return &domain.Article{ID: 9, FeedID: feedID, Title: parsed.Title, Link: parsed.Link}, nil
			},
		}
		failing := &mocks.EvaluationManagerMock{
			HasEvaluationFunc:    func(ctx context.Context, articleID int64) (bool, error) { return false, nil },
			CreateEvaluationFunc: func(ctx context.Context, eval *domain.Evaluation) error { return errors.New("disk full") },
		}
		fp := NewFeedProcessor(Params{FeedManager: feeds, ArticleManager: articles, EvaluationManager: failing,
			Fetcher: staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}), Evaluator: fixedEvaluator(90)})

		storeErrors := testutil.ToFloat64(metrics.Evaluations.WithLabelValues(metrics.OutcomeError))
		res, err := fp.IngestFeed(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 1, res.Errors)
		assert.InDelta(t, storeErrors+1, testutil.ToFloat64(metrics.Evaluations.WithLabelValues(metrics.OutcomeError)), 0.001)
	})
}

func TestFeedProcessor_ConcurrentRuns(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
	require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

	parsed := make([]domain.ParsedArticle, 0, 10)
	for i := range 10 {
		parsed = append(parsed, domain.ParsedArticle{Title: fmt.Sprintf("article %d", i),
			Link: fmt.Sprintf("https://example.com/a%d", i), Content: "body"})
	}
	fp := newTestProcessor(repos, staticFetcher(parsed...), fixedEvaluator(75))

	var wg sync.WaitGroup
	results := make([]domain.IngestSummary, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := fp.IngestFeed(ctx, feed.ID)
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	wg.Wait()

	var total domain.IngestSummary
	for _, r := range results {
		total.Add(r)
	}
	assert.Equal(t, 10, total.Created, "each article created by exactly one run")
	assert.Equal(t, 0, total.Errors)

	articles, err := repos.Article.ListArticles(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, articles, 10)
	missing, err := repos.Article.CountWithoutEvaluation(ctx)
	require.NoError(t, err)
	assert.Zero(t, missing)
}

func TestFeedProcessor_IngestAllActiveFeeds(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	for _, f := range []*domain.Feed{
		{Name: "Byggeri", URL: "https://example.com/byggeri", Active: true},
		{Name: "Broken", URL: "https://example.com/broken", Active: true},
		{Name: "Paused", URL: "https://example.com/paused", Active: false},
	} {
		require.NoError(t, repos.Feed.CreateFeed(ctx, f))
	}

	fetcher := &mocks.FetcherMock{
		FetchArticlesFunc: func(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error) {
			if feedURL == "https://example.com/broken" {
				return nil, &domain.FetchError{URL: feedURL, Err: errors.New("timeout")}
			}
			return []domain.ParsedArticle{
				{Title: "one", Link: feedURL + "/1"},
				{Title: "two", Link: feedURL + "/2"},
			}, nil
		},
	}
	fp := newTestProcessor(repos, fetcher, fixedEvaluator(65))

	res, err := fp.IngestAllActiveFeeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Feeds)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Errors)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, fetcher.FetchArticlesCalls(), 2, "inactive feed not fetched")
	for _, c := range fetcher.FetchArticlesCalls() {
		assert.Equal(t, 24, c.HoursBack)
	}

	t.Run("feed listing failure", func(t *testing.T) {
		feeds := &mocks.FeedManagerMock{
			GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Feed, error) {
				return nil, errors.New("db closed")
			},
		}
		fp := NewFeedProcessor(Params{FeedManager: feeds})
		_, err := fp.IngestAllActiveFeeds(ctx)
		require.EqualError(t, err, "get active feeds: db closed")
	})
}

func TestFeedProcessor_EvaluateMissing(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
	require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

	var ids []int64
	for i := range 5 {
		a, err := repos.Article.CreateArticle(ctx, feed.ID, domain.ParsedArticle{Title: fmt.Sprintf("t%d", i),
			Link: fmt.Sprintf("https://example.com/%d", i)})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	require.NoError(t, repos.Evaluation.CreateEvaluation(ctx, &domain.Evaluation{ArticleID: ids[0], RelevanceScore: 10}))

	evaluator := fixedEvaluator(55)
	fp := newTestProcessor(repos, staticFetcher(), evaluator)

	missing, err := fp.CountMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, missing)

	res, err := fp.EvaluateMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 0, res.Errors)
	assert.Len(t, evaluator.EvaluateCalls(), 4)

	missing, err = fp.CountMissing(ctx)
	require.NoError(t, err)
	assert.Zero(t, missing)

	eval, err := repos.Evaluation.GetEvaluation(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 10, eval.RelevanceScore, "existing evaluation kept")

	res, err = fp.EvaluateMissing(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchSummary{RunID: res.RunID}, res)
}

func TestFeedProcessor_ReEvaluateAll(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	feed := &domain.Feed{Name: "Byggeri", URL: "https://example.com/rss", Active: true}
	require.NoError(t, repos.Feed.CreateFeed(ctx, feed))

	var ids []int64
	for i := range 3 {
		a, err := repos.Article.CreateArticle(ctx, feed.ID, domain.ParsedArticle{Title: fmt.Sprintf("t%d", i),
			Link: fmt.Sprintf("https://example.com/%d", i)})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	require.NoError(t, repos.Evaluation.CreateEvaluation(ctx, &domain.Evaluation{ArticleID: ids[0], RelevanceScore: 10}))

	fp := newTestProcessor(repos, staticFetcher(), fixedEvaluator(95))
	res, err := fp.ReEvaluateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Processed)

	for _, id := range ids {
		eval, err := repos.Evaluation.GetEvaluation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 95, eval.RelevanceScore)
		assert.Equal(t, domain.PriorityHigh, eval.Priority)
	}

	t.Run("locked and failing articles", func(t *testing.T) {
		articles := &mocks.ArticleManagerMock{
			ListArticlesFunc: func(ctx context.Context, afterID int64, limit int) ([]domain.Article, error) {
				if afterID > 0 {
					return nil, nil
				}
				return []domain.Article{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"}}, nil
			},
		}
		evals := &mocks.EvaluationManagerMock{
			ReplaceEvaluationFunc: func(ctx context.Context, eval *domain.Evaluation) error {
				if eval.ArticleID == 3 {
					return errors.New("constraint failed")
				}
				return nil
			},
		}
		lock := &mocks.LockerMock{
			TryLockFunc: func(ctx context.Context, key string) (locker.ReleaseFunc, bool, error) {
				return func() {}, key != "article:2", nil
			},
		}
		fp := NewFeedProcessor(Params{ArticleManager: articles, EvaluationManager: evals, Evaluator: fixedEvaluator(40),
			Locker: lock})

		storeErrors := testutil.ToFloat64(metrics.Evaluations.WithLabelValues(metrics.OutcomeError))
		res, err := fp.ReEvaluateAll(ctx)
		require.NoError(t, err)
		assert.InDelta(t, storeErrors+1, testutil.ToFloat64(metrics.Evaluations.WithLabelValues(metrics.OutcomeError)), 0.001)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 1, res.Errors)
		assert.Len(t, evals.ReplaceEvaluationCalls(), 2)
		require.Len(t, articles.ListArticlesCalls(), 2)
		assert.Equal(t, int64(3), articles.ListArticlesCalls()[1].AfterID)
		assert.Equal(t, 50, articles.ListArticlesCalls()[0].Limit)
	})

	t.Run("canceled context stops the run", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		fp := newTestProcessor(repos, staticFetcher(), fixedEvaluator(95))
		_, err := fp.ReEvaluateAll(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestFeedProcessor_RegisterFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and ingests", func(t *testing.T) {
		repos := setupRepos(t)
		fp := newTestProcessor(repos, staticFetcher(domain.ParsedArticle{Title: "t", Link: "https://example.com/a1"}),
			fixedEvaluator(30))

		feed, res, err := fp.RegisterFeed(ctx, domain.FeedRequest{Name: " Byggeri ", URL: " https://example.com/rss "})
		require.NoError(t, err)
		assert.Equal(t, "Byggeri", feed.Name)
		assert.Equal(t, "https://example.com/rss", feed.URL)
		assert.True(t, feed.Active)
		assert.Equal(t, 1, res.Created)

		_, _, err = fp.RegisterFeed(ctx, domain.FeedRequest{Name: "again", URL: "https://example.com/rss"})
		require.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("invalid request", func(t *testing.T) {
		fetcher := staticFetcher()
		fp := NewFeedProcessor(Params{Fetcher: fetcher})
		_, _, err := fp.RegisterFeed(ctx, domain.FeedRequest{Name: "", URL: "https://example.com/rss"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
		assert.Empty(t, fetcher.ValidateCalls())
	})

	t.Run("unreachable feed", func(t *testing.T) {
		fetcher := &mocks.FetcherMock{ValidateFunc: func(ctx context.Context, feedURL string) bool { return false }}
		feeds := &mocks.FeedManagerMock{}
		fp := NewFeedProcessor(Params{Fetcher: fetcher, FeedManager: feeds})
		_, _, err := fp.RegisterFeed(ctx, domain.FeedRequest{Name: "x", URL: "https://example.com/html"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "url", ve.Field)
		assert.Empty(t, feeds.CreateFeedCalls())
	})

	t.Run("failed first ingestion keeps the feed", func(t *testing.T) {
		repos := setupRepos(t)
		calls := 0
		fetcher := &mocks.FetcherMock{
			ValidateFunc: func(ctx context.Context, feedURL string) bool { return true },
			FetchArticlesFunc: func(ctx context.Context, feedURL string, hoursBack int) ([]domain.ParsedArticle, error) {
				calls++
				return nil, &domain.FetchError{URL: feedURL, Err: errors.New("reset by peer")}
			},
		}
		fp := newTestProcessor(repos, fetcher, fixedEvaluator(30))

		feed, res, err := fp.RegisterFeed(ctx, domain.FeedRequest{Name: "Flaky", URL: "https://example.com/flaky"})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, res.Errors)
		stored, err := repos.Feed.GetFeed(ctx, feed.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flaky", stored.Name)
	})
}
