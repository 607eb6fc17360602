package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/leadfeed/pkg/domain"
)

const recentArticlesLimit = 10

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// articlesHandler returns a filtered page of articles
// GET /api/v1/articles?filter=week&search=skole&feedId=1&isRead=false&sort=desc&page=1&limit=20
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ArticleFilter{
		Window: domain.TimeWindow(q.Get("filter")),
		Search: q.Get("search"),
		Sort:   domain.SortDir(q.Get("sort")),
	}

	var err error
	if filter.FeedID, err = int64Param(q, "feedId"); err != nil {
		renderDomainError(w, r, err)
		return
	}
	if filter.Page, err = intParam(q, "page"); err != nil {
		renderDomainError(w, r, err)
		return
	}
	if filter.Limit, err = intParam(q, "limit"); err != nil {
		renderDomainError(w, r, err)
		return
	}
	if v := q.Get("isRead"); v != "" {
		isRead, err := strconv.ParseBool(v)
		if err != nil {
			renderDomainError(w, r, &domain.ValidationError{Field: "isRead", Message: "must be true or false"})
			return
		}
		filter.IsRead = &isRead
	}
	if filter.MinScore, err = optionalIntParam(q, "minScore"); err != nil {
		renderDomainError(w, r, err)
		return
	}

	page, err := s.querier.Articles(r.Context(), filter)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, page)
}

// salesIntelligenceHandler returns evaluated articles above the score threshold, minScore=0 is
// honored and an absent minScore uses the configured default
// GET /api/v1/articles/sales-intelligence?minScore=60&sort=desc&page=1&limit=20
func (s *Server) salesIntelligenceHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minScore, err := optionalIntParam(q, "minScore")
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	pageNum, err := intParam(q, "page")
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		renderDomainError(w, r, err)
		return
	}

	page, err := s.querier.SalesIntelligence(r.Context(), minScore, domain.SortDir(q.Get("sort")), pageNum, limit)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, page)
}

// markReadHandler sets the read flag of an article
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	s.updateReadState(w, r, true)
}

// markUnreadHandler clears the read flag of an article
func (s *Server) markUnreadHandler(w http.ResponseWriter, r *http.Request) {
	s.updateReadState(w, r, false)
}

func (s *Server) updateReadState(w http.ResponseWriter, r *http.Request, read bool) {
	id, err := pathID(r)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	if err := s.db.MarkRead(r.Context(), id, read); err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": id, "is_read": read})
}

// listFeedsHandler returns all feeds
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	renderJSON(w, r, http.StatusOK, feeds)
}

// getFeedHandler returns a single feed with its most recent articles
func (s *Server) getFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	feed, err := s.db.GetFeed(r.Context(), id)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	recent, err := s.db.RecentArticles(r.Context(), id, recentArticlesLimit)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	if recent == nil {
		recent = []domain.ArticleView{}
	}
	renderJSON(w, r, http.StatusOK, domain.FeedDetails{Feed: *feed, RecentArticles: recent})
}

// createFeedHandler registers a feed and runs its first ingestion
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	feed, summary, err := s.pipeline.RegisterFeed(r.Context(), req)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]any{"feed": feed, "summary": summary})
}

// updateFeedHandler applies a partial update to a feed
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}

	var upd domain.FeedUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
	}
	if err := domain.Validate(upd); err != nil {
		renderDomainError(w, r, err)
		return
	}

	feed, err := s.db.UpdateFeed(r.Context(), id, upd)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, feed)
}

// deleteFeedHandler deletes a feed with its articles and evaluations
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	if err := s.db.DeleteFeed(r.Context(), id); err != nil {
		renderDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// refreshFeedHandler runs ingestion of one feed and returns its summary
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	summary, err := s.pipeline.IngestFeed(r.Context(), id)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, summary)
}

// refreshAllFeedsHandler runs ingestion of every active feed. With async=true the run is handed
// to the scheduler and the handler returns 202 right away.
// POST /api/v1/feeds/refresh?async=true
func (s *Server) refreshAllFeedsHandler(w http.ResponseWriter, r *http.Request) {
	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async && s.refresher != nil {
		s.refresher.UpdateNow()
		renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "scheduled"})
		return
	}
	summary, err := s.pipeline.IngestAllActiveFeeds(r.Context())
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, summary)
}

// validateFeedHandler checks that a url serves a parseable feed
func (s *Server) validateFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	feedURL := strings.TrimSpace(req.URL)
	if feedURL == "" {
		renderDomainError(w, r, &domain.ValidationError{Field: "url", Message: "is required"})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"url": feedURL, "valid": s.pipeline.ValidateFeedURL(r.Context(), feedURL)})
}

// evaluateMissingHandler scores all articles without evaluation
func (s *Server) evaluateMissingHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.pipeline.EvaluateMissing(r.Context())
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	log.Printf("[INFO] evaluate missing run %s: %d processed", summary.RunID, summary.Processed)
	renderJSON(w, r, http.StatusOK, summary)
}

// rescoreHandler re-evaluates every stored article
func (s *Server) rescoreHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.pipeline.ReEvaluateAll(r.Context())
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	log.Printf("[INFO] rescore run %s: %d processed", summary.RunID, summary.Processed)
	renderJSON(w, r, http.StatusOK, summary)
}

// pathID parses the {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

// intParam parses an optional integer query parameter, zero if absent
func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Message: "must be an integer"}
	}
	return res, nil
}

// optionalIntParam parses an optional integer query parameter, nil if absent
func optionalIntParam(q url.Values, name string) (*int, error) {
	if q.Get(name) == "" {
		return nil, nil //nolint:nilnil // absent parameter is not an error
	}
	res, err := intParam(q, name)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func int64Param(q url.Values, name string) (int64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	res, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Message: "must be an integer"}
	}
	return res, nil
}
