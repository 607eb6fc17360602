package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/leadfeed/pkg/domain"
	"github.com/umputun/leadfeed/pkg/feed"
)

const defaultRSSLimit = 100

// rssHandler serves the sales intelligence view as RSS, highest scores first
// GET /rss/sales?min_score=70
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	minScore := s.config.GetMinScore()
	if scoreStr := r.URL.Query().Get("min_score"); scoreStr != "" {
		if score, err := strconv.Atoi(scoreStr); err == nil {
			minScore = domain.ClampScore(score)
		}
	}

	page, err := s.querier.SalesIntelligence(r.Context(), &minScore, domain.SortDesc, 1, defaultRSSLimit)
	if err != nil {
		log.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateRSS(page.Items, minScore)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports active feed subscriptions
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.db.GetFeeds(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get feeds for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := feed.NewGenerator(s.config.GetBaseURL()).GenerateOPML(feeds)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leadfeed.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
