package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/leadfeed/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/pipeline.go -pkg mocks -skip-ensure -fmt goimports . Pipeline
//go:generate moq -out mocks/querier.go -pkg mocks -skip-ensure -fmt goimports . Querier
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	pipeline  Pipeline
	querier   Querier
	refresher Refresher
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for feed administration and read state
type Database interface {
	GetFeeds(ctx context.Context) ([]domain.Feed, error)
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	RecentArticles(ctx context.Context, feedID int64, limit int) ([]domain.ArticleView, error)
	UpdateFeed(ctx context.Context, id int64, upd domain.FeedUpdate) (*domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, articleID int64, read bool) error
}

// Pipeline interface for on-demand ingestion and evaluation runs
type Pipeline interface {
	IngestFeed(ctx context.Context, feedID int64) (domain.IngestSummary, error)
	IngestAllActiveFeeds(ctx context.Context) (domain.IngestSummary, error)
	RegisterFeed(ctx context.Context, req domain.FeedRequest) (*domain.Feed, domain.IngestSummary, error)
	ValidateFeedURL(ctx context.Context, feedURL string) bool
	EvaluateMissing(ctx context.Context) (domain.BatchSummary, error)
	ReEvaluateAll(ctx context.Context) (domain.BatchSummary, error)
}

// Querier interface for article views
type Querier interface {
	Articles(ctx context.Context, filter domain.ArticleFilter) (*domain.ArticlePage, error)
	SalesIntelligence(ctx context.Context, minScore *int, sort domain.SortDir, page, limit int) (*domain.ArticlePage, error)
}

// Refresher requests an out-of-band run of the scheduled ingestion
type Refresher interface {
	UpdateNow()
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetMinScore() int
}

// Params holds server dependencies
type Params struct {
	Config    ConfigProvider
	Database  Database
	Pipeline  Pipeline
	Querier   Querier
	Refresher Refresher // optional, async refresh runs synchronously without it
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:    p.Config,
		db:        p.Database,
		pipeline:  p.Pipeline,
		querier:   p.Querier,
		refresher: p.Refresher,
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		// ingestion and rescoring run inside the request, no write timeout for them
		IdleTimeout: timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("leadfeed", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /articles", s.articlesHandler)
		r.HandleFunc("GET /articles/sales-intelligence", s.salesIntelligenceHandler)
		r.HandleFunc("POST /articles/{id}/read", s.markReadHandler)
		r.HandleFunc("DELETE /articles/{id}/read", s.markUnreadHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.createFeedHandler)
		r.HandleFunc("POST /feeds/validate", s.validateFeedHandler)
		r.HandleFunc("POST /feeds/refresh", s.refreshAllFeedsHandler)
		r.HandleFunc("GET /feeds/{id}", s.getFeedHandler)
		r.HandleFunc("PATCH /feeds/{id}", s.updateFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)
		r.HandleFunc("POST /feeds/{id}/refresh", s.refreshFeedHandler)

		r.HandleFunc("POST /evaluations/missing", s.evaluateMissingHandler)
		r.HandleFunc("POST /evaluations/rescore", s.rescoreHandler)
	})

	s.router.HandleFunc("GET /rss/sales", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
	s.router.Handle("GET /metrics", promhttp.Handler())
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

// renderDomainError maps domain errors to http status codes, anything else is logged as internal
func renderDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var fetchErr *domain.FetchError
	switch {
	case errors.As(err, &validationErr):
		renderError(w, r, validationErr, http.StatusBadRequest)
	case errors.Is(err, domain.ErrDuplicate):
		renderError(w, r, err, http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.As(err, &fetchErr):
		renderError(w, r, fetchErr, http.StatusBadGateway)
	default:
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}
