package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/leadfeed/pkg/config"
	"github.com/umputun/leadfeed/pkg/content"
	"github.com/umputun/leadfeed/pkg/feed"
	"github.com/umputun/leadfeed/pkg/llm"
	"github.com/umputun/leadfeed/pkg/locker"
	"github.com/umputun/leadfeed/pkg/query"
	"github.com/umputun/leadfeed/pkg/repository"
	"github.com/umputun/leadfeed/pkg/scheduler"
	"github.com/umputun/leadfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	DSN    string `long:"dsn" env:"DB_DSN" description:"database dsn, overrides database.dsn"`

	Server          ServerCmd   `command:"server" description:"run the http api with scheduled ingestion (default)"`
	Fetch           FetchCmd    `command:"fetch" description:"ingest active feeds, or one feed, once"`
	EvaluateMissing struct{}    `command:"evaluate-missing" description:"evaluate all articles without evaluation"`
	ReEvaluate      struct{}    `command:"re-evaluate" description:"re-evaluate all articles and replace their evaluations"`
	CheckMissing    struct{}    `command:"check-missing" description:"report the number of articles without evaluation"`
	Validate        ValidateCmd `command:"validate" description:"check that a url serves a parseable rss or atom feed"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// ServerCmd holds options of the server command
type ServerCmd struct {
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
}

// FetchCmd holds options of the fetch command
type FetchCmd struct {
	FeedID int64 `long:"feed" description:"ingest only the feed with this id"`
	Hours  int   `long:"hours" description:"ingestion window in hours, overrides schedule.hours_back"`
}

// ValidateCmd holds options of the validate command
type ValidateCmd struct {
	URL string `long:"url" required:"true" description:"feed url to check"`
}

var revision = "unknown"

func main() {
	loadEnvFile(os.Getenv("ENV_FILE"))

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)

	command := "server"
	if parser.Active != nil {
		command = parser.Active.Name
	}
	log.Printf("[INFO] starting leadfeed version %s, command %s", revision, command)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, command)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %s failed: %v", command, err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires dependencies and executes the command
func run(ctx context.Context, opts Opts, command string) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}
	if opts.Server.Listen != "" {
		cfg.Server.Listen = opts.Server.Listen
	}
	if opts.Fetch.Hours > 0 {
		cfg.Schedule.HoursBack = opts.Fetch.Hours
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, cfg.LLM.APIKey)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch command {
	case "server":
		return a.serve(ctx, opts.Debug)
	case "fetch":
		return a.fetch(ctx, opts.Fetch.FeedID)
	case "evaluate-missing":
		res, err := a.processor.EvaluateMissing(ctx)
		if err != nil {
			return fmt.Errorf("evaluate missing: %w", err)
		}
		fmt.Printf("evaluated %d of %d articles without evaluation, %d skipped, %d errors\n",
			res.Processed, res.Total, res.Skipped, res.Errors)
	case "re-evaluate":
		res, err := a.processor.ReEvaluateAll(ctx)
		if err != nil {
			return fmt.Errorf("re-evaluate: %w", err)
		}
		fmt.Printf("re-evaluated %d of %d articles, %d skipped, %d errors\n", res.Processed, res.Total, res.Skipped, res.Errors)
	case "check-missing":
		count, err := a.processor.CountMissing(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d articles without evaluation\n", count)
	case "validate":
		if !a.processor.ValidateFeedURL(ctx, opts.Validate.URL) {
			return fmt.Errorf("%s is not a valid rss or atom feed", opts.Validate.URL)
		}
		fmt.Printf("%s is a valid feed\n", opts.Validate.URL)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// app holds wired dependencies shared by all commands
type app struct {
	cfg       *config.Config
	repos     *repository.Repositories
	redis     *locker.Redis
	processor *scheduler.FeedProcessor
	querier   *query.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &app{cfg: cfg, repos: repos}

	var lock scheduler.Locker // in-process locks unless redis is configured
	if cfg.Redis.URL != "" {
		if a.redis, err = locker.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.LockTTL); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lock = a.redis
		log.Printf("[INFO] using redis evaluation locks")
	}

	fetchParams := feed.Params{Timeout: cfg.Fetcher.Timeout, UserAgent: cfg.Fetcher.UserAgent}
	if cfg.Extraction.Enabled {
		fetchParams.Extractor = content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MinTextLength)
		log.Printf("[INFO] content extraction enabled")
	}
	if cfg.LLM.APIKey == "" {
		log.Printf("[WARN] llm.api_key is not set, evaluations will fall back to zero scores")
	}

	a.processor = scheduler.NewFeedProcessor(scheduler.Params{
		FeedManager:       repos.Feed,
		ArticleManager:    repos.Article,
		EvaluationManager: repos.Evaluation,
		Fetcher:           feed.NewFetcher(fetchParams),
		Evaluator:         llm.NewEvaluator(cfg.LLM),
		Locker:            lock,
		MaxWorkers:        cfg.Schedule.MaxWorkers,
		HoursBack:         cfg.Schedule.HoursBack,
		BatchSize:         cfg.Schedule.BatchSize,
	})

	loc, err := cfg.Location()
	if err != nil {
		a.close()
		return nil, err
	}
	a.querier = query.NewService(query.Params{
		Store:        repos.Article,
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
		MinScore:     cfg.Query.MinScore,
		Location:     loc,
	})
	return a, nil
}

// serve runs the http server and the scheduler until ctx is canceled
func (a *app) serve(ctx context.Context, debug bool) error {
	sched := scheduler.NewScheduler(a.processor, a.cfg.Schedule.UpdateInterval)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:    &server.ConfigAdapter{Config: a.cfg},
		Database:  server.NewRepositoryAdapter(a.repos),
		Pipeline:  a.processor,
		Querier:   a.querier,
		Refresher: sched,
		Version:   revision,
		Debug:     debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// fetch runs one ingestion of a single feed or of all active feeds
func (a *app) fetch(ctx context.Context, feedID int64) error {
	if feedID > 0 {
		res, err := a.processor.IngestFeed(ctx, feedID)
		if err != nil {
			return fmt.Errorf("fetch feed %d: %w", feedID, err)
		}
		fmt.Printf("feed %d: %d created, %d updated, %d errors\n", feedID, res.Created, res.Updated, res.Errors)
		return nil
	}
	res, err := a.processor.IngestAllActiveFeeds(ctx)
	if err != nil {
		return fmt.Errorf("fetch feeds: %w", err)
	}
	fmt.Printf("%d feeds: %d created, %d updated, %d errors\n", res.Feeds, res.Created, res.Updated, res.Errors)
	return nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("[WARN] failed to close redis: %v", err)
		}
	}
	if err := a.repos.Close(); err != nil {
		log.Printf("[WARN] failed to close database: %v", err)
	}
}

// loadEnvFile loads variables from a dotenv file, existing environment wins
func loadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load %s: %v", path, err)
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
