package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler and ingestion configuration"`
	Fetcher    FetcherConfig    `yaml:"fetcher" json:"fetcher" jsonschema:"description=Feed retrieval configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for relevance evaluation"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full page extraction for items without text"`
	Redis      RedisConfig      `yaml:"redis" json:"redis" jsonschema:"description=Optional redis for cross-process evaluation locks"`
	Query      QueryConfig      `yaml:"query" json:"query" jsonschema:"description=Article query defaults"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for generated RSS links"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:leadfeed.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds recurring ingestion settings
type ScheduleConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Interval between scheduled ingestion runs"`
	MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum feeds ingested concurrently"`
	HoursBack      int           `yaml:"hours_back" json:"hours_back" jsonschema:"default=24,minimum=1,description=Only items published within this many hours are ingested"`
	BatchSize      int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=50,minimum=1,description=Articles loaded per page by bulk evaluation runs"`
}

// FetcherConfig holds feed retrieval settings
type FetcherConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; RSS-Sales-Intelligence/1.0),description=User agent for feed requests"`
}

// LLMConfig holds LLM configuration for relevance evaluation
type LLMConfig struct {
	Endpoint          string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey            string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model             string        `yaml:"model" json:"model" jsonschema:"default=gpt-4-turbo-preview,description=Model name"`
	Temperature       float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,minimum=0,maximum=2,description=Sampling temperature"`
	MaxTokens         int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,minimum=1,description=Maximum tokens in response"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	ContentLimit      int           `yaml:"content_limit" json:"content_limit" jsonschema:"default=3000,minimum=1,description=Article content characters sent for evaluation"`
	UseJSONSchema     bool          `yaml:"use_json_schema" json:"use_json_schema" jsonschema:"default=false,description=Request a strict JSON schema response instead of a JSON object"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute" jsonschema:"default=0,minimum=0,description=Client side request rate limit per minute (0 disables)"`
	BusinessContext   string        `yaml:"business_context" json:"business_context" jsonschema:"description=Replaces the built-in business context and rubric prompt"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract page text for items without content or description"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; RSS-Sales-Intelligence/1.0),description=User agent for page requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,minimum=0,description=Minimum text length to consider valid"`
}

// RedisConfig holds the optional redis connection used for evaluation locks
type RedisConfig struct {
	URL     string        `yaml:"url" json:"url" jsonschema:"description=Redis URL like redis://host:6379/0 (empty uses in-process locks)"`
	LockTTL time.Duration `yaml:"lock_ttl" json:"lock_ttl" jsonschema:"default=5m,description=Evaluation lock expiration"`
}

// QueryConfig holds article query defaults
type QueryConfig struct {
	DefaultLimit int    `yaml:"default_limit" json:"default_limit" jsonschema:"default=20,minimum=1,description=Default page size"`
	MaxLimit     int    `yaml:"max_limit" json:"max_limit" jsonschema:"default=100,minimum=1,description=Maximum page size"`
	MinScore     int    `yaml:"min_score" json:"min_score" jsonschema:"default=60,minimum=0,maximum=100,description=Default minimum score for the sales intelligence view"`
	Timezone     string `yaml:"timezone" json:"timezone" jsonschema:"default=Local,description=Time zone for today/week/month windows"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, report but don't fail
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults
func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:leadfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 30 * time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.HoursBack == 0 {
		c.Schedule.HoursBack = 24
	}
	if c.Schedule.BatchSize == 0 {
		c.Schedule.BatchSize = 50
	}

	// fetcher
	if c.Fetcher.Timeout == 0 {
		c.Fetcher.Timeout = 30 * time.Second
	}
	if c.Fetcher.UserAgent == "" {
		c.Fetcher.UserAgent = "Mozilla/5.0 (compatible; RSS-Sales-Intelligence/1.0)"
	}

	// llm
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4-turbo-preview"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.ContentLimit == 0 {
		c.LLM.ContentLimit = 3000
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = c.Fetcher.UserAgent
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}

	// redis
	if c.Redis.LockTTL == 0 {
		c.Redis.LockTTL = 5 * time.Minute
	}

	// query
	if c.Query.DefaultLimit == 0 {
		c.Query.DefaultLimit = 20
	}
	if c.Query.MaxLimit == 0 {
		c.Query.MaxLimit = 100
	}
	if c.Query.MinScore == 0 {
		c.Query.MinScore = 60
	}
	if c.Query.Timezone == "" {
		c.Query.Timezone = "Local"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be at least 1")
	}
	if cfg.LLM.ContentLimit < 1 {
		return fmt.Errorf("llm.content_limit must be at least 1")
	}
	if cfg.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must be non-negative")
	}

	if cfg.Schedule.UpdateInterval < time.Minute {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	if cfg.Schedule.HoursBack < 1 {
		return fmt.Errorf("schedule.hours_back must be at least 1")
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	if cfg.Query.MinScore < 0 || cfg.Query.MinScore > 100 {
		return fmt.Errorf("query.min_score must be between 0 and 100")
	}
	if cfg.Query.DefaultLimit > cfg.Query.MaxLimit {
		return fmt.Errorf("query.default_limit must not exceed query.max_limit")
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("query.timezone: %w", err)
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Location returns the time zone used for query time windows
func (c *Config) Location() (*time.Location, error) {
	if c.Query.Timezone == "" || c.Query.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Query.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Query.Timezone, err)
	}
	return loc, nil
}
