// Package llm scores articles for sales relevance with an OpenAI-compatible chat model.
package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/umputun/leadfeed/pkg/config"
	"github.com/umputun/leadfeed/pkg/domain"
)

// fallback reasons
const (
	reasonNoTitle = "No title or content available"
	reasonError   = "Error evaluating article"
)

// Evaluator scores articles with an LLM. It never fails, errors turn into a zero score.
type Evaluator struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	limiter   *rate.Limiter
	schema    *jsonschema.Schema
}

// NewEvaluator creates a new relevance evaluator
func NewEvaluator(cfg config.LLMConfig) *Evaluator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.ContentLimit <= 0 {
		cfg.ContentLimit = 3000
	}

	res := &Evaluator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemPrompt(cfg.BusinessContext),
	}
	if cfg.RequestsPerMinute > 0 {
		res.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	if cfg.UseJSONSchema {
		res.schema = responseSchema()
	}
	return res
}

// Evaluate scores the article. Articles without a title get a zero score without calling the model.
func (e *Evaluator) Evaluate(ctx context.Context, article domain.ArticleText) domain.Evaluation {
	if strings.TrimSpace(article.Title) == "" {
		return fallbackEvaluation(reasonNoTitle)
	}

	st := time.Now()
	res, err := e.evaluate(ctx, article)
	if err != nil {
		log.Printf("[WARN] failed to evaluate %q: %v", article.Title, err)
		fb := fallbackEvaluation(reasonError)
		fb.Fallback = true
		return fb
	}
	log.Printf("[DEBUG] evaluated %q: score %d, priority %s in %v", article.Title, res.RelevanceScore, res.Priority, time.Since(st).Truncate(time.Millisecond))
	return res
}

// evaluate makes the chat completion call and parses the answer
func (e *Evaluator) evaluate(ctx context.Context, article domain.ArticleText) (domain.Evaluation, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return domain.Evaluation{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       e.config.Model,
		Temperature: float32(e.config.Temperature),
		MaxTokens:   e.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: e.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(article, e.config.ContentLimit)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}
	if e.schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "sales_relevance",
				Schema: e.schema,
				Strict: true,
			},
		}
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Evaluation{}, fmt.Errorf("no response from llm")
	}

	return parseResponse(resp.Choices[0].Message.Content)
}

// fallbackEvaluation is the canned zero-score result
func fallbackEvaluation(reason string) domain.Evaluation {
	return domain.Evaluation{
		RelevanceScore: 0,
		KeyReasons:     []string{reason},
		Categories:     []string{},
		Priority:       domain.PriorityLow,
	}
}
