package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/leadfeed/pkg/config"
	"github.com/umputun/leadfeed/pkg/domain"
)

// fakeLLM serves chat completions with the given content and records requests
type fakeLLM struct {
	*httptest.Server
	calls    int32
	requests []map[string]any
	content  string
	status   int
}

func newFakeLLM(t *testing.T, content string) *fakeLLM {
	t.Helper()
	f := &fakeLLM{content: content, status: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)

		if f.status != http.StatusOK {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(f.Close)
	return f
}

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:     endpoint + "/v1",
		APIKey:       "test-key",
		Model:        "gpt-4-turbo-preview",
		Temperature:  0.3,
		MaxTokens:    500,
		Timeout:      5 * time.Second,
		ContentLimit: 3000,
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	srv := newFakeLLM(t, `{
		"relevanceScore": 85,
		"keyReasons": ["Architect named", "Listed building renovation"],
		"suggestedActions": ["Call the architect", "Send door catalogue"],
		"categories": ["Heritage Restoration", "Listed Building"],
		"priority": "LOW",
		"summary": "Renovation of a listed town hall needs bespoke doors.",
		"scoreBreakdown": {"customerTypeMentions": 25, "projectTypes": 22, "targetSectors": 20, "relevantKeywords": 18, "explanation": "strong match"}
	}`)
	ev := NewEvaluator(testConfig(srv.URL))

	longContent := strings.Repeat("ø", 3500)
	res := ev.Evaluate(context.Background(), domain.ArticleText{Title: "Rådhus renoveres", Content: longContent})

	assert.Equal(t, 85, res.RelevanceScore)
	assert.Equal(t, domain.PriorityHigh, res.Priority, "priority follows the score, not the model")
	assert.Equal(t, []string{"Architect named", "Listed building renovation"}, res.KeyReasons)
	assert.Equal(t, "Call the architect\nSend door catalogue", res.SuggestedActions)
	assert.Equal(t, []string{"Heritage Restoration", "Listed Building"}, res.Categories)
	assert.Equal(t, "Renovation of a listed town hall needs bespoke doors.", res.Summary)
	require.NotNil(t, res.ScoreBreakdown)
	assert.Equal(t, domain.ScoreBreakdown{CustomerTypeMentions: 25, ProjectTypes: 22, TargetSectors: 20,
		RelevantKeywords: 18, Explanation: "strong match"}, *res.ScoreBreakdown)
	assert.False(t, res.Fallback)

	require.Len(t, srv.requests, 1)
	req := srv.requests[0]
	assert.Equal(t, "gpt-4-turbo-preview", req["model"])
	assert.InDelta(t, 0.3, req["temperature"], 0.001)
	assert.InDelta(t, 500, req["max_tokens"], 0.001)
	assert.Equal(t, "json_object", req["response_format"].(map[string]any)["type"])

	messages := req["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)["content"].(string)
	user := messages[1].(map[string]any)["content"].(string)
	assert.Contains(t, system, "sales intelligence analyst for Vahle A/S")
	assert.Contains(t, system, "Customer Type Mentions (0-30 points)")
	assert.Contains(t, user, "Title: Rådhus renoveres")
	assert.Contains(t, user, "Description: N/A")
	assert.Contains(t, user, "Content: "+strings.Repeat("ø", 3000)+"\n")
	assert.NotContains(t, user, strings.Repeat("ø", 3001))
}

func TestEvaluator_Evaluate_EmptyTitle(t *testing.T) {
	srv := newFakeLLM(t, `{"relevanceScore": 90}`)
	ev := NewEvaluator(testConfig(srv.URL))

	for _, title := range []string{"", "   "} {
		res := ev.Evaluate(context.Background(), domain.ArticleText{Title: title, Content: "some content"})
		assert.Equal(t, 0, res.RelevanceScore)
		assert.Equal(t, domain.PriorityLow, res.Priority)
		assert.Equal(t, []string{"No title or content available"}, res.KeyReasons)
		assert.Empty(t, res.Categories)
		assert.NotNil(t, res.Categories)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&srv.calls), "no external call for empty title")
}

func TestEvaluator_Evaluate_Failures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := newFakeLLM(t, "")
		srv.status = http.StatusInternalServerError
		res := NewEvaluator(testConfig(srv.URL)).Evaluate(context.Background(), domain.ArticleText{Title: "t"})
		assert.Equal(t, 0, res.RelevanceScore)
		assert.Equal(t, domain.PriorityLow, res.Priority)
		assert.Equal(t, []string{"Error evaluating article"}, res.KeyReasons)
		assert.True(t, res.Fallback)
		assert.Equal(t, int32(1), atomic.LoadInt32(&srv.calls), "failures are not retried")
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := newFakeLLM(t, `{"relevanceScore": "high",`)
		res := NewEvaluator(testConfig(srv.URL)).Evaluate(context.Background(), domain.ArticleText{Title: "t"})
		assert.Equal(t, []string{"Error evaluating article"}, res.KeyReasons)
		assert.True(t, res.Fallback)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		res := NewEvaluator(testConfig("http://127.0.0.1:1")).Evaluate(context.Background(), domain.ArticleText{Title: "t"})
		assert.Equal(t, []string{"Error evaluating article"}, res.KeyReasons)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := newFakeLLM(t, `{"relevanceScore": 90}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := NewEvaluator(testConfig(srv.URL)).Evaluate(ctx, domain.ArticleText{Title: "t"})
		assert.Equal(t, 0, res.RelevanceScore)
		assert.True(t, res.Fallback)
	})
}

func TestEvaluator_Evaluate_JSONSchemaMode(t *testing.T) {
	srv := newFakeLLM(t, `{"relevanceScore": 65, "keyReasons": [], "suggestedActions": "", "categories": [],
		"priority": "MEDIUM", "summary": "", "scoreBreakdown": {"customerTypeMentions": 0, "projectTypes": 0,
		"targetSectors": 0, "relevantKeywords": 0, "explanation": ""}}`)
	cfg := testConfig(srv.URL)
	cfg.UseJSONSchema = true

	res := NewEvaluator(cfg).Evaluate(context.Background(), domain.ArticleText{Title: "Hotel i Aarhus"})
	assert.Equal(t, 65, res.RelevanceScore)
	assert.Equal(t, domain.PriorityMedium, res.Priority)

	require.Len(t, srv.requests, 1)
	format := srv.requests[0]["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	js := format["json_schema"].(map[string]any)
	assert.Equal(t, "sales_relevance", js["name"])
	assert.Equal(t, true, js["strict"])
	schema := js["schema"].(map[string]any)
	assert.NotContains(t, schema, "$schema")
	assert.Contains(t, schema["properties"].(map[string]any), "relevanceScore")
	assert.Equal(t, false, schema["additionalProperties"])
}

func TestEvaluator_Evaluate_RateLimit(t *testing.T) {
	srv := newFakeLLM(t, `{"relevanceScore": 40}`)
	cfg := testConfig(srv.URL)
	cfg.RequestsPerMinute = 1
	ev := NewEvaluator(cfg)

	first := ev.Evaluate(context.Background(), domain.ArticleText{Title: "first"})
	assert.Equal(t, 40, first.RelevanceScore)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	second := ev.Evaluate(ctx, domain.ArticleText{Title: "second"})
	assert.True(t, second.Fallback, "throttled call gives up when the context can't wait")
	assert.Equal(t, int32(1), atomic.LoadInt32(&srv.calls))
}

func TestParseResponse(t *testing.T) {
	tbl := []struct {
		name     string
		content  string
		score    int
		priority domain.Priority
		actions  string
		reasons  []string
		wantErr  bool
	}{
		{name: "clamp high", content: `{"relevanceScore": 150}`, score: 100, priority: domain.PriorityHigh, reasons: []string{}},
		{name: "clamp low", content: `{"relevanceScore": -5}`, score: 0, priority: domain.PriorityLow, reasons: []string{}},
		{name: "string score", content: `{"relevanceScore": "72"}`, score: 72, priority: domain.PriorityMedium, reasons: []string{}},
		{name: "fractional score rounded", content: `{"relevanceScore": 60.4}`, score: 60, priority: domain.PriorityLow, reasons: []string{}},
		{name: "missing score", content: `{"keyReasons": ["x"]}`, score: 0, priority: domain.PriorityLow, reasons: []string{"x"}},
		{name: "string actions", content: `{"relevanceScore": 81, "suggestedActions": "Call them"}`, score: 81,
			priority: domain.PriorityHigh, actions: "Call them", reasons: []string{}},
		{name: "null actions", content: `{"relevanceScore": 10, "suggestedActions": null, "summary": null}`, score: 10,
			priority: domain.PriorityLow, reasons: []string{}},
		{name: "single reason string", content: `{"relevanceScore": 61, "keyReasons": "one reason"}`, score: 61,
			priority: domain.PriorityMedium, reasons: []string{"one reason"}},
		{name: "code fence", content: "```json\n{\"relevanceScore\": 90}\n```", score: 90, priority: domain.PriorityHigh, reasons: []string{}},
		{name: "no json", content: "I cannot evaluate this", wantErr: true},
		{name: "broken json", content: `{"relevanceScore": }`, wantErr: true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseResponse(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, res.RelevanceScore)
			assert.Equal(t, tt.priority, res.Priority)
			assert.Equal(t, tt.actions, res.SuggestedActions)
			assert.Equal(t, tt.reasons, res.KeyReasons)
			assert.NotNil(t, res.Categories)
			assert.True(t, res.RelevanceScore >= 0 && res.RelevanceScore <= 100)
		})
	}

	t.Run("breakdown sub-scores clamped", func(t *testing.T) {
		res, err := parseResponse(`{"relevanceScore": 50, "scoreBreakdown": {"customerTypeMentions": 45, "projectTypes": -3, "targetSectors": "12", "relevantKeywords": 20}}`)
		require.NoError(t, err)
		require.NotNil(t, res.ScoreBreakdown)
		assert.Equal(t, 30, res.ScoreBreakdown.CustomerTypeMentions)
		assert.Equal(t, 0, res.ScoreBreakdown.ProjectTypes)
		assert.Equal(t, 12, res.ScoreBreakdown.TargetSectors)
		assert.Equal(t, 20, res.ScoreBreakdown.RelevantKeywords)
	})
}

func TestUserPrompt(t *testing.T) {
	p := userPrompt(domain.ArticleText{Title: " Titel ", Description: "Beskrivelse", Content: "abcdef"}, 3)
	assert.Contains(t, p, "Title: Titel\n")
	assert.Contains(t, p, "Description: Beskrivelse\n")
	assert.Contains(t, p, "Content: abc\n")

	assert.Equal(t, "åæø", truncateRunes("åæøxyz", 3))
	assert.Equal(t, "ab", truncateRunes("ab", 3))
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, systemPrompt(""), "Heritage Restoration")
	custom := systemPrompt("We sell windows.")
	assert.Contains(t, custom, "We sell windows.")
	assert.NotContains(t, custom, "Heritage Restoration")
}
