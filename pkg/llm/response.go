package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/umputun/leadfeed/pkg/domain"
)

// evaluationResponse is the tolerant shape of the model answer
type evaluationResponse struct {
	RelevanceScore   flexNumber         `json:"relevanceScore"`
	KeyReasons       flexList           `json:"keyReasons"`
	SuggestedActions flexText           `json:"suggestedActions"`
	Categories       flexList           `json:"categories"`
	Priority         string             `json:"priority"`
	Summary          flexText           `json:"summary"`
	ScoreBreakdown   *breakdownResponse `json:"scoreBreakdown"`
}

type breakdownResponse struct {
	CustomerTypeMentions flexNumber `json:"customerTypeMentions"`
	ProjectTypes         flexNumber `json:"projectTypes"`
	TargetSectors        flexNumber `json:"targetSectors"`
	RelevantKeywords     flexNumber `json:"relevantKeywords"`
	Explanation          flexText   `json:"explanation"`
}

// flexNumber accepts a json number or a numeric string
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = flexNumber(v)
	return nil
}

func (n flexNumber) int() int {
	if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
		return 0
	}
	return int(math.Round(float64(n)))
}

// flexText accepts a string, a list of strings joined by newlines, or null
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = flexText(strings.TrimSpace(s))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list, got %s", data)
	}
	*t = flexText(strings.Join(list, "\n"))
	return nil
}

// flexList accepts a list of strings, a single string, or null
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected list or string, got %s", data)
	}
	if s = strings.TrimSpace(s); s != "" {
		*l = flexList{s}
	}
	return nil
}

// parseResponse decodes the model answer into an evaluation. The score is clamped to 0..100 and
// the priority is derived from it, a priority suggested by the model is ignored.
func parseResponse(content string) (domain.Evaluation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return domain.Evaluation{}, fmt.Errorf("no json object found in response")
	}

	var resp evaluationResponse
	dec := json.NewDecoder(bytes.NewReader([]byte(content[start : end+1])))
	if err := dec.Decode(&resp); err != nil {
		return domain.Evaluation{}, fmt.Errorf("failed to parse json response: %w", err)
	}

	score := domain.ClampScore(resp.RelevanceScore.int())
	res := domain.Evaluation{
		RelevanceScore:   score,
		KeyReasons:       nonNil(resp.KeyReasons),
		SuggestedActions: string(resp.SuggestedActions),
		Categories:       nonNil(resp.Categories),
		Priority:         domain.PriorityFromScore(score),
		Summary:          string(resp.Summary),
	}
	if b := resp.ScoreBreakdown; b != nil {
		res.ScoreBreakdown = &domain.ScoreBreakdown{
			CustomerTypeMentions: clampRange(b.CustomerTypeMentions.int(), 30),
			ProjectTypes:         clampRange(b.ProjectTypes.int(), 25),
			TargetSectors:        clampRange(b.TargetSectors.int(), 25),
			RelevantKeywords:     clampRange(b.RelevantKeywords.int(), 20),
			Explanation:          string(b.Explanation),
		}
	}
	return res, nil
}

func clampRange(v, maxVal int) int {
	return min(max(v, 0), maxVal)
}

func nonNil(l flexList) []string {
	res := make([]string, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// schemaResponse is the strict response shape advertised in json schema mode
type schemaResponse struct {
	RelevanceScore   int      `json:"relevanceScore" jsonschema:"minimum=0,maximum=100"`
	KeyReasons       []string `json:"keyReasons"`
	SuggestedActions string   `json:"suggestedActions" jsonschema:"description=Specific sales actions if score is above 60 or empty"`
	Categories       []string `json:"categories"`
	Priority         string   `json:"priority" jsonschema:"enum=HIGH,enum=MEDIUM,enum=LOW"`
	Summary          string   `json:"summary"`
	ScoreBreakdown   struct {
		CustomerTypeMentions int    `json:"customerTypeMentions" jsonschema:"minimum=0,maximum=30"`
		ProjectTypes         int    `json:"projectTypes" jsonschema:"minimum=0,maximum=25"`
		TargetSectors        int    `json:"targetSectors" jsonschema:"minimum=0,maximum=25"`
		RelevantKeywords     int    `json:"relevantKeywords" jsonschema:"minimum=0,maximum=20"`
		Explanation          string `json:"explanation"`
	} `json:"scoreBreakdown"`
}

// responseSchema reflects schemaResponse into an inline json schema
func responseSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true, ExpandedStruct: true}
	schema := r.Reflect(&schemaResponse{})
	schema.Version = ""
	return schema
}
