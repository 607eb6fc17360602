package domain

import "time"

// Priority is the sales priority bucket derived from the relevance score
type Priority string

// priority values
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// PriorityFromScore maps a relevance score to its bucket: above 80 is HIGH, above 60 is MEDIUM
func PriorityFromScore(score int) Priority {
	switch {
	case score > 80:
		return PriorityHigh
	case score > 60:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ClampScore keeps a score within 0..100
func ClampScore(score int) int {
	return min(max(score, 0), 100)
}

// ScoreBreakdown holds the rubric sub-scores. They are presented as composing the
// relevance score but are not required to sum to it.
type ScoreBreakdown struct {
	CustomerTypeMentions int    `json:"customerTypeMentions"` // 0-30
	ProjectTypes         int    `json:"projectTypes"`         // 0-25
	TargetSectors        int    `json:"targetSectors"`        // 0-25
	RelevantKeywords     int    `json:"relevantKeywords"`     // 0-20
	Explanation          string `json:"explanation,omitempty"`
}

// Evaluation is the scoring result attached to an article, at most one per article
type Evaluation struct {
	ID               int64           `json:"id,omitempty"`
	ArticleID        int64           `json:"article_id,omitempty"`
	RelevanceScore   int             `json:"relevance_score"`
	KeyReasons       []string        `json:"key_reasons"`
	SuggestedActions string          `json:"suggested_actions,omitempty"`
	Categories       []string        `json:"categories"`
	Priority         Priority        `json:"priority"`
	Summary          string          `json:"summary,omitempty"`
	ScoreBreakdown   *ScoreBreakdown `json:"score_breakdown,omitempty"`
	CreatedAt        time.Time       `json:"created_at,omitempty"`

	// Fallback is set when the result is a canned fallback and not a scored answer, not persisted
	Fallback bool `json:"-"`
}
