package dto

// Scoring tiers recorded on a match assessment.
const (
	// ScoreTierModel means the remote model produced the score.
	ScoreTierModel = "model"
	// ScoreTierRules means the deterministic fallback produced the score.
	ScoreTierRules = "rules"
)

// MatchAssessment is a computed compatibility score with its provenance.
type MatchAssessment struct {
	Score      int                `json:"score"`
	Tier       string             `json:"tier"`
	Components map[string]float64 `json:"components,omitempty"`
}
