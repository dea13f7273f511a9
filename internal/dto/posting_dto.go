package dto

// PostingAssessment is a computed posting quality score with its provenance.
type PostingAssessment struct {
	Score       int      `json:"score"`
	Tier        string   `json:"tier"`
	Notes       []string `json:"notes,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
