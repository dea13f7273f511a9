package models

import (
	"time"

	"gorm.io/datatypes"
)

// Match links a candidate to a posting with a compatibility score.
// At most one record may exist per (candidate, organization, posting) triple.
type Match struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	CandidateID    uint              `gorm:"not null;uniqueIndex:idx_match_triple" json:"candidate_id"`
	OrganizationID uint              `gorm:"not null;uniqueIndex:idx_match_triple" json:"organization_id"`
	PostingID      uint              `gorm:"not null;uniqueIndex:idx_match_triple" json:"posting_id"`
	Score          int               `gorm:"not null" json:"score"`
	Status         string            `gorm:"size:32;not null;default:suggested" json:"status"`
	Rationale      string            `gorm:"type:text" json:"rationale"`
	Details        datatypes.JSONMap `json:"details"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Candidate      Candidate         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"candidate"`
	Organization   Organization      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"organization"`
	Posting        Posting           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"posting"`
}

const (
	// MatchStatusSuggested indicates the engine proposed the match.
	MatchStatusSuggested = "suggested"
	// MatchStatusViewed indicates an operator or party has seen the suggestion.
	MatchStatusViewed = "viewed"
	// MatchStatusInterested indicates a party expressed interest.
	MatchStatusInterested = "interested"
	// MatchStatusNotInterested indicates a party declined the suggestion.
	MatchStatusNotInterested = "not_interested"
	// MatchStatusMatched indicates both sides confirmed the match.
	MatchStatusMatched = "matched"
)

// matchTransitions enumerates the forward-only status lifecycle.
// There is no route back to suggested.
var matchTransitions = map[string][]string{
	MatchStatusSuggested:  {MatchStatusViewed},
	MatchStatusViewed:     {MatchStatusInterested, MatchStatusNotInterested},
	MatchStatusInterested: {MatchStatusMatched},
}

// CanTransitionTo reports whether the match may move to the given status.
func (m Match) CanTransitionTo(status string) bool {
	for _, next := range matchTransitions[m.Status] {
		if next == status {
			return true
		}
	}
	return false
}
