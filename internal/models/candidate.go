package models

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate represents a programme applicant and their declared profile.
type Candidate struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	FullName       string                      `gorm:"size:255;not null" json:"full_name"`
	Email          string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Institution    string                      `gorm:"size:255" json:"institution"`
	Degree         string                      `gorm:"size:255" json:"degree"`
	GraduationYear int                         `json:"graduation_year"`
	Skills         datatypes.JSONSlice[string] `json:"skills"`
	Interests      datatypes.JSONSlice[string] `json:"interests"`
	Location       string                      `gorm:"size:255" json:"location"`
	Availability   string                      `gorm:"size:32" json:"availability"`
	Bio            string                      `gorm:"type:text" json:"bio"`
	LinkedinURL    string                      `gorm:"size:512" json:"linkedin_url"`
	GithubURL      string                      `gorm:"size:512" json:"github_url"`
	PortfolioURL   string                      `gorm:"size:512" json:"portfolio_url"`
	DocumentURL    string                      `gorm:"size:512" json:"document_url"`
	AnalysisScore  *int                        `json:"analysis_score"`
	AnalysisNotes  datatypes.JSONSlice[string] `json:"analysis_notes"`
	Status         string                      `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

const (
	// CandidateStatusPending indicates the profile awaits operator review.
	CandidateStatusPending = "pending"
	// CandidateStatusApproved indicates the profile passed operator review.
	CandidateStatusApproved = "approved"
	// CandidateStatusRejected indicates the profile was declined.
	CandidateStatusRejected = "rejected"
)

// HasDocument reports whether the candidate uploaded a supporting document.
func (c Candidate) HasDocument() bool {
	return c.DocumentURL != ""
}

// IsAnalyzed reports whether the uploaded document has been processed.
// A nil score means not processed; zero is a real (lowest) score.
func (c Candidate) IsAnalyzed() bool {
	return c.AnalysisScore != nil
}

// HasLinks reports whether any external profile link is populated.
func (c Candidate) HasLinks() bool {
	return c.LinkedinURL != "" || c.GithubURL != "" || c.PortfolioURL != ""
}
