package models

import (
	"time"

	"gorm.io/datatypes"
)

// Posting represents a job advertised by an organization.
type Posting struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	OrganizationID      uint                        `gorm:"not null;index" json:"organization_id"`
	Title               string                      `gorm:"size:255;not null" json:"title"`
	RequiredSkills      datatypes.JSONSlice[string] `json:"required_skills"`
	Location            string                      `gorm:"size:255" json:"location"`
	EmploymentMode      string                      `gorm:"size:32" json:"employment_mode"`
	SalaryMin           *int                        `json:"salary_min"`
	SalaryMax           *int                        `json:"salary_max"`
	Deadline            *time.Time                  `json:"deadline"`
	Description         string                      `gorm:"type:text" json:"description"`
	EnhancedDescription string                      `gorm:"type:text" json:"enhanced_description"`
	QualityScore        *int                        `json:"quality_score"`
	Status              string                      `gorm:"size:32;not null;default:draft" json:"status"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
	Organization        Organization                `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"organization"`
}

const (
	// PostingStatusDraft indicates the posting is not yet visible to candidates.
	PostingStatusDraft = "draft"
	// PostingStatusPublished indicates the posting is live and matchable.
	PostingStatusPublished = "published"
	// PostingStatusClosed indicates applications are no longer accepted.
	PostingStatusClosed = "closed"
)

// HasSalaryRange reports whether both salary bounds are present.
func (p Posting) HasSalaryRange() bool {
	return p.SalaryMin != nil && p.SalaryMax != nil
}

// SalaryRangeValid reports whether the declared bounds are ordered.
// Postings without a full range are considered valid.
func (p Posting) SalaryRangeValid() bool {
	if !p.HasSalaryRange() {
		return true
	}
	return *p.SalaryMin <= *p.SalaryMax
}
