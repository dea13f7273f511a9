package models

import "time"

// Organization represents an employer participating in the programme.
type Organization struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Industry    string    `gorm:"size:128" json:"industry"`
	Size        string    `gorm:"size:32" json:"size"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	// OrganizationStatusPending indicates the organization awaits review.
	OrganizationStatusPending = "pending"
	// OrganizationStatusApproved indicates the organization may publish postings.
	OrganizationStatusApproved = "approved"
	// OrganizationStatusRejected indicates the organization was declined.
	OrganizationStatusRejected = "rejected"
)
