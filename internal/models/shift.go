package models

import "time"

// Shift is a scheduled, half-open work interval [StartAt, EndAt) for one assignee.
type Shift struct {
	ID                  uint64    `gorm:"primarykey" json:"id"`
	OrganizationID      uint64    `gorm:"not null;index" json:"organization_id"`
	ProjectID           uint64    `gorm:"not null;index" json:"project_id"`
	PhaseID             uint64    `gorm:"not null" json:"phase_id"`
	AssigneeID          uint64    `gorm:"not null;index" json:"assignee_id"`
	StartAt             time.Time `gorm:"not null;index" json:"start_at"`
	EndAt               time.Time `gorm:"not null" json:"end_at"`
	AllowedEarlyMinutes int       `gorm:"not null" json:"allowed_early_minutes"`
	AllowedLateMinutes  int       `gorm:"not null" json:"allowed_late_minutes"`
	PersonalGoals       []string  `gorm:"serializer:json;type:text" json:"personal_goals,omitempty"`
	Bounty              *string   `gorm:"type:varchar(255)" json:"bounty,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Duration returns the scheduled length of the shift.
func (s Shift) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}
