package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         ProjectStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Phases  []Phase         `gorm:"foreignKey:ProjectID" json:"phases,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// HasMember reports whether the user is assigned to the project.
func (p Project) HasMember(userID uint64) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the assigned user IDs in assignment order.
func (p Project) MemberIDs() []uint64 {
	ids := make([]uint64, 0, len(p.Members))
	for _, m := range p.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// FindPhase returns the phase with the given ID.
func (p Project) FindPhase(phaseID uint64) (Phase, bool) {
	for _, ph := range p.Phases {
		if ph.ID == phaseID {
			return ph, true
		}
	}
	return Phase{}, false
}

type Phase struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	ProjectID  uint64     `gorm:"not null;index" json:"project_id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Position   int        `gorm:"not null" json:"position"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Objectives []string   `gorm:"serializer:json;type:text" json:"objectives,omitempty"`
}

func (Phase) TableName() string { return "project_phases" }

type ProjectMember struct {
	ProjectID uint64    `gorm:"primarykey" json:"project_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
