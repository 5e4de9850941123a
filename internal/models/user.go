package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Username       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FullName       string         `gorm:"type:varchar(255)" json:"full_name"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	HierarchyLevel int            `gorm:"not null" json:"hierarchy_level"`
	HourlyRate     *float64       `json:"hourly_rate,omitempty"`
	Skills         []string       `gorm:"serializer:json;type:text" json:"skills,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
