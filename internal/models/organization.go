package models

import (
	"time"

	"gorm.io/gorm"
)

// PermissionMatrix maps a capability key to the least senior hierarchy index allowed to use it.
type PermissionMatrix map[string]int

type Organization struct {
	ID              uint64               `gorm:"primarykey" json:"id"`
	Name            string               `gorm:"type:varchar(255);not null" json:"name"`
	HierarchyLevels []string             `gorm:"serializer:json;type:text" json:"hierarchy_levels"`
	Permissions     PermissionMatrix     `gorm:"serializer:json;type:text" json:"permissions"`
	Settings        OrganizationSettings `gorm:"serializer:json;type:text" json:"settings"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`

	// Relations
	Users    []User    `gorm:"foreignKey:OrganizationID" json:"-"`
	Projects []Project `gorm:"foreignKey:OrganizationID" json:"-"`
}

// AfterFind upgrades settings persisted by older releases.
func (o *Organization) AfterFind(tx *gorm.DB) error {
	o.Settings = o.Settings.Normalize()
	return nil
}
