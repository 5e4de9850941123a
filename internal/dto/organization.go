package dto

import (
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID              uint64                      `json:"id"`
	Name            string                      `json:"name"`
	HierarchyLevels []string                    `json:"hierarchy_levels"`
	Permissions     models.PermissionMatrix     `json:"permissions"`
	Settings        models.OrganizationSettings `json:"settings"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// ToOrganizationDTO converts an organization model to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:              org.ID,
		Name:            org.Name,
		HierarchyLevels: org.HierarchyLevels,
		Permissions:     org.Permissions,
		Settings:        org.Settings,
		CreatedAt:       org.CreatedAt,
	}
}
