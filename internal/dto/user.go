package dto

import (
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	OrganizationID uint64 `json:"organization_id"`
	HierarchyLevel int    `json:"hierarchy_level"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		OrganizationID: user.OrganizationID,
		HierarchyLevel: user.HierarchyLevel,
	}
}

// CapabilitiesResponse lists the permission gate verdicts of the current user
type CapabilitiesResponse struct {
	UserID       uint64                       `json:"user_id"`
	Capabilities []services.CapabilityVerdict `json:"capabilities"`
}
