package dto

import "github.com/yukikurage/workforce-api/internal/workforce"

// AllocationResponse represents the weekly load of a project's members
type AllocationResponse struct {
	ProjectID uint64 `json:"project_id"`
	workforce.WeeklyLoad
}
