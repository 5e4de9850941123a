package dto

import (
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

// ShiftDTO represents a shift in API responses
type ShiftDTO struct {
	ID                  uint64    `json:"id"`
	ProjectID           uint64    `json:"project_id"`
	PhaseID             uint64    `json:"phase_id"`
	AssigneeID          uint64    `json:"assignee_id"`
	StartAt             time.Time `json:"start_at"`
	EndAt               time.Time `json:"end_at"`
	AllowedEarlyMinutes int       `json:"allowed_early_minutes"`
	AllowedLateMinutes  int       `json:"allowed_late_minutes"`
	PersonalGoals       []string  `json:"personal_goals,omitempty"`
	Bounty              *string   `json:"bounty,omitempty"`
}

// ShiftListResponse represents the shifts of one week
type ShiftListResponse struct {
	WeekStart time.Time  `json:"week_start"`
	Shifts    []ShiftDTO `json:"shifts"`
}

// ToShiftDTO converts a shift model to DTO
func ToShiftDTO(shift models.Shift) ShiftDTO {
	return ShiftDTO{
		ID:                  shift.ID,
		ProjectID:           shift.ProjectID,
		PhaseID:             shift.PhaseID,
		AssigneeID:          shift.AssigneeID,
		StartAt:             shift.StartAt,
		EndAt:               shift.EndAt,
		AllowedEarlyMinutes: shift.AllowedEarlyMinutes,
		AllowedLateMinutes:  shift.AllowedLateMinutes,
		PersonalGoals:       shift.PersonalGoals,
		Bounty:              shift.Bounty,
	}
}

// ToShiftListResponse converts the shifts of a week to a response
func ToShiftListResponse(weekStart time.Time, shifts []models.Shift) ShiftListResponse {
	items := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		items[i] = ToShiftDTO(s)
	}
	return ShiftListResponse{WeekStart: weekStart, Shifts: items}
}
