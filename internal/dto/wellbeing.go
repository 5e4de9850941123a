package dto

import (
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// MoodEntryDTO represents a mood check-in in API responses
type MoodEntryDTO struct {
	ID        uint64          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      models.MoodType `json:"type"`
	MoodValue int             `json:"mood_value"`
	Comment   *string         `json:"comment,omitempty"`
	IsShared  bool            `json:"is_shared"`
	IsUrgent  bool            `json:"is_urgent"`
}

// RiskResponse represents a user's burnout assessment
type RiskResponse struct {
	UserID     uint64                   `json:"user_id"`
	Assessment workforce.RiskAssessment `json:"assessment"`
	Entries    []MoodEntryDTO           `json:"entries"`
}

// TeamRiskResponse represents the burnout overview of an organization
type TeamRiskResponse struct {
	Users []services.TeamRiskRow `json:"users"`
}

// ToMoodEntryDTO converts a mood entry model to DTO
func ToMoodEntryDTO(e models.MoodEntry) MoodEntryDTO {
	return MoodEntryDTO{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Type:      e.Type,
		MoodValue: e.MoodValue,
		Comment:   e.Comment,
		IsShared:  e.IsShared,
		IsUrgent:  e.IsUrgent,
	}
}

// ToRiskResponse converts a risk report to a response
func ToRiskResponse(report services.RiskReport) RiskResponse {
	entries := make([]MoodEntryDTO, len(report.Entries))
	for i, e := range report.Entries {
		entries[i] = ToMoodEntryDTO(e)
	}
	return RiskResponse{
		UserID:     report.UserID,
		Assessment: report.Assessment,
		Entries:    entries,
	}
}
