package dto

import (
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

// ClockEntryDTO represents a clock entry in API responses
type ClockEntryDTO struct {
	ID             uint64             `json:"id"`
	ShiftID        uint64             `json:"shift_id"`
	UserID         uint64             `json:"user_id"`
	Status         models.ClockStatus `json:"status"`
	ClockInAt      time.Time          `json:"clock_in_at"`
	ClockOutAt     *time.Time         `json:"clock_out_at,omitempty"`
	Summary        *string            `json:"summary,omitempty"`
	MoraleScore    *int               `json:"morale_score,omitempty"`
	Rating         *int               `json:"rating,omitempty"`
	ManagerComment *string            `json:"manager_comment,omitempty"`
	BountyClaimed  bool               `json:"bounty_claimed"`
	BountyAwarded  bool               `json:"bounty_awarded"`
}

// ClockEntryListResponse represents the clock entries of a user in a range
type ClockEntryListResponse struct {
	Entries []ClockEntryDTO `json:"entries"`
}

// ToClockEntryDTO converts a clock entry model to DTO
func ToClockEntryDTO(entry models.ClockEntry) ClockEntryDTO {
	return ClockEntryDTO{
		ID:             entry.ID,
		ShiftID:        entry.ShiftID,
		UserID:         entry.UserID,
		Status:         entry.Status,
		ClockInAt:      entry.ClockInAt,
		ClockOutAt:     entry.ClockOutAt,
		Summary:        entry.Summary,
		MoraleScore:    entry.MoraleScore,
		Rating:         entry.Rating,
		ManagerComment: entry.ManagerComment,
		BountyClaimed:  entry.BountyClaimed,
		BountyAwarded:  entry.BountyAwarded,
	}
}

// ToClockEntryListResponse converts clock entries to a response
func ToClockEntryListResponse(entries []models.ClockEntry) ClockEntryListResponse {
	items := make([]ClockEntryDTO, len(entries))
	for i, e := range entries {
		items[i] = ToClockEntryDTO(e)
	}
	return ClockEntryListResponse{Entries: items}
}
