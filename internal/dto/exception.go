package dto

import (
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/utils"
)

// ExceptionDTO represents a shift exception in API responses
type ExceptionDTO struct {
	ID            uint64                 `json:"id"`
	ShiftID       uint64                 `json:"shift_id"`
	UserID        uint64                 `json:"user_id"`
	ClockEntryID  *uint64                `json:"clock_entry_id,omitempty"`
	Type          models.ExceptionType   `json:"type"`
	Description   string                 `json:"description"`
	Status        models.ExceptionStatus `json:"status"`
	ReviewedBy    *uint64                `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time             `json:"reviewed_at,omitempty"`
	ReviewComment *string                `json:"review_comment,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ExceptionListResponse represents a paginated list of exceptions
type ExceptionListResponse struct {
	Exceptions []ExceptionDTO           `json:"exceptions"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToExceptionDTO converts an exception model to DTO
func ToExceptionDTO(e models.ShiftException) ExceptionDTO {
	return ExceptionDTO{
		ID:            e.ID,
		ShiftID:       e.ShiftID,
		UserID:        e.UserID,
		ClockEntryID:  e.ClockEntryID,
		Type:          e.Type,
		Description:   e.Description,
		Status:        e.Status,
		ReviewedBy:    e.ReviewedBy,
		ReviewedAt:    e.ReviewedAt,
		ReviewComment: e.ReviewComment,
		CreatedAt:     e.CreatedAt,
	}
}

// ToExceptionListResponse converts a page of exceptions to a response
func ToExceptionListResponse(exceptions []models.ShiftException, page utils.PaginationParams, total int64) ExceptionListResponse {
	items := make([]ExceptionDTO, len(exceptions))
	for i, e := range exceptions {
		items[i] = ToExceptionDTO(e)
	}
	return ExceptionListResponse{Exceptions: items, Pagination: page.Response(total)}
}
