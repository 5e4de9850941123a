package models

import "time"

type ExceptionType string

const (
	ExceptionMissedClockOut ExceptionType = "MISSED_CLOCK_OUT"
	ExceptionTimeCorrection ExceptionType = "TIME_CORRECTION"
	ExceptionEarlyLeave     ExceptionType = "EARLY_LEAVE"
	ExceptionLateStart      ExceptionType = "LATE_START"
)

// Valid reports whether t is a known exception type.
func (t ExceptionType) Valid() bool {
	switch t {
	case ExceptionMissedClockOut, ExceptionTimeCorrection, ExceptionEarlyLeave, ExceptionLateStart:
		return true
	}
	return false
}

type ExceptionStatus string

const (
	ExceptionStatusPending  ExceptionStatus = "PENDING"
	ExceptionStatusApproved ExceptionStatus = "APPROVED"
	ExceptionStatusDenied   ExceptionStatus = "DENIED"
)

// ShiftException records an attendance irregularity for a shift and user.
type ShiftException struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	OrganizationID uint64          `gorm:"not null;index" json:"organization_id"`
	ShiftID        uint64          `gorm:"not null;index" json:"shift_id"`
	UserID         uint64          `gorm:"not null;index" json:"user_id"`
	ClockEntryID   *uint64         `json:"clock_entry_id,omitempty"`
	Type           ExceptionType   `gorm:"type:varchar(32);not null" json:"type"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Status         ExceptionStatus `gorm:"type:varchar(20);not null" json:"status"`
	ReviewedBy     *uint64         `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
	ReviewComment  *string         `gorm:"type:text" json:"review_comment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
