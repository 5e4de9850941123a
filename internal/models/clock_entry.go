package models

import (
	"fmt"
	"time"
)

type ClockStatus string

const (
	ClockStatusActive    ClockStatus = "ACTIVE"
	ClockStatusCompleted ClockStatus = "COMPLETED"
	ClockStatusLate      ClockStatus = "LATE"
	ClockStatusException ClockStatus = "EXCEPTION"
)

// IsOpen reports whether the entry still awaits a clock-out.
func (s ClockStatus) IsOpen() bool {
	return s == ClockStatusActive || s == ClockStatusLate
}

// OpenStatuses lists the statuses of entries that have not been clocked out.
func OpenStatuses() []ClockStatus {
	return []ClockStatus{ClockStatusActive, ClockStatusLate}
}

type ClockEntry struct {
	ID             uint64      `gorm:"primarykey" json:"id"`
	OrganizationID uint64      `gorm:"not null;index" json:"organization_id"`
	ShiftID        uint64      `gorm:"not null;index" json:"shift_id"`
	UserID         uint64      `gorm:"not null;index" json:"user_id"`
	ClockInAt      time.Time   `gorm:"not null" json:"clock_in_at"`
	ClockOutAt     *time.Time  `json:"clock_out_at,omitempty"`
	Status         ClockStatus `gorm:"type:varchar(20);not null" json:"status"`

	// OpenKey is set while the entry is open; its unique index admits one open entry per shift and user.
	OpenKey        *string   `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	Summary        *string   `gorm:"type:text" json:"summary,omitempty"`
	MoraleScore    *int      `json:"morale_score,omitempty"`
	Rating         *int      `json:"rating,omitempty"`
	ManagerComment *string   `gorm:"type:text" json:"manager_comment,omitempty"`
	BountyClaimed  bool      `gorm:"not null;default:false" json:"bounty_claimed"`
	BountyAwarded  bool      `gorm:"not null;default:false" json:"bounty_awarded"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OpenKeyFor builds the OpenKey value for a shift and user pair.
func OpenKeyFor(shiftID, userID uint64) string {
	return fmt.Sprintf("%d:%d", shiftID, userID)
}
