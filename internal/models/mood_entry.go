package models

import "time"

type MoodType string

const (
	MoodTypePreShift  MoodType = "PRE_SHIFT"
	MoodTypePostShift MoodType = "POST_SHIFT"
)

// MoodEntry is an append-only mood check-in.
type MoodEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Type      MoodType  `gorm:"type:varchar(20);not null" json:"type"`
	MoodValue int       `gorm:"not null" json:"mood_value"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	IsShared  bool      `gorm:"not null;default:false" json:"is_shared"`
	IsUrgent  bool      `gorm:"not null;default:false" json:"is_urgent"`
	CreatedAt time.Time `json:"created_at"`
}
