package repository

import (
	"context"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormMoodRepository is a GORM implementation of MoodRepository
type GormMoodRepository struct {
	db *gorm.DB
}

// NewMoodRepository creates a new MoodRepository
func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &GormMoodRepository{db: db}
}

// Create appends a mood entry
func (r *GormMoodRepository) Create(ctx context.Context, entry *models.MoodEntry) error {
	entry.Timestamp = entry.Timestamp.UTC()
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

// ListByUserSince returns a user's entries with Timestamp after since, newest first
func (r *GormMoodRepository) ListByUserSince(ctx context.Context, userID uint64, since time.Time) ([]models.MoodEntry, error) {
	return r.ListByUsersSince(ctx, []uint64{userID}, since)
}

// ListByUsersSince returns entries of several users with Timestamp after since, newest first
func (r *GormMoodRepository) ListByUsersSince(ctx context.Context, userIDs []uint64, since time.Time) ([]models.MoodEntry, error) {
	entries := []models.MoodEntry{}
	if len(userIDs) == 0 {
		return entries, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND timestamp > ?", userIDs, since.UTC()).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
