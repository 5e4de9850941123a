package repository

import (
	"context"
	"time"

	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormClockEntryRepository is a GORM implementation of ClockEntryRepository
type GormClockEntryRepository struct {
	db *gorm.DB
}

// NewClockEntryRepository creates a new ClockEntryRepository
func NewClockEntryRepository(db *gorm.DB) ClockEntryRepository {
	return &GormClockEntryRepository{db: db}
}

// Create inserts an entry. Open entries carry an OpenKey whose unique index rejects a
// second open entry for the same shift and user.
func (r *GormClockEntryRepository) Create(ctx context.Context, entry *models.ClockEntry) error {
	entry.ClockInAt = entry.ClockInAt.UTC()
	if entry.Status.IsOpen() {
		key := models.OpenKeyFor(entry.ShiftID, entry.UserID)
		entry.OpenKey = &key
	} else {
		entry.OpenKey = nil
	}
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

// FindByID finds an entry by ID
func (r *GormClockEntryRepository) FindByID(ctx context.Context, id uint64) (*models.ClockEntry, error) {
	var entry models.ClockEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// FindOpen finds the ACTIVE or LATE entry of a shift and user
func (r *GormClockEntryRepository) FindOpen(ctx context.Context, shiftID, userID uint64) (*models.ClockEntry, error) {
	var entry models.ClockEntry
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND user_id = ? AND status IN ?", shiftID, userID, models.OpenStatuses()).
		Order("clock_in_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// FindLatest finds the most recent entry of a shift and user in any status
func (r *GormClockEntryRepository) FindLatest(ctx context.Context, shiftID, userID uint64) (*models.ClockEntry, error) {
	var entry models.ClockEntry
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND user_id = ?", shiftID, userID).
		Order("clock_in_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// CompleteOpen marks an open entry COMPLETED. The status check is part of the update, so of
// two concurrent clock-outs only one affects the row.
func (r *GormClockEntryRepository) CompleteOpen(ctx context.Context, id uint64, out ClockOut) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ClockEntry{}).
		Where("id = ? AND status IN ?", id, models.OpenStatuses()).
		Updates(map[string]interface{}{
			"status":         models.ClockStatusCompleted,
			"clock_out_at":   out.At.UTC(),
			"open_key":       nil,
			"summary":        out.Summary,
			"morale_score":   out.MoraleScore,
			"bounty_claimed": out.BountyClaimed,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Rate stores a manager rating on an entry
func (r *GormClockEntryRepository) Rate(ctx context.Context, id uint64, rating int, comment *string, bountyAwarded bool) error {
	result := r.db.WithContext(ctx).Model(&models.ClockEntry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":          rating,
			"manager_comment": comment,
			"bounty_awarded":  bountyAwarded,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUserBetween returns a user's entries clocked in during [from, to), oldest first
func (r *GormClockEntryRepository) ListByUserBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.ClockEntry, error) {
	entries := []models.ClockEntry{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(database.Between("clock_in_at", from, to)).
		Order("clock_in_at, id").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
