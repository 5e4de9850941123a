package repository

import (
	"context"
	"time"

	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormShiftRepository is a GORM implementation of ShiftRepository
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new ShiftRepository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &GormShiftRepository{db: db}
}

// Create creates a new shift
func (r *GormShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	shift.StartAt = shift.StartAt.UTC()
	shift.EndAt = shift.EndAt.UTC()
	return translate(r.db.WithContext(ctx).Create(shift).Error)
}

// FindByID finds a shift by ID
func (r *GormShiftRepository) FindByID(ctx context.Context, id uint64) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.WithContext(ctx).First(&shift, id).Error; err != nil {
		return nil, translate(err)
	}
	return &shift, nil
}

// ListByOrganizationBetween returns the shifts starting in [from, to), ordered by start
func (r *GormShiftRepository) ListByOrganizationBetween(ctx context.Context, organizationID uint64, from, to time.Time) ([]models.Shift, error) {
	shifts := []models.Shift{}
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Scopes(database.Between("start_at", from, to)).
		Order("start_at, id").
		Find(&shifts).Error
	if err != nil {
		return nil, translate(err)
	}
	return shifts, nil
}
