package repository

import (
	"context"

	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormExceptionRepository is a GORM implementation of ExceptionRepository
type GormExceptionRepository struct {
	db *gorm.DB
}

// NewExceptionRepository creates a new ExceptionRepository
func NewExceptionRepository(db *gorm.DB) ExceptionRepository {
	return &GormExceptionRepository{db: db}
}

// Create creates a new exception
func (r *GormExceptionRepository) Create(ctx context.Context, exception *models.ShiftException) error {
	return translate(r.db.WithContext(ctx).Create(exception).Error)
}

// ForceOnEntry inserts an exception and moves the entry to EXCEPTION in one transaction
func (r *GormExceptionRepository) ForceOnEntry(ctx context.Context, exception *models.ShiftException, entryID *uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entryID != nil {
			exception.ClockEntryID = entryID
			result := tx.Model(&models.ClockEntry{}).
				Where("id = ?", *entryID).
				Updates(map[string]interface{}{
					"status":   models.ClockStatusException,
					"open_key": nil,
				})
			if result.Error != nil {
				return translate(result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		return translate(tx.Create(exception).Error)
	})
}

// FindByID finds an exception by ID
func (r *GormExceptionRepository) FindByID(ctx context.Context, id uint64) (*models.ShiftException, error) {
	var exception models.ShiftException
	if err := r.db.WithContext(ctx).First(&exception, id).Error; err != nil {
		return nil, translate(err)
	}
	return &exception, nil
}

// Review resolves a PENDING exception
func (r *GormExceptionRepository) Review(ctx context.Context, id uint64, review Review) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ShiftException{}).
		Where("id = ? AND status = ?", id, models.ExceptionStatusPending).
		Updates(map[string]interface{}{
			"status":         review.Status,
			"reviewed_by":    review.ReviewerID,
			"reviewed_at":    review.At.UTC(),
			"review_comment": review.Comment,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByOrganization lists exceptions with filtering and pagination, newest first
func (r *GormExceptionRepository) ListByOrganization(ctx context.Context, filter ExceptionFilter) ([]models.ShiftException, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShiftException{}).
		Where("organization_id = ?", filter.OrganizationID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	listQuery := query.Order("created_at DESC, id DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	exceptions := []models.ShiftException{}
	if err := listQuery.Find(&exceptions).Error; err != nil {
		return nil, 0, translate(err)
	}

	return exceptions, total, nil
}
