package repository

import (
	"context"

	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project with its phases ordered by position and members in assignment order
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, user_id") }).
		First(&project, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// ListMemberIDs returns the users assigned to a project in assignment order
func (r *GormProjectRepository) ListMemberIDs(ctx context.Context, projectID uint64) ([]uint64, error) {
	ids := []uint64{}
	err := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("created_at, user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}
