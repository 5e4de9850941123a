package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/workforce-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateOrganization is returned when creating the organization fails inside the roster transaction.
	ErrCreateOrganization = errors.New("organization repository: create organization failed")
	// ErrCreateProjectMember is returned when a project assignment fails inside the roster transaction.
	ErrCreateProjectMember = errors.New("organization repository: create project member failed")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

// UpdateSettings replaces the settings of an organization
func (r *GormOrganizationRepository) UpdateSettings(ctx context.Context, id uint64, settings models.OrganizationSettings) error {
	org := models.Organization{ID: id, Settings: settings}
	result := r.db.WithContext(ctx).Model(&org).Select("Settings").Updates(&org)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePermissions replaces the permission matrix of an organization
func (r *GormOrganizationRepository) UpdatePermissions(ctx context.Context, id uint64, matrix models.PermissionMatrix) error {
	org := models.Organization{ID: id, Permissions: matrix}
	result := r.db.WithContext(ctx).Model(&org).Select("Permissions").Updates(&org)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateRoster creates an organization with its users, projects and phases, then assigns
// project members, in one transaction.
func (r *GormOrganizationRepository) CreateRoster(ctx context.Context, org *models.Organization, members map[string][]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateOrganization, translate(err))
		}

		userIDs := make(map[string]uint64, len(org.Users))
		for _, u := range org.Users {
			// associations are inserted with ON CONFLICT DO NOTHING, so a taken username leaves ID unset
			if u.ID == 0 {
				return fmt.Errorf("%w: %w: username %q", ErrCreateOrganization, ErrDuplicate, u.Username)
			}
			userIDs[u.Username] = u.ID
		}

		for i := range org.Projects {
			project := &org.Projects[i]
			for _, username := range members[project.Name] {
				userID, ok := userIDs[username]
				if !ok {
					return fmt.Errorf("%w: unknown user %q in project %q", ErrCreateProjectMember, username, project.Name)
				}
				member := models.ProjectMember{ProjectID: project.ID, UserID: userID}
				if err := tx.Create(&member).Error; err != nil {
					return fmt.Errorf("%w: %w", ErrCreateProjectMember, translate(err))
				}
				project.Members = append(project.Members, member)
			}
		}

		return nil
	})
}
