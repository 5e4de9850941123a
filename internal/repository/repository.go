package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uint64) (*models.Organization, error)

	// UpdateSettings replaces the settings of an organization
	UpdateSettings(ctx context.Context, id uint64, settings models.OrganizationSettings) error

	// UpdatePermissions replaces the permission matrix of an organization
	UpdatePermissions(ctx context.Context, id uint64, matrix models.PermissionMatrix) error

	// CreateRoster creates an organization with its users, projects and phases, then
	// assigns project members given as project name to usernames, in one transaction.
	CreateRoster(ctx context.Context, org *models.Organization, members map[string][]string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ListByIDs returns the users with the given IDs, ordered by ID
	ListByIDs(ctx context.Context, ids []uint64) ([]models.User, error)

	// ListByOrganization returns every user of an organization, ordered by ID
	ListByOrganization(ctx context.Context, organizationID uint64) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// FindByID finds a project with its phases and members
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// ListMemberIDs returns the users assigned to a project in assignment order
	ListMemberIDs(ctx context.Context, projectID uint64) ([]uint64, error)
}

// ShiftRepository defines the interface for shift data access
type ShiftRepository interface {
	Create(ctx context.Context, shift *models.Shift) error
	FindByID(ctx context.Context, id uint64) (*models.Shift, error)

	// ListByOrganizationBetween returns the shifts starting in [from, to)
	ListByOrganizationBetween(ctx context.Context, organizationID uint64, from, to time.Time) ([]models.Shift, error)
}

// ClockOut holds the values written when an entry is clocked out.
type ClockOut struct {
	At            time.Time
	Summary       *string
	MoraleScore   *int
	BountyClaimed bool
}

// ClockEntryRepository defines the interface for clock entry data access
type ClockEntryRepository interface {
	// Create inserts an entry. An open entry that collides with another open entry for the
	// same shift and user fails with ErrDuplicate.
	Create(ctx context.Context, entry *models.ClockEntry) error

	FindByID(ctx context.Context, id uint64) (*models.ClockEntry, error)

	// FindOpen finds the ACTIVE or LATE entry of a shift and user
	FindOpen(ctx context.Context, shiftID, userID uint64) (*models.ClockEntry, error)

	// FindLatest finds the most recent entry of a shift and user in any status
	FindLatest(ctx context.Context, shiftID, userID uint64) (*models.ClockEntry, error)

	// CompleteOpen marks an open entry COMPLETED. It reports false when the entry was not open.
	CompleteOpen(ctx context.Context, id uint64, out ClockOut) (bool, error)

	// Rate stores a manager rating on an entry
	Rate(ctx context.Context, id uint64, rating int, comment *string, bountyAwarded bool) error

	// ListByUserBetween returns a user's entries clocked in during [from, to)
	ListByUserBetween(ctx context.Context, userID uint64, from, to time.Time) ([]models.ClockEntry, error)
}

// ExceptionFilter holds filtering options for listing exceptions
type ExceptionFilter struct {
	OrganizationID uint64
	Status         *models.ExceptionStatus
	UserID         *uint64
	Pagination     utils.PaginationParams
}

// Review holds the outcome of a manager review.
type Review struct {
	Status     models.ExceptionStatus
	ReviewerID uint64
	Comment    *string
	At         time.Time
}

// ExceptionRepository defines the interface for shift exception data access
type ExceptionRepository interface {
	Create(ctx context.Context, exception *models.ShiftException) error

	// ForceOnEntry inserts an exception and, when entryID is set, moves that entry to
	// EXCEPTION and releases its open slot, in one transaction.
	ForceOnEntry(ctx context.Context, exception *models.ShiftException, entryID *uint64) error

	FindByID(ctx context.Context, id uint64) (*models.ShiftException, error)

	// Review resolves a PENDING exception. It reports false when the exception was not pending.
	Review(ctx context.Context, id uint64, review Review) (bool, error)

	// ListByOrganization lists exceptions with filtering and pagination
	ListByOrganization(ctx context.Context, filter ExceptionFilter) ([]models.ShiftException, int64, error)
}

// MoodRepository defines the interface for mood entry data access
type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) error

	// ListByUserSince returns a user's entries with Timestamp after since, newest first
	ListByUserSince(ctx context.Context, userID uint64, since time.Time) ([]models.MoodEntry, error)

	// ListByUsersSince returns entries of several users with Timestamp after since, newest first
	ListByUsersSince(ctx context.Context, userIDs []uint64, since time.Time) ([]models.MoodEntry, error)
}
