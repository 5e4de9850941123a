// Package testutil builds in-memory roster stores for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user.
const Password = "password123"

// Monday is the start of the fixture week.
var Monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// NewDB returns a migrated in-memory sqlite store that is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))
	return db
}

// Fixture is a small organization with one project and one scheduled shift.
type Fixture struct {
	Org     *models.Organization
	Owner   *models.User // level 0
	Manager *models.User // level 1
	Lead    *models.User // level 2
	Staff   *models.User // level 3, assignee of Shift
	Other   *models.User // level 3, project member without rate
	Project *models.Project
	Phase   *models.Phase
	Shift   *models.Shift // Monday 09:00-17:00 UTC, 15 minutes tolerance
}

// Seed inserts the fixture into db.
func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	org := &models.Organization{
		Name:            "Nebuchadnezzar",
		HierarchyLevels: []string{"Owner", "Manager", "Lead", "Staff"},
		Permissions: models.PermissionMatrix{
			"create_project":     1,
			"manage_team":        1,
			"create_shift":       2,
			"approve_exceptions": 2,
			"view_analytics":     0,
			"view_financials":    0,
			"edit_timecards":     1,
		},
		Settings: models.DefaultSettings(),
	}
	require.NoError(t, db.Create(org).Error)

	f := &Fixture{Org: org}
	f.Owner = CreateUser(t, db, org.ID, "morpheus", 0, rate(50), string(hash))
	f.Manager = CreateUser(t, db, org.ID, "trinity", 1, rate(40), string(hash))
	f.Lead = CreateUser(t, db, org.ID, "niobe", 2, rate(30), string(hash))
	f.Staff = CreateUser(t, db, org.ID, "neo", 3, rate(20), string(hash))
	f.Other = CreateUser(t, db, org.ID, "tank", 3, nil, string(hash))

	f.Project = &models.Project{OrganizationID: org.ID, Name: "Zion Mainframe", Status: models.ProjectStatusActive}
	require.NoError(t, db.Create(f.Project).Error)

	f.Phase = &models.Phase{ProjectID: f.Project.ID, Name: "Build", Position: 1}
	require.NoError(t, db.Create(f.Phase).Error)

	for _, u := range []*models.User{f.Staff, f.Other, f.Lead} {
		require.NoError(t, db.Create(&models.ProjectMember{ProjectID: f.Project.ID, UserID: u.ID}).Error)
	}

	f.Shift = CreateShift(t, db, f, f.Staff.ID, Monday.Add(9*time.Hour), 8*time.Hour)
	return f
}

// CreateUser inserts a user of the organization.
func CreateUser(t *testing.T, db *gorm.DB, orgID uint64, username string, level int, hourlyRate *float64, passwordHash string) *models.User {
	t.Helper()

	user := &models.User{
		OrganizationID: orgID,
		Username:       username,
		FullName:       username,
		PasswordHash:   passwordHash,
		HierarchyLevel: level,
		HourlyRate:     hourlyRate,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateShift schedules a fixture project shift for assigneeID.
func CreateShift(t *testing.T, db *gorm.DB, f *Fixture, assigneeID uint64, start time.Time, length time.Duration) *models.Shift {
	t.Helper()

	shift := &models.Shift{
		OrganizationID:      f.Org.ID,
		ProjectID:           f.Project.ID,
		PhaseID:             f.Phase.ID,
		AssigneeID:          assigneeID,
		StartAt:             start.UTC(),
		EndAt:               start.Add(length).UTC(),
		AllowedEarlyMinutes: models.DefaultAllowedMinutes,
		AllowedLateMinutes:  models.DefaultAllowedMinutes,
	}
	require.NoError(t, db.Create(shift).Error)
	return shift
}

func rate(v float64) *float64 {
	return &v
}
