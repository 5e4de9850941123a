package services

import (
	"context"
	"testing"
	"time"

	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/testutil"
	"gorm.io/gorm"
)

type serviceEnv struct {
	ctx        context.Context
	db         *gorm.DB
	f          *testutil.Fixture
	orgRepo    repository.OrganizationRepository
	perms      *PermissionService
	clock      *ClockService
	exceptions *ExceptionService
	schedule   *ScheduleService
	wellbeing  *WellbeingService
	auth       *AuthService
	orgs       *OrganizationService
}

func newServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	return newServiceEnvFor(db, f)
}

func newServiceEnvFor(db *gorm.DB, f *testutil.Fixture) serviceEnv {
	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	entryRepo := repository.NewClockEntryRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)
	moodRepo := repository.NewMoodRepository(db)

	perms := NewPermissionService(orgRepo, userRepo)
	return serviceEnv{
		ctx:        context.Background(),
		db:         db,
		f:          f,
		orgRepo:    orgRepo,
		perms:      perms,
		clock:      NewClockService(perms, shiftRepo, entryRepo, exceptionRepo),
		exceptions: NewExceptionService(perms, shiftRepo, entryRepo, exceptionRepo),
		schedule:   NewScheduleService(perms, userRepo, projectRepo, shiftRepo),
		wellbeing:  NewWellbeingService(perms, userRepo, moodRepo),
		auth:       NewAuthService(userRepo),
		orgs:       NewOrganizationService(perms, orgRepo),
	}
}

// at returns the fixture Monday at hh:mm UTC.
func at(hour, minute int) time.Time {
	return testutil.Monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ptr[T any](v T) *T {
	return &v
}
