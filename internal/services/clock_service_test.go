package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/utils"
	"github.com/yukikurage/workforce-api/internal/workforce"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestClockService_RequestClockIn(t *testing.T) {
	env := newServiceEnv(t)

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(8, 50))
	require.NoError(t, err)
	assert.Equal(t, models.ClockStatusActive, entry.Status)
	assert.True(t, entry.ClockInAt.Equal(at(8, 50)))

	_, err = env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(8, 55))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialAlreadyActive))
}

func TestClockService_RequestClockIn_TooEarly(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(8, 44))
	denial, ok := workforce.AsDenial(err)
	require.True(t, ok)
	assert.Equal(t, workforce.DenialTooEarly, denial.Reason)
	assert.Equal(t, 1, denial.MinutesUntilWindow)

	_, err = env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(8, 45))
	assert.NoError(t, err)
}

func TestClockService_RequestClockIn_NotAssignee(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Other.ID, at(9, 0))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialNotAssignee))

	_, err = env.clock.RequestClockIn(env.ctx, 999, env.f.Staff.ID, at(9, 0))
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestClockService_RequestClockIn_StrictAndLenientModes(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(17, 1))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialShiftExpired))

	settings := env.f.Org.Settings
	settings.StrictMode = false
	require.NoError(t, env.orgRepo.UpdateSettings(env.ctx, env.f.Org.ID, settings))

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(17, 1))
	require.NoError(t, err)
	assert.Equal(t, models.ClockStatusLate, entry.Status)
}

func TestClockService_ConcurrentClockInAdmitsOne(t *testing.T) {
	env := newServiceEnv(t)
	// a second service shares the store but not the in-process lock, like another replica
	replica := newServiceEnvFor(env.db, env.f)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		svc := env.clock
		if i%2 == 1 {
			svc = replica.clock
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	admitted, alreadyActive := 0, 0
	for err := range results {
		switch {
		case err == nil:
			admitted++
		case workforce.HasDenialReason(err, workforce.DenialAlreadyActive):
			alreadyActive++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Equal(t, attempts-1, alreadyActive)

	var open int64
	require.NoError(t, env.db.Model(&models.ClockEntry{}).
		Where("shift_id = ? AND user_id = ? AND status IN ?", env.f.Shift.ID, env.f.Staff.ID, models.OpenStatuses()).
		Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestClockService_RequestClockOut(t *testing.T) {
	env := newServiceEnv(t)

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)

	_, err = env.clock.RequestClockOut(env.ctx, entry.ID, env.f.Other.ID, at(17, 0), ClockOutInput{})
	assert.ErrorIs(t, err, ErrNotEntryOwner)

	_, err = env.clock.RequestClockOut(env.ctx, entry.ID, env.f.Staff.ID, at(17, 0), ClockOutInput{Summary: ptr("short")})
	var validationErr *workforce.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	done, err := env.clock.RequestClockOut(env.ctx, entry.ID, env.f.Staff.ID, at(17, 0), ClockOutInput{
		Summary:     ptr("Rerouted power to the dock"),
		MoraleScore: ptr(7),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClockStatusCompleted, done.Status)
	require.NotNil(t, done.ClockOutAt)
	assert.True(t, done.ClockOutAt.Equal(at(17, 0)))
	assert.Equal(t, 7, *done.MoraleScore)

	_, err = env.clock.RequestClockOut(env.ctx, entry.ID, env.f.Staff.ID, at(17, 5), ClockOutInput{})
	denial, ok := workforce.AsDenial(err)
	require.True(t, ok)
	assert.Equal(t, workforce.DenialNotActive, denial.Reason)
}

func TestClockService_ForceExceptionFreesThePair(t *testing.T) {
	env := newServiceEnv(t)

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)

	input := ForceExceptionInput{ShiftID: env.f.Shift.ID, Type: models.ExceptionMissedClockOut, Description: "left without clocking out"}

	_, err = env.clock.ForceException(env.ctx, env.f.Staff.ID, input, at(11, 0))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	exception, err := env.clock.ForceException(env.ctx, env.f.Lead.ID, input, at(11, 0))
	require.NoError(t, err)
	assert.Equal(t, models.ExceptionStatusApproved, exception.Status)
	assert.Equal(t, env.f.Staff.ID, exception.UserID)
	assert.Equal(t, env.f.Lead.ID, *exception.ReviewedBy)
	require.NotNil(t, exception.ClockEntryID)
	assert.Equal(t, entry.ID, *exception.ClockEntryID)

	var stored models.ClockEntry
	require.NoError(t, env.db.First(&stored, entry.ID).Error)
	assert.Equal(t, models.ClockStatusException, stored.Status)

	_, err = env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(12, 0))
	assert.NoError(t, err)
}

func TestClockService_ForceExceptionWithoutEntry(t *testing.T) {
	env := newServiceEnv(t)

	exception, err := env.clock.ForceException(env.ctx, env.f.Manager.ID, ForceExceptionInput{
		ShiftID:     env.f.Shift.ID,
		UserID:      env.f.Staff.ID,
		Type:        models.ExceptionLateStart,
		Description: "never showed up",
	}, at(18, 0))
	require.NoError(t, err)
	assert.Nil(t, exception.ClockEntryID)

	for _, userID := range []uint64{env.f.Other.ID, 999} {
		_, err = env.clock.ForceException(env.ctx, env.f.Manager.ID, ForceExceptionInput{
			ShiftID:     env.f.Shift.ID,
			UserID:      userID,
			Type:        models.ExceptionLateStart,
			Description: "never showed up",
		}, at(18, 0))
		assert.True(t, workforce.HasDenialReason(err, workforce.DenialNotAssignee), "user %d", userID)
	}

	_, total, err := env.exceptions.List(env.ctx, env.f.Manager.ID, nil, utils.NewPaginationParams(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = env.clock.ForceException(env.ctx, env.f.Manager.ID, ForceExceptionInput{
		ShiftID:     env.f.Shift.ID,
		EntryID:     ptr(uint64(999)),
		Type:        models.ExceptionLateStart,
		Description: "never showed up",
	}, at(18, 0))
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestClockService_RateEntry(t *testing.T) {
	env := newServiceEnv(t)

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)
	_, err = env.clock.RequestClockOut(env.ctx, entry.ID, env.f.Staff.ID, at(17, 0), ClockOutInput{BountyClaimed: true})
	require.NoError(t, err)

	_, err = env.clock.RateEntry(env.ctx, env.f.Lead.ID, entry.ID, RateInput{Rating: 4})
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	_, err = env.clock.RateEntry(env.ctx, env.f.Manager.ID, entry.ID, RateInput{Rating: 6})
	var validationErr *workforce.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	rated, err := env.clock.RateEntry(env.ctx, env.f.Manager.ID, entry.ID, RateInput{Rating: 5, Comment: ptr("great"), AwardBounty: true})
	require.NoError(t, err)
	assert.Equal(t, 5, *rated.Rating)
	assert.True(t, rated.BountyAwarded)
}

func TestClockService_RateEntryRejectsUnclaimedBounty(t *testing.T) {
	env := newServiceEnv(t)

	entry, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)

	_, err = env.clock.RateEntry(env.ctx, env.f.Manager.ID, entry.ID, RateInput{Rating: 3, AwardBounty: true})
	var validationErr *workforce.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestClockService_ListEntries(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)
	from, to := at(0, 0), at(0, 0).Add(7*24*time.Hour)

	own, err := env.clock.ListEntries(env.ctx, env.f.Staff.ID, env.f.Staff.ID, from, to)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	_, err = env.clock.ListEntries(env.ctx, env.f.Other.ID, env.f.Staff.ID, from, to)
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	managed, err := env.clock.ListEntries(env.ctx, env.f.Manager.ID, env.f.Staff.ID, from, to)
	require.NoError(t, err)
	assert.Len(t, managed, 1)

	_, err = env.clock.ListEntries(env.ctx, env.f.Staff.ID, env.f.Staff.ID, to, from)
	var validationErr *workforce.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestClockService_ListEntriesDeniesOtherOrganizations(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.clock.RequestClockIn(env.ctx, env.f.Shift.ID, env.f.Staff.ID, at(9, 0))
	require.NoError(t, err)

	levels := []string{"Agent"}
	machines := &models.Organization{
		Name:            "Machine City",
		HierarchyLevels: levels,
		Permissions:     workforce.DefaultPermissionMatrixFor(levels),
		Settings:        models.DefaultSettings(),
		Users:           []models.User{{Username: "smith", PasswordHash: "x", HierarchyLevel: 0}},
	}
	require.NoError(t, env.db.Create(machines).Error)
	smith := machines.Users[0]

	_, err = env.clock.ListEntries(env.ctx, smith.ID, env.f.Staff.ID, at(0, 0), at(0, 0).Add(7*24*time.Hour))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	_, err = env.clock.ListEntries(env.ctx, env.f.Manager.ID, 999, at(0, 0), at(0, 0).Add(7*24*time.Hour))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClockService_StoreFailureIsStoreError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users`")).WillReturnError(errors.New("connection refused"))

	perms := NewPermissionService(repository.NewOrganizationRepository(db), repository.NewUserRepository(db))
	svc := NewClockService(perms, repository.NewShiftRepository(db), repository.NewClockEntryRepository(db), repository.NewExceptionRepository(db))

	_, err = svc.RequestClockIn(context.Background(), 1, 1, at(9, 0))
	require.Error(t, err)
	assert.True(t, workforce.IsStoreError(err))
	_, isDenial := workforce.AsDenial(err)
	assert.False(t, isDenial)
	assert.NoError(t, mock.ExpectationsWereMet())
}
