package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

func TestOrganizationService_GetOrganization(t *testing.T) {
	env := newServiceEnv(t)

	org, err := env.orgs.GetOrganization(env.ctx, env.f.Staff.ID)
	require.NoError(t, err)
	assert.Equal(t, env.f.Org.ID, org.ID)

	_, err = env.orgs.GetOrganization(env.ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOrganizationService_UpdateSettings(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.orgs.UpdateSettings(env.ctx, env.f.Manager.ID, SettingsPatch{StrictMode: ptr(false)})
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	org, err := env.orgs.UpdateSettings(env.ctx, env.f.Owner.ID, SettingsPatch{
		AllowedEarlyClockIn: ptr(30),
		StrictMode:          ptr(false),
		Currency:            ptr(" eur "),
		Timezone:            ptr("Asia/Tokyo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", org.Settings.Currency)

	stored, err := env.orgRepo.FindByID(env.ctx, env.f.Org.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Settings.AllowedEarlyClockIn)
	assert.False(t, stored.Settings.StrictMode)
	assert.True(t, stored.Settings.RequireHandover)
	assert.Equal(t, "Asia/Tokyo", stored.Settings.Timezone)

	invalid := map[string]SettingsPatch{
		"negative early minutes": {AllowedEarlyClockIn: ptr(-1)},
		"currency length":        {Currency: ptr("EURO")},
		"unknown timezone":       {Timezone: ptr("Mars/Olympus")},
	}
	for name, patch := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := env.orgs.UpdateSettings(env.ctx, env.f.Owner.ID, patch)
			var validation *workforce.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestOrganizationService_UpdatePermissions(t *testing.T) {
	env := newServiceEnv(t)

	matrix := workforce.DefaultPermissionMatrixFor(env.f.Org.HierarchyLevels)
	matrix[string(workforce.CapabilityEditTimecards)] = 3

	_, err := env.orgs.UpdatePermissions(env.ctx, env.f.Lead.ID, matrix)
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	_, err = env.orgs.UpdatePermissions(env.ctx, env.f.Owner.ID, matrix)
	require.NoError(t, err)
	assert.NoError(t, env.perms.Check(env.ctx, env.f.Org.ID, env.f.Staff.ID, workforce.CapabilityEditTimecards))

	invalid := map[string]models.PermissionMatrix{
		"unknown capability": {"launch_missiles": 0},
		"level out of range": {string(workforce.CapabilityCreateShift): 4},
		"missing capability": {string(workforce.CapabilityCreateShift): 2},
	}
	for name, m := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := env.orgs.UpdatePermissions(env.ctx, env.f.Owner.ID, m)
			var validation *workforce.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}
