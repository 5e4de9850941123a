package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/testutil"
	"github.com/yukikurage/workforce-api/internal/utils"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

func TestExceptionService_RequestAndReview(t *testing.T) {
	env := newServiceEnv(t)

	input := RequestExceptionInput{ShiftID: env.f.Shift.ID, Type: models.ExceptionLateStart, Description: "train stuck in tunnel"}

	_, err := env.exceptions.Request(env.ctx, env.f.Other.ID, input)
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialNotAssignee))

	requested, err := env.exceptions.Request(env.ctx, env.f.Staff.ID, input)
	require.NoError(t, err)
	assert.Equal(t, models.ExceptionStatusPending, requested.Status)

	_, err = env.exceptions.Approve(env.ctx, env.f.Staff.ID, requested.ID, nil, at(10, 0))
	assert.True(t, workforce.HasDenialReason(err, workforce.DenialPermissionDenied))

	approved, err := env.exceptions.Approve(env.ctx, env.f.Lead.ID, requested.ID, ptr("ok"), at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, models.ExceptionStatusApproved, approved.Status)
	assert.Equal(t, env.f.Lead.ID, *approved.ReviewedBy)
	assert.Equal(t, "ok", *approved.ReviewComment)

	_, err = env.exceptions.Deny(env.ctx, env.f.Manager.ID, requested.ID, nil, at(10, 5))
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestExceptionService_RequestValidation(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.exceptions.Request(env.ctx, env.f.Staff.ID, RequestExceptionInput{
		ShiftID: env.f.Shift.ID, Type: models.ExceptionEarlyLeave, Description: "ill",
	})
	var validationErr *workforce.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = env.exceptions.Request(env.ctx, env.f.Staff.ID, RequestExceptionInput{
		ShiftID: env.f.Shift.ID, Type: "COFFEE_BREAK", Description: "needed coffee",
	})
	assert.ErrorAs(t, err, &validationErr)

	_, err = env.exceptions.Request(env.ctx, env.f.Staff.ID, RequestExceptionInput{
		ShiftID: env.f.Shift.ID, EntryID: ptr(uint64(42)), Type: models.ExceptionEarlyLeave, Description: "felt ill",
	})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestExceptionService_ListScopesToRole(t *testing.T) {
	env := newServiceEnv(t)

	_, err := env.exceptions.Request(env.ctx, env.f.Staff.ID, RequestExceptionInput{
		ShiftID: env.f.Shift.ID, Type: models.ExceptionLateStart, Description: "train delayed",
	})
	require.NoError(t, err)
	otherShift := testutil.CreateShift(t, env.db, env.f, env.f.Other.ID, at(9, 0).Add(24*time.Hour), 8*time.Hour)
	_, err = env.clock.ForceException(env.ctx, env.f.Lead.ID, ForceExceptionInput{
		ShiftID: otherShift.ID, UserID: env.f.Other.ID, Type: models.ExceptionTimeCorrection, Description: "covered for neo",
	}, at(12, 0))
	require.NoError(t, err)

	page := utils.NewPaginationParams(1, 20)

	own, total, err := env.exceptions.List(env.ctx, env.f.Staff.ID, nil, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, env.f.Staff.ID, own[0].UserID)

	all, total, err := env.exceptions.List(env.ctx, env.f.Lead.ID, nil, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	pending := models.ExceptionStatusPending
	filtered, _, err := env.exceptions.List(env.ctx, env.f.Lead.ID, &pending, page)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.ExceptionLateStart, filtered[0].Type)
}
