package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

func TestExceptionHandler_RequestAndReview(t *testing.T) {
	env := setupAPITestEnv(t)
	staff := env.login(t, "neo")

	w := env.do(t, http.MethodPost, "/api/exceptions", map[string]interface{}{
		"shift_id":    env.f.Shift.ID,
		"type":        models.ExceptionLateStart,
		"description": "train stuck in tunnel",
	}, staff)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exception dto.ExceptionDTO
	decode(t, w, &exception)
	assert.Equal(t, models.ExceptionStatusPending, exception.Status)

	approvePath := fmt.Sprintf("/api/exceptions/%d/approve", exception.ID)
	w = env.do(t, http.MethodPost, approvePath, nil, staff)
	require.Equal(t, http.StatusForbidden, w.Code)

	lead := env.login(t, "niobe")
	w = env.do(t, http.MethodGet, "/api/exceptions?status=PENDING", nil, lead)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ExceptionListResponse
	decode(t, w, &list)
	require.Len(t, list.Exceptions, 1)
	assert.Equal(t, int64(1), list.Pagination.Total)

	w = env.do(t, http.MethodPost, approvePath, map[string]string{"comment": "noted"}, lead)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &exception)
	assert.Equal(t, models.ExceptionStatusApproved, exception.Status)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/exceptions/%d/deny", exception.ID), nil, lead)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, "/api/exceptions?status=LOST", nil, lead)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExceptionHandler_ForceFreesClockIn(t *testing.T) {
	env := setupAPITestEnv(t)
	staff := env.login(t, "neo")
	clockIn := fmt.Sprintf("/api/shifts/%d/clock-in", env.f.Shift.ID)

	w := env.do(t, http.MethodPost, clockIn, nil, staff)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/exceptions/force", map[string]interface{}{
		"shift_id":    env.f.Shift.ID,
		"type":        models.ExceptionMissedClockOut,
		"description": "badge reader offline",
	}, env.login(t, "niobe"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exception dto.ExceptionDTO
	decode(t, w, &exception)
	assert.Equal(t, models.ExceptionStatusApproved, exception.Status)
	assert.NotNil(t, exception.ClockEntryID)

	w = env.do(t, http.MethodPost, clockIn, nil, staff)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestExceptionHandler_ForceRejectsOtherUsers(t *testing.T) {
	env := setupAPITestEnv(t)

	w := env.do(t, http.MethodPost, "/api/exceptions/force", map[string]interface{}{
		"shift_id":    env.f.Shift.ID,
		"user_id":     env.f.Other.ID,
		"type":        models.ExceptionMissedClockOut,
		"description": "badge reader offline",
	}, env.login(t, "niobe"))
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	var response apierrors.APIError
	decode(t, w, &response)
	assert.Equal(t, string(workforce.DenialNotAssignee), response.Code)
}
