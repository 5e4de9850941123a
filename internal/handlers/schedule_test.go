package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/dto"
	"github.com/yukikurage/workforce-api/internal/testutil"
)

func TestScheduleHandler_CreateShift(t *testing.T) {
	env := setupAPITestEnv(t)
	payload := map[string]interface{}{
		"project_id":  env.f.Project.ID,
		"phase_id":    env.f.Phase.ID,
		"assignee_id": env.f.Other.ID,
		"start_at":    testutil.Monday.Add(33 * time.Hour).Format(time.RFC3339),
		"end_at":      testutil.Monday.Add(41 * time.Hour).Format(time.RFC3339),
	}

	w := env.do(t, http.MethodPost, "/api/shifts", payload, env.login(t, "neo"))
	require.Equal(t, http.StatusForbidden, w.Code)

	lead := env.login(t, "niobe")
	w = env.do(t, http.MethodPost, "/api/shifts", payload, lead)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var shift dto.ShiftDTO
	decode(t, w, &shift)
	assert.Equal(t, env.f.Other.ID, shift.AssigneeID)
	assert.Equal(t, 15, shift.AllowedLateMinutes)

	payload["end_at"] = testutil.Monday.Add(47 * time.Hour).Format(time.RFC3339)
	w = env.do(t, http.MethodPost, "/api/shifts", payload, lead)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_ListShifts(t *testing.T) {
	env := setupAPITestEnv(t)
	cookies := env.login(t, "neo")

	w := env.do(t, http.MethodGet, "/api/shifts?week=2024-03-06", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var response dto.ShiftListResponse
	decode(t, w, &response)
	assert.True(t, response.WeekStart.Equal(testutil.Monday))
	require.Len(t, response.Shifts, 1)

	w = env.do(t, http.MethodGet, "/api/shifts?week=2024-03-11", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var nextWeek dto.ShiftListResponse
	decode(t, w, &nextWeek)
	assert.Empty(t, nextWeek.Shifts)

	w = env.do(t, http.MethodGet, "/api/shifts?week=03/06/2024", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_GetAllocation(t *testing.T) {
	env := setupAPITestEnv(t)
	testutil.CreateShift(t, env.db, env.f, env.f.Staff.ID, testutil.Monday.Add(18*time.Hour), 2*time.Hour)
	path := fmt.Sprintf("/api/projects/%d/allocation?week=2024-03-04", env.f.Project.ID)

	w := env.do(t, http.MethodGet, path, nil, env.login(t, "morpheus"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response dto.AllocationResponse
	decode(t, w, &response)
	assert.Equal(t, env.f.Project.ID, response.ProjectID)
	staff, ok := response.ForUser(env.f.Staff.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, staff.WeekTotal)
	assert.Equal(t, []int{0}, staff.OverAllocatedDays)
	require.NotNil(t, staff.Cost)
	assert.Equal(t, 200.0, *staff.Cost)

	w = env.do(t, http.MethodGet, path, nil, env.login(t, "niobe"))
	require.Equal(t, http.StatusOK, w.Code)
	var hidden dto.AllocationResponse
	decode(t, w, &hidden)
	staff, _ = hidden.ForUser(env.f.Staff.ID)
	assert.Nil(t, staff.Cost)

	w = env.do(t, http.MethodGet, "/api/projects/999/allocation", nil, env.login(t, "niobe"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandler_DefaultWeekUsesOrganizationTimezone(t *testing.T) {
	env := setupAPITestEnv(t)
	w := env.do(t, http.MethodPatch, "/api/organization/settings", map[string]interface{}{"timezone": "Pacific/Auckland"}, env.login(t, "morpheus"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Sunday noon UTC is Monday 01:00 in Auckland, so the default week is the next one
	env.now = testutil.Monday.Add(6*24*time.Hour + 12*time.Hour)
	staff := env.login(t, "neo")

	w = env.do(t, http.MethodGet, "/api/shifts", nil, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var current dto.ShiftListResponse
	decode(t, w, &current)
	assert.True(t, current.WeekStart.Equal(time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)), current.WeekStart)
	assert.Empty(t, current.Shifts)

	w = env.do(t, http.MethodGet, "/api/shifts?week=2024-03-04", nil, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var previous dto.ShiftListResponse
	decode(t, w, &previous)
	assert.True(t, previous.WeekStart.Equal(time.Date(2024, 3, 3, 11, 0, 0, 0, time.UTC)), previous.WeekStart)
	assert.Len(t, previous.Shifts, 1)
}
