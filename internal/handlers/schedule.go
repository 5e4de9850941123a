package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/services"
)

type ScheduleHandler struct {
	schedule *services.ScheduleService
	clock    Clock
	logger   zerolog.Logger
}

func NewScheduleHandler(schedule *services.ScheduleService, clock Clock, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		clock:    clock,
		logger:   logger,
	}
}

// CreateShift schedules a shift
func (h *ScheduleHandler) CreateShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateShiftRequest struct {
		ProjectID           uint64    `json:"project_id" binding:"required"`
		PhaseID             uint64    `json:"phase_id" binding:"required"`
		AssigneeID          uint64    `json:"assignee_id" binding:"required"`
		StartAt             time.Time `json:"start_at" binding:"required"`
		EndAt               time.Time `json:"end_at" binding:"required"`
		AllowedEarlyMinutes *int      `json:"allowed_early_minutes"`
		AllowedLateMinutes  *int      `json:"allowed_late_minutes"`
		PersonalGoals       []string  `json:"personal_goals"`
		Bounty              *string   `json:"bounty"`
	}

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.schedule.CreateShift(c.Request.Context(), userID, services.CreateShiftInput{
		ProjectID:           req.ProjectID,
		PhaseID:             req.PhaseID,
		AssigneeID:          req.AssigneeID,
		StartAt:             req.StartAt.UTC(),
		EndAt:               req.EndAt.UTC(),
		AllowedEarlyMinutes: req.AllowedEarlyMinutes,
		AllowedLateMinutes:  req.AllowedLateMinutes,
		PersonalGoals:       req.PersonalGoals,
		Bounty:              req.Bounty,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftDTO(*shift))
}

// ListShifts returns the organization's shifts for the week containing ?week=YYYY-MM-DD
func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	week, ok := parseWeek(c, "week", h.clock.now())
	if !ok {
		return
	}

	weekStart, shifts, err := h.schedule.ListShiftsForWeek(c.Request.Context(), userID, week)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftListResponse(weekStart, shifts))
}

// GetAllocation returns the weekly load grid of a project's members
func (h *ScheduleHandler) GetAllocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	week, ok := parseWeek(c, "week", h.clock.now())
	if !ok {
		return
	}

	load, err := h.schedule.WeeklyLoad(c.Request.Context(), userID, projectID, week)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AllocationResponse{ProjectID: projectID, WeeklyLoad: *load})
}
