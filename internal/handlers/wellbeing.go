package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/services"
)

type WellbeingHandler struct {
	wellbeing *services.WellbeingService
	clock     Clock
	logger    zerolog.Logger
}

func NewWellbeingHandler(wellbeing *services.WellbeingService, clock Clock, logger zerolog.Logger) *WellbeingHandler {
	return &WellbeingHandler{
		wellbeing: wellbeing,
		clock:     clock,
		logger:    logger,
	}
}

// LogMood records a mood check-in for the current user
func (h *WellbeingHandler) LogMood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type LogMoodRequest struct {
		Type      models.MoodType `json:"type" binding:"required"`
		MoodValue int             `json:"mood_value" binding:"required"`
		Comment   *string         `json:"comment"`
		IsShared  bool            `json:"is_shared"`
		IsUrgent  bool            `json:"is_urgent"`
	}

	var req LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.wellbeing.LogMood(c.Request.Context(), userID, services.LogMoodInput{
		Type:      req.Type,
		MoodValue: req.MoodValue,
		Comment:   req.Comment,
		IsShared:  req.IsShared,
		IsUrgent:  req.IsUrgent,
	}, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMoodEntryDTO(*entry))
}

// GetUserRisk returns the burnout assessment of a user
func (h *WellbeingHandler) GetUserRisk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.wellbeing.Risk(c.Request.Context(), userID, subjectID, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRiskResponse(*report))
}

// GetTeamRisk returns the burnout assessment of every user in the organization
func (h *WellbeingHandler) GetTeamRisk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.wellbeing.TeamRisk(c.Request.Context(), userID, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TeamRiskResponse{Users: rows})
}
