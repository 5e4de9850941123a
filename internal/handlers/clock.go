package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/services"
)

// ClockHandler serves clock-in, clock-out and timecard endpoints.
type ClockHandler struct {
	clockService *services.ClockService
	clock        Clock
	logger       zerolog.Logger
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(clockService *services.ClockService, clock Clock, logger zerolog.Logger) *ClockHandler {
	return &ClockHandler{
		clockService: clockService,
		clock:        clock,
		logger:       logger,
	}
}

// ClockIn opens a clock entry on the shift for the current user.
func (h *ClockHandler) ClockIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.clockService.RequestClockIn(c.Request.Context(), shiftID, userID, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClockEntryDTO(*entry))
}

// ClockOut completes the current user's open entry.
func (h *ClockHandler) ClockOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ClockOutRequest struct {
		Summary       *string `json:"summary"`
		MoraleScore   *int    `json:"morale_score"`
		BountyClaimed bool    `json:"bounty_claimed"`
	}

	var req ClockOutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	entry, err := h.clockService.RequestClockOut(c.Request.Context(), entryID, userID, h.clock.now(), services.ClockOutInput{
		Summary:       req.Summary,
		MoraleScore:   req.MoraleScore,
		BountyClaimed: req.BountyClaimed,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClockEntryDTO(*entry))
}

// RateEntry stores a manager's rating of a shift.
func (h *ClockHandler) RateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type RateRequest struct {
		Rating      int     `json:"rating" binding:"required"`
		Comment     *string `json:"comment"`
		AwardBounty bool    `json:"award_bounty"`
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.clockService.RateEntry(c.Request.Context(), userID, entryID, services.RateInput{
		Rating:      req.Rating,
		Comment:     req.Comment,
		AwardBounty: req.AwardBounty,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClockEntryDTO(*entry))
}

// ListEntries returns clock entries in [from, to), RFC 3339. Without user_id the current user's
// entries are listed; the range defaults to the seven UTC days ending today.
func (h *ClockHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID := userID
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user_id")
			return
		}
		subjectID = id
	}

	now := h.clock.now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -7)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			apierrors.BadRequest(c, "Invalid from, expected RFC 3339")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			apierrors.BadRequest(c, "Invalid to, expected RFC 3339")
			return
		}
	}

	entries, err := h.clockService.ListEntries(c.Request.Context(), userID, subjectID, from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClockEntryListResponse(entries))
}
