package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/workforce-api/internal/dto"
	apierrors "github.com/yukikurage/workforce-api/internal/errors"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/utils"
)

// ExceptionHandler serves exception requests, manager overrides and reviews.
type ExceptionHandler struct {
	exceptions   *services.ExceptionService
	clockService *services.ClockService
	clock        Clock
	logger       zerolog.Logger
}

// NewExceptionHandler creates a new ExceptionHandler.
func NewExceptionHandler(exceptions *services.ExceptionService, clockService *services.ClockService, clock Clock, logger zerolog.Logger) *ExceptionHandler {
	return &ExceptionHandler{
		exceptions:   exceptions,
		clockService: clockService,
		clock:        clock,
		logger:       logger,
	}
}

// RequestException files a pending exception for one of the current user's shifts.
func (h *ExceptionHandler) RequestException(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type RequestExceptionRequest struct {
		ShiftID      uint64               `json:"shift_id" binding:"required"`
		ClockEntryID *uint64              `json:"clock_entry_id"`
		Type         models.ExceptionType `json:"type" binding:"required"`
		Description  string               `json:"description"`
	}

	var req RequestExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	exception, err := h.exceptions.Request(c.Request.Context(), userID, services.RequestExceptionInput{
		ShiftID:     req.ShiftID,
		EntryID:     req.ClockEntryID,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExceptionDTO(*exception))
}

// ForceException records an approved exception and moves the affected entry to EXCEPTION.
func (h *ExceptionHandler) ForceException(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type ForceExceptionRequest struct {
		ShiftID      uint64               `json:"shift_id" binding:"required"`
		UserID       uint64               `json:"user_id"`
		ClockEntryID *uint64              `json:"clock_entry_id"`
		Type         models.ExceptionType `json:"type" binding:"required"`
		Description  string               `json:"description"`
	}

	var req ForceExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	exception, err := h.clockService.ForceException(c.Request.Context(), userID, services.ForceExceptionInput{
		ShiftID:     req.ShiftID,
		UserID:      req.UserID,
		EntryID:     req.ClockEntryID,
		Type:        req.Type,
		Description: req.Description,
	}, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExceptionDTO(*exception))
}

// ListExceptions returns a page of exceptions, optionally filtered by ?status=.
func (h *ExceptionHandler) ListExceptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var status *models.ExceptionStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ExceptionStatus(raw)
		switch s {
		case models.ExceptionStatusPending, models.ExceptionStatusApproved, models.ExceptionStatusDenied:
			status = &s
		default:
			apierrors.BadRequest(c, "Invalid status")
			return
		}
	}

	params := utils.GetPaginationParams(c)
	exceptions, total, err := h.exceptions.List(c.Request.Context(), userID, status, params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExceptionListResponse(exceptions, params, total))
}

// ApproveException resolves a pending exception as approved.
func (h *ExceptionHandler) ApproveException(c *gin.Context) {
	h.review(c, h.exceptions.Approve)
}

// DenyException resolves a pending exception as denied.
func (h *ExceptionHandler) DenyException(c *gin.Context) {
	h.review(c, h.exceptions.Deny)
}

type reviewFunc func(ctx context.Context, actorID, exceptionID uint64, comment *string, now time.Time) (*models.ShiftException, error)

func (h *ExceptionHandler) review(c *gin.Context, resolve reviewFunc) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exceptionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ReviewRequest struct {
		Comment *string `json:"comment"`
	}

	var req ReviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	exception, err := resolve(c.Request.Context(), userID, exceptionID, req.Comment, h.clock.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExceptionDTO(*exception))
}
