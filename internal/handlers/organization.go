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

type OrganizationHandler struct {
	orgService *services.OrganizationService
	logger     zerolog.Logger
}

func NewOrganizationHandler(orgService *services.OrganizationService, logger zerolog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// GetOrganization returns the organization of the current user
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// UpdateSettings changes the settings of the current user's organization
func (h *OrganizationHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateSettingsRequest struct {
		AllowedEarlyClockIn *int    `json:"allowed_early_clock_in"`
		StrictMode          *bool   `json:"strict_mode"`
		Currency            *string `json:"currency"`
		RequireHandover     *bool   `json:"require_handover"`
		Timezone            *string `json:"timezone"`
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateSettings(c.Request.Context(), userID, services.SettingsPatch{
		AllowedEarlyClockIn: req.AllowedEarlyClockIn,
		StrictMode:          req.StrictMode,
		Currency:            req.Currency,
		RequireHandover:     req.RequireHandover,
		Timezone:            req.Timezone,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// UpdatePermissions replaces the permission matrix of the current user's organization
func (h *OrganizationHandler) UpdatePermissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdatePermissionsRequest struct {
		Permissions models.PermissionMatrix `json:"permissions" binding:"required"`
	}

	var req UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdatePermissions(c.Request.Context(), userID, req.Permissions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}
