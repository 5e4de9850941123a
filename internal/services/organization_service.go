package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// OrganizationService provides business logic for organization settings.
type OrganizationService struct {
	perms   *PermissionService
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(perms *PermissionService, orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		perms:   perms,
		orgRepo: orgRepo,
	}
}

// GetOrganization returns the actor's organization.
func (s *OrganizationService) GetOrganization(ctx context.Context, actorID uint64) (*models.Organization, error) {
	_, org, err := s.perms.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// SettingsPatch holds the settings to change. Nil fields are left as they are.
type SettingsPatch struct {
	AllowedEarlyClockIn *int
	StrictMode          *bool
	Currency            *string
	RequireHandover     *bool
	Timezone            *string
}

// UpdateSettings applies patch to the settings of the actor's organization.
func (s *OrganizationService) UpdateSettings(ctx context.Context, actorID uint64, patch SettingsPatch) (*models.Organization, error) {
	org, err := s.seniorActorOrg(ctx, actorID, "change organization settings")
	if err != nil {
		return nil, err
	}

	settings := org.Settings
	if patch.AllowedEarlyClockIn != nil {
		if *patch.AllowedEarlyClockIn < 0 || *patch.AllowedEarlyClockIn > 24*60 {
			return nil, &workforce.ValidationError{Field: "allowed_early_clock_in", Detail: "must be between 0 and 1440 minutes"}
		}
		settings.AllowedEarlyClockIn = *patch.AllowedEarlyClockIn
	}
	if patch.StrictMode != nil {
		settings.StrictMode = *patch.StrictMode
	}
	if patch.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*patch.Currency))
		if len(currency) != 3 {
			return nil, &workforce.ValidationError{Field: "currency", Detail: "must be a three-letter currency code"}
		}
		settings.Currency = currency
	}
	if patch.RequireHandover != nil {
		settings.RequireHandover = *patch.RequireHandover
	}
	if patch.Timezone != nil {
		if _, err := time.LoadLocation(*patch.Timezone); err != nil {
			return nil, &workforce.ValidationError{Field: "timezone", Detail: "unknown timezone " + *patch.Timezone}
		}
		settings.Timezone = *patch.Timezone
	}
	settings.SchemaVersion = models.CurrentSettingsVersion

	if err := s.orgRepo.UpdateSettings(ctx, org.ID, settings); err != nil {
		return nil, lookupErr("update settings", err, ErrOrganizationNotFound)
	}
	org.Settings = settings
	return org, nil
}

// UpdatePermissions replaces the permission matrix of the actor's organization. Every
// capability must be listed with a level inside the hierarchy.
func (s *OrganizationService) UpdatePermissions(ctx context.Context, actorID uint64, matrix models.PermissionMatrix) (*models.Organization, error) {
	org, err := s.seniorActorOrg(ctx, actorID, "change permissions")
	if err != nil {
		return nil, err
	}

	if err := workforce.ValidatePermissionMatrix(org.HierarchyLevels, matrix); err != nil {
		var cfgErr *workforce.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, &workforce.ValidationError{Field: cfgErr.Field, Detail: cfgErr.Detail}
		}
		return nil, err
	}
	for _, capability := range workforce.AllCapabilities() {
		if _, ok := matrix[string(capability)]; !ok {
			return nil, &workforce.ValidationError{Field: "permissions", Detail: "missing capability " + string(capability)}
		}
	}

	if err := s.orgRepo.UpdatePermissions(ctx, org.ID, matrix); err != nil {
		return nil, lookupErr("update permissions", err, ErrOrganizationNotFound)
	}
	org.Permissions = matrix
	return org, nil
}

// seniorActorOrg loads the actor's organization, denying anyone below level 0.
func (s *OrganizationService) seniorActorOrg(ctx context.Context, actorID uint64, action string) (*models.Organization, error) {
	actor, org, err := s.perms.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.HierarchyLevel != 0 {
		return nil, workforce.MostSeniorOnly(action)
	}
	return org, nil
}
