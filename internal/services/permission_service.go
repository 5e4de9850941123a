package services

import (
	"context"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// PermissionService resolves actors and evaluates the permission gate against stored organizations.
type PermissionService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *PermissionService {
	return &PermissionService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// Actor loads a user together with their organization.
func (s *PermissionService) Actor(ctx context.Context, userID uint64) (*models.User, *models.Organization, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, lookupErr("load user", err, ErrUserNotFound)
	}
	org, err := s.orgRepo.FindByID(ctx, user.OrganizationID)
	if err != nil {
		return nil, nil, lookupErr("load organization", err, ErrOrganizationNotFound)
	}
	return user, org, nil
}

// Authorize loads the actor and fails with a PermissionDenied denial unless they hold capability.
func (s *PermissionService) Authorize(ctx context.Context, userID uint64, capability workforce.Capability) (*models.User, *models.Organization, error) {
	user, org, err := s.Actor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if err := workforce.Authorize(*org, *user, capability); err != nil {
		return nil, nil, err
	}
	return user, org, nil
}

// Check evaluates capability for a user of organization orgID. A user of another organization
// is denied.
func (s *PermissionService) Check(ctx context.Context, orgID, userID uint64, capability workforce.Capability) error {
	user, org, err := s.Actor(ctx, userID)
	if err != nil {
		return err
	}
	if org.ID != orgID {
		return workforce.PermissionDenied(capability)
	}
	return workforce.Authorize(*org, *user, capability)
}

// CapabilityVerdict is the gate's answer for one capability.
type CapabilityVerdict struct {
	Capability    workforce.Capability `json:"capability"`
	RequiredLevel int                  `json:"required_level"`
	Allowed       bool                 `json:"allowed"`
}

// Capabilities lists every capability with the verdict for the user.
func (s *PermissionService) Capabilities(ctx context.Context, userID uint64) ([]CapabilityVerdict, error) {
	user, org, err := s.Actor(ctx, userID)
	if err != nil {
		return nil, err
	}

	verdicts := make([]CapabilityVerdict, 0, len(workforce.AllCapabilities()))
	for _, capability := range workforce.AllCapabilities() {
		ok, err := workforce.CanPerform(*org, *user, capability)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, CapabilityVerdict{
			Capability:    capability,
			RequiredLevel: workforce.RequiredLevel(org.Permissions, capability),
			Allowed:       ok,
		})
	}
	return verdicts, nil
}
