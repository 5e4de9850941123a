package services

import (
	"context"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/utils"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// ExceptionService handles exception requests filed by staff and their review.
type ExceptionService struct {
	perms      *PermissionService
	shifts     repository.ShiftRepository
	entries    repository.ClockEntryRepository
	exceptions repository.ExceptionRepository
}

// NewExceptionService creates a new ExceptionService.
func NewExceptionService(
	perms *PermissionService,
	shifts repository.ShiftRepository,
	entries repository.ClockEntryRepository,
	exceptions repository.ExceptionRepository,
) *ExceptionService {
	return &ExceptionService{
		perms:      perms,
		shifts:     shifts,
		entries:    entries,
		exceptions: exceptions,
	}
}

// RequestExceptionInput describes an irregularity reported by the shift's assignee.
type RequestExceptionInput struct {
	ShiftID     uint64
	EntryID     *uint64
	Type        models.ExceptionType
	Description string
}

// Request files a PENDING exception for one of the user's own shifts.
func (s *ExceptionService) Request(ctx context.Context, userID uint64, input RequestExceptionInput) (*models.ShiftException, error) {
	if err := workforce.ValidateExceptionRequest(input.Type, input.Description); err != nil {
		return nil, err
	}

	user, org, err := s.perms.Actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	shift, err := s.shifts.FindByID(ctx, input.ShiftID)
	if err != nil {
		return nil, lookupErr("load shift", err, ErrShiftNotFound)
	}
	if shift.OrganizationID != org.ID {
		return nil, ErrShiftNotFound
	}
	if shift.AssigneeID != user.ID {
		return nil, workforce.NotAssignee()
	}

	if input.EntryID != nil {
		entry, err := s.entries.FindByID(ctx, *input.EntryID)
		if err != nil {
			return nil, lookupErr("load clock entry", err, ErrEntryNotFound)
		}
		if entry.ShiftID != shift.ID || entry.UserID != user.ID {
			return nil, ErrEntryNotFound
		}
	}

	exception := &models.ShiftException{
		OrganizationID: org.ID,
		ShiftID:        shift.ID,
		UserID:         user.ID,
		ClockEntryID:   input.EntryID,
		Type:           input.Type,
		Description:    input.Description,
		Status:         models.ExceptionStatusPending,
	}
	if err := s.exceptions.Create(ctx, exception); err != nil {
		return nil, workforce.NewStoreError("create exception", err)
	}
	return exception, nil
}

// Approve resolves a PENDING exception as APPROVED.
func (s *ExceptionService) Approve(ctx context.Context, actorID, exceptionID uint64, comment *string, now time.Time) (*models.ShiftException, error) {
	return s.review(ctx, actorID, exceptionID, models.ExceptionStatusApproved, comment, now)
}

// Deny resolves a PENDING exception as DENIED.
func (s *ExceptionService) Deny(ctx context.Context, actorID, exceptionID uint64, comment *string, now time.Time) (*models.ShiftException, error) {
	return s.review(ctx, actorID, exceptionID, models.ExceptionStatusDenied, comment, now)
}

func (s *ExceptionService) review(ctx context.Context, actorID, exceptionID uint64, status models.ExceptionStatus, comment *string, now time.Time) (*models.ShiftException, error) {
	actor, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityApproveExceptions)
	if err != nil {
		return nil, err
	}

	exception, err := s.exceptions.FindByID(ctx, exceptionID)
	if err != nil {
		return nil, lookupErr("load exception", err, ErrExceptionNotFound)
	}
	if exception.OrganizationID != org.ID {
		return nil, ErrExceptionNotFound
	}

	ok, err := s.exceptions.Review(ctx, exception.ID, repository.Review{
		Status:     status,
		ReviewerID: actor.ID,
		Comment:    comment,
		At:         now,
	})
	if err != nil {
		return nil, workforce.NewStoreError("review exception", err)
	}
	if !ok {
		return nil, ErrAlreadyReviewed
	}

	reviewed, err := s.exceptions.FindByID(ctx, exception.ID)
	if err != nil {
		return nil, lookupErr("reload exception", err, ErrExceptionNotFound)
	}
	return reviewed, nil
}

// List returns the exceptions visible to the actor, newest first. Reviewers see the whole
// organization; everyone else sees their own.
func (s *ExceptionService) List(ctx context.Context, actorID uint64, status *models.ExceptionStatus, page utils.PaginationParams) ([]models.ShiftException, int64, error) {
	actor, org, err := s.perms.Actor(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	reviewer, err := workforce.CanPerform(*org, *actor, workforce.CapabilityApproveExceptions)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.ExceptionFilter{
		OrganizationID: org.ID,
		Status:         status,
		Pagination:     page,
	}
	if !reviewer {
		filter.UserID = &actor.ID
	}

	exceptions, total, err := s.exceptions.ListByOrganization(ctx, filter)
	if err != nil {
		return nil, 0, workforce.NewStoreError("list exceptions", err)
	}
	return exceptions, total, nil
}
