package services

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// ClockService admits clock-ins and clock-outs and records forced exceptions.
//
// Admission for a shift and user is serialized twice: by an in-process keyed lock, and by the
// store's unique OpenKey index, which rejects a second open entry written by another process.
type ClockService struct {
	perms      *PermissionService
	shifts     repository.ShiftRepository
	entries    repository.ClockEntryRepository
	exceptions repository.ExceptionRepository
	locks      *keyedMutex
}

// NewClockService creates a new ClockService.
func NewClockService(
	perms *PermissionService,
	shifts repository.ShiftRepository,
	entries repository.ClockEntryRepository,
	exceptions repository.ExceptionRepository,
) *ClockService {
	return &ClockService{
		perms:      perms,
		shifts:     shifts,
		entries:    entries,
		exceptions: exceptions,
		locks:      newKeyedMutex(),
	}
}

// loadShift fetches a shift visible to org.
func (s *ClockService) loadShift(ctx context.Context, shiftID uint64, org *models.Organization) (*models.Shift, error) {
	shift, err := s.shifts.FindByID(ctx, shiftID)
	if err != nil {
		return nil, lookupErr("load shift", err, ErrShiftNotFound)
	}
	if shift.OrganizationID != org.ID {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

// RequestClockIn opens a clock entry for the shift's assignee at now.
func (s *ClockService) RequestClockIn(ctx context.Context, shiftID, userID uint64, now time.Time) (*models.ClockEntry, error) {
	user, org, err := s.perms.Actor(ctx, userID)
	if err != nil {
		return nil, err
	}
	shift, err := s.loadShift(ctx, shiftID, org)
	if err != nil {
		return nil, err
	}
	if shift.AssigneeID != user.ID {
		return nil, workforce.NotAssignee()
	}

	unlock := s.locks.Lock(models.OpenKeyFor(shift.ID, user.ID))
	defer unlock()

	hasOpen := true
	if _, err := s.entries.FindOpen(ctx, shift.ID, user.ID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, workforce.NewStoreError("find open entry", err)
		}
		hasOpen = false
	}

	status, denial := workforce.EvaluateClockIn(*shift, org.Settings, hasOpen, now)
	if denial != nil {
		return nil, denial
	}

	entry := &models.ClockEntry{
		OrganizationID: org.ID,
		ShiftID:        shift.ID,
		UserID:         user.ID,
		ClockInAt:      now,
		Status:         status,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, workforce.AlreadyActive()
		}
		return nil, workforce.NewStoreError("create clock entry", err)
	}

	return entry, nil
}

// ClockOutInput holds the optional post-shift report.
type ClockOutInput struct {
	Summary       *string
	MoraleScore   *int
	BountyClaimed bool
}

// RequestClockOut completes the actor's open entry at now.
func (s *ClockService) RequestClockOut(ctx context.Context, entryID, actorID uint64, now time.Time, input ClockOutInput) (*models.ClockEntry, error) {
	if err := workforce.ValidateClockOutDetails(input.Summary, input.MoraleScore); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, lookupErr("load clock entry", err, ErrEntryNotFound)
	}
	if entry.UserID != actorID {
		return nil, ErrNotEntryOwner
	}
	if denial := workforce.EvaluateClockOut(*entry); denial != nil {
		return nil, denial
	}

	unlock := s.locks.Lock(models.OpenKeyFor(entry.ShiftID, entry.UserID))
	defer unlock()

	ok, err := s.entries.CompleteOpen(ctx, entry.ID, repository.ClockOut{
		At:            now,
		Summary:       input.Summary,
		MoraleScore:   input.MoraleScore,
		BountyClaimed: input.BountyClaimed,
	})
	if err != nil {
		return nil, workforce.NewStoreError("complete clock entry", err)
	}

	updated, err := s.entries.FindByID(ctx, entry.ID)
	if err != nil {
		return nil, lookupErr("reload clock entry", err, ErrEntryNotFound)
	}
	if !ok {
		return nil, workforce.NotActive(updated.Status)
	}
	return updated, nil
}

// ForceExceptionInput selects the shift, user and optionally the entry an exception is forced on.
// A zero UserID means the shift's assignee; any other user is rejected.
type ForceExceptionInput struct {
	ShiftID     uint64
	UserID      uint64
	EntryID     *uint64
	Type        models.ExceptionType
	Description string
}

// ForceException records an approved exception on behalf of a manager. The affected entry, the
// given one or else the open or latest entry of the pair, moves to EXCEPTION and frees the pair
// for a new clock-in. With no entry at all only the exception is recorded.
func (s *ClockService) ForceException(ctx context.Context, actorID uint64, input ForceExceptionInput, now time.Time) (*models.ShiftException, error) {
	if err := workforce.ValidateExceptionRequest(input.Type, input.Description); err != nil {
		return nil, err
	}

	actor, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityApproveExceptions)
	if err != nil {
		return nil, err
	}
	shift, err := s.loadShift(ctx, input.ShiftID, org)
	if err != nil {
		return nil, err
	}
	userID := input.UserID
	if userID == 0 {
		userID = shift.AssigneeID
	}
	if userID != shift.AssigneeID {
		return nil, workforce.NotAssignee()
	}

	unlock := s.locks.Lock(models.OpenKeyFor(shift.ID, userID))
	defer unlock()

	entry, err := s.pickEntry(ctx, shift.ID, userID, input.EntryID)
	if err != nil {
		return nil, err
	}

	reviewedAt := now.UTC()
	exception := &models.ShiftException{
		OrganizationID: org.ID,
		ShiftID:        shift.ID,
		UserID:         userID,
		Type:           input.Type,
		Description:    input.Description,
		Status:         models.ExceptionStatusApproved,
		ReviewedBy:     &actor.ID,
		ReviewedAt:     &reviewedAt,
	}

	var entryID *uint64
	if entry != nil {
		entryID = &entry.ID
	}
	if err := s.exceptions.ForceOnEntry(ctx, exception, entryID); err != nil {
		return nil, lookupErr("force exception", err, ErrEntryNotFound)
	}

	return exception, nil
}

func (s *ClockService) pickEntry(ctx context.Context, shiftID, userID uint64, entryID *uint64) (*models.ClockEntry, error) {
	if entryID != nil {
		entry, err := s.entries.FindByID(ctx, *entryID)
		if err != nil {
			return nil, lookupErr("load clock entry", err, ErrEntryNotFound)
		}
		if entry.ShiftID != shiftID || entry.UserID != userID {
			return nil, ErrEntryNotFound
		}
		return entry, nil
	}

	entry, err := s.entries.FindOpen(ctx, shiftID, userID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, workforce.NewStoreError("find open entry", err)
	}

	entry, err = s.entries.FindLatest(ctx, shiftID, userID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, workforce.NewStoreError("find latest entry", err)
	}
	return nil, nil
}

// RateInput is a manager's assessment of a completed shift.
type RateInput struct {
	Rating      int
	Comment     *string
	AwardBounty bool
}

// RateEntry stores a manager rating. A bounty can only be awarded when it was claimed.
func (s *ClockService) RateEntry(ctx context.Context, actorID, entryID uint64, input RateInput) (*models.ClockEntry, error) {
	if err := workforce.ValidateRating(input.Rating); err != nil {
		return nil, err
	}

	_, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityEditTimecards)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, lookupErr("load clock entry", err, ErrEntryNotFound)
	}
	if entry.OrganizationID != org.ID {
		return nil, ErrEntryNotFound
	}
	if input.AwardBounty && !entry.BountyClaimed {
		return nil, &workforce.ValidationError{Field: "award_bounty", Detail: "no bounty was claimed for this entry"}
	}

	if err := s.entries.Rate(ctx, entry.ID, input.Rating, input.Comment, input.AwardBounty); err != nil {
		return nil, lookupErr("rate clock entry", err, ErrEntryNotFound)
	}

	entry.Rating = &input.Rating
	entry.ManagerComment = input.Comment
	entry.BountyAwarded = input.AwardBounty
	return entry, nil
}

// ListEntries returns the entries a user clocked in during [from, to). Users see their own
// entries; anyone else needs edit_timecards.
func (s *ClockService) ListEntries(ctx context.Context, actorID, userID uint64, from, to time.Time) ([]models.ClockEntry, error) {
	if !from.Before(to) {
		return nil, &workforce.ValidationError{Field: "to", Detail: "must be after from"}
	}

	if actorID != userID {
		subject, _, err := s.perms.Actor(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.perms.Check(ctx, subject.OrganizationID, actorID, workforce.CapabilityEditTimecards); err != nil {
			return nil, err
		}
	}

	entries, err := s.entries.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, workforce.NewStoreError("list clock entries", err)
	}
	return entries, nil
}
