package services

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// ScheduleService schedules shifts and projects them onto weekly allocation grids.
type ScheduleService struct {
	perms    *PermissionService
	users    repository.UserRepository
	projects repository.ProjectRepository
	shifts   repository.ShiftRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	perms *PermissionService,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	shifts repository.ShiftRepository,
) *ScheduleService {
	return &ScheduleService{
		perms:    perms,
		users:    users,
		projects: projects,
		shifts:   shifts,
	}
}

// CreateShiftInput describes a shift to schedule. Nil tolerances take the organization defaults.
type CreateShiftInput struct {
	ProjectID           uint64
	PhaseID             uint64
	AssigneeID          uint64
	StartAt             time.Time
	EndAt               time.Time
	AllowedEarlyMinutes *int
	AllowedLateMinutes  *int
	PersonalGoals       []string
	Bounty              *string
}

// CreateShift schedules a shift on a project phase for one of its members.
func (s *ScheduleService) CreateShift(ctx context.Context, actorID uint64, input CreateShiftInput) (*models.Shift, error) {
	_, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityCreateShift)
	if err != nil {
		return nil, err
	}

	project, err := s.loadProject(ctx, input.ProjectID, org)
	if err != nil {
		return nil, err
	}

	shift := &models.Shift{
		OrganizationID:      org.ID,
		ProjectID:           project.ID,
		PhaseID:             input.PhaseID,
		AssigneeID:          input.AssigneeID,
		StartAt:             input.StartAt,
		EndAt:               input.EndAt,
		AllowedEarlyMinutes: org.Settings.AllowedEarlyClockIn,
		AllowedLateMinutes:  models.DefaultAllowedMinutes,
		PersonalGoals:       input.PersonalGoals,
		Bounty:              input.Bounty,
	}
	if input.AllowedEarlyMinutes != nil {
		shift.AllowedEarlyMinutes = *input.AllowedEarlyMinutes
	}
	if input.AllowedLateMinutes != nil {
		shift.AllowedLateMinutes = *input.AllowedLateMinutes
	}

	if err := workforce.ValidateShift(*shift, *project); err != nil {
		// shift fields come from the caller here, so report them as input errors
		var cfgErr *workforce.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, &workforce.ValidationError{Field: cfgErr.Field, Detail: cfgErr.Detail}
		}
		return nil, err
	}

	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, workforce.NewStoreError("create shift", err)
	}
	return shift, nil
}

func (s *ScheduleService) loadProject(ctx context.Context, projectID uint64, org *models.Organization) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, lookupErr("load project", err, ErrProjectNotFound)
	}
	if project.OrganizationID != org.ID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Week selects a week either by a calendar date or by an instant. Both are read in the
// organization's timezone.
type Week struct {
	date time.Time
	at   time.Time
}

// WeekOfDate selects the week containing the calendar date of day. The clock time and
// location of day are ignored.
func WeekOfDate(day time.Time) Week {
	return Week{date: day}
}

// WeekAt selects the week containing the instant now.
func WeekAt(now time.Time) Week {
	return Week{at: now}
}

// start returns the Monday 00:00 in loc that opens the selected week.
func (w Week) start(loc *time.Location) time.Time {
	if !w.at.IsZero() {
		return workforce.StartOfWeek(w.at, loc)
	}
	local := time.Date(w.date.Year(), w.date.Month(), w.date.Day(), 0, 0, 0, 0, loc)
	return workforce.StartOfWeek(local, loc)
}

func (s *ScheduleService) location(org *models.Organization) (*time.Location, error) {
	loc, err := org.Settings.Location()
	if err != nil {
		return nil, workforce.NewConfigurationError("timezone", "%v", err)
	}
	return loc, nil
}

// ListShiftsForWeek returns the organization's shifts starting in the selected week.
func (s *ScheduleService) ListShiftsForWeek(ctx context.Context, actorID uint64, week Week) (time.Time, []models.Shift, error) {
	_, org, err := s.perms.Actor(ctx, actorID)
	if err != nil {
		return time.Time{}, nil, err
	}
	loc, err := s.location(org)
	if err != nil {
		return time.Time{}, nil, err
	}

	start := week.start(loc)
	shifts, err := s.shifts.ListByOrganizationBetween(ctx, org.ID, start, start.Add(workforce.DaysPerWeek*24*time.Hour))
	if err != nil {
		return time.Time{}, nil, workforce.NewStoreError("list shifts", err)
	}
	return start, shifts, nil
}

// WeeklyLoad projects the week's organization shifts onto the members of a project. Cost is
// only reported to actors holding view_financials.
func (s *ScheduleService) WeeklyLoad(ctx context.Context, actorID, projectID uint64, week Week) (*workforce.WeeklyLoad, error) {
	actor, org, err := s.perms.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	project, err := s.loadProject(ctx, projectID, org)
	if err != nil {
		return nil, err
	}
	loc, err := s.location(org)
	if err != nil {
		return nil, err
	}
	financials, err := workforce.CanPerform(*org, *actor, workforce.CapabilityViewFinancials)
	if err != nil {
		return nil, err
	}

	members, err := s.users.ListByIDs(ctx, project.MemberIDs())
	if err != nil {
		return nil, workforce.NewStoreError("list project members", err)
	}
	byID := make(map[uint64]models.User, len(members))
	for _, u := range members {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(members))
	for _, id := range project.MemberIDs() {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}

	start := week.start(loc)
	shifts, err := s.shifts.ListByOrganizationBetween(ctx, org.ID, start, start.Add(workforce.DaysPerWeek*24*time.Hour))
	if err != nil {
		return nil, workforce.NewStoreError("list shifts", err)
	}

	load, err := workforce.BuildWeeklyLoad(ordered, shifts, start)
	if err != nil {
		return nil, err
	}
	if !financials {
		for i := range load.Users {
			load.Users[i].Cost = nil
		}
	}
	return &load, nil
}
