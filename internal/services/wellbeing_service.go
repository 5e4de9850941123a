package services

import (
	"context"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

// WellbeingService records mood check-ins and estimates burnout risk from them.
type WellbeingService struct {
	perms *PermissionService
	users repository.UserRepository
	moods repository.MoodRepository
}

// NewWellbeingService creates a new WellbeingService.
func NewWellbeingService(perms *PermissionService, users repository.UserRepository, moods repository.MoodRepository) *WellbeingService {
	return &WellbeingService{
		perms: perms,
		users: users,
		moods: moods,
	}
}

// LogMoodInput is a single mood check-in.
type LogMoodInput struct {
	Type      models.MoodType
	MoodValue int
	Comment   *string
	IsShared  bool
	IsUrgent  bool
}

// LogMood appends a mood entry for the user at now.
func (s *WellbeingService) LogMood(ctx context.Context, userID uint64, input LogMoodInput, now time.Time) (*models.MoodEntry, error) {
	if err := workforce.ValidateMood(input.Type, input.MoodValue); err != nil {
		return nil, err
	}
	if _, _, err := s.perms.Actor(ctx, userID); err != nil {
		return nil, err
	}

	entry := &models.MoodEntry{
		UserID:    userID,
		Timestamp: now,
		Type:      input.Type,
		MoodValue: input.MoodValue,
		Comment:   input.Comment,
		IsShared:  input.IsShared,
		IsUrgent:  input.IsUrgent,
	}
	if err := s.moods.Create(ctx, entry); err != nil {
		return nil, workforce.NewStoreError("create mood entry", err)
	}
	return entry, nil
}

// RiskReport is a user's burnout assessment with the entries it was computed from.
type RiskReport struct {
	UserID     uint64                   `json:"user_id"`
	Assessment workforce.RiskAssessment `json:"assessment"`
	Entries    []models.MoodEntry       `json:"entries"`
}

// Risk assesses a user's burnout risk. Users may view their own; anyone else needs manage_team
// and never sees the comment of an entry that was not shared.
func (s *WellbeingService) Risk(ctx context.Context, actorID, userID uint64, now time.Time) (*RiskReport, error) {
	self := actorID == userID
	if !self {
		_, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityManageTeam)
		if err != nil {
			return nil, err
		}
		subject, _, err := s.perms.Actor(ctx, userID)
		if err != nil {
			return nil, err
		}
		if subject.OrganizationID != org.ID {
			return nil, ErrUserNotFound
		}
	}

	entries, err := s.moods.ListByUserSince(ctx, userID, now.Add(-workforce.RiskWindow))
	if err != nil {
		return nil, workforce.NewStoreError("list mood entries", err)
	}

	report := &RiskReport{
		UserID:     userID,
		Assessment: workforce.EstimateRisk(entries, now),
		Entries:    entries,
	}
	if !self {
		report.Entries = redactUnshared(entries)
	}
	return report, nil
}

func redactUnshared(entries []models.MoodEntry) []models.MoodEntry {
	out := make([]models.MoodEntry, len(entries))
	for i, e := range entries {
		if !e.IsShared {
			e.Comment = nil
		}
		out[i] = e
	}
	return out
}

// TeamRiskRow is one user's line in the team overview.
type TeamRiskRow struct {
	UserID     uint64                   `json:"user_id"`
	Username   string                   `json:"username"`
	FullName   string                   `json:"full_name"`
	Assessment workforce.RiskAssessment `json:"assessment"`
}

// TeamRisk assesses every user of the actor's organization. It requires view_analytics.
func (s *WellbeingService) TeamRisk(ctx context.Context, actorID uint64, now time.Time) ([]TeamRiskRow, error) {
	_, org, err := s.perms.Authorize(ctx, actorID, workforce.CapabilityViewAnalytics)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, workforce.NewStoreError("list users", err)
	}
	ids := make([]uint64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	entries, err := s.moods.ListByUsersSince(ctx, ids, now.Add(-workforce.RiskWindow))
	if err != nil {
		return nil, workforce.NewStoreError("list mood entries", err)
	}
	byUser := make(map[uint64][]models.MoodEntry, len(users))
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}
	assessments := workforce.EstimateTeamRisk(byUser, now)

	rows := make([]TeamRiskRow, 0, len(users))
	for _, u := range users {
		assessment, ok := assessments[u.ID]
		if !ok {
			assessment = workforce.EstimateRisk(nil, now)
		}
		rows = append(rows, TeamRiskRow{
			UserID:     u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			Assessment: assessment,
		})
	}
	return rows, nil
}
