package workforce

import (
	"strings"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

const (
	// MaxShiftDuration is the longest schedulable shift.
	MaxShiftDuration = 12 * time.Hour

	MinSummaryLength              = 10
	MinExceptionDescriptionLength = 5
)

// ValidateShift checks a shift against its project before it is scheduled.
func ValidateShift(shift models.Shift, project models.Project) error {
	if !shift.StartAt.Before(shift.EndAt) {
		return NewConfigurationError("end_at", "shift must end after it starts")
	}
	if shift.Duration() > MaxShiftDuration {
		return NewConfigurationError("end_at", "shift cannot exceed %s", MaxShiftDuration)
	}
	if shift.AllowedEarlyMinutes < 0 {
		return NewConfigurationError("allowed_early_minutes", "must not be negative")
	}
	if shift.AllowedLateMinutes < 0 {
		return NewConfigurationError("allowed_late_minutes", "must not be negative")
	}
	if project.OrganizationID != shift.OrganizationID {
		return NewConfigurationError("project_id", "project %d belongs to another organization", project.ID)
	}
	if _, ok := project.FindPhase(shift.PhaseID); !ok {
		return NewConfigurationError("phase_id", "phase %d is not part of project %d", shift.PhaseID, project.ID)
	}
	if !project.HasMember(shift.AssigneeID) {
		return NewConfigurationError("assignee_id", "user %d is not assigned to project %d", shift.AssigneeID, project.ID)
	}
	return nil
}

// ValidateClockOutDetails checks the optional post-shift report.
func ValidateClockOutDetails(summary *string, moraleScore *int) error {
	if summary != nil && len(strings.TrimSpace(*summary)) < MinSummaryLength {
		return newValidationError("summary", "must be at least %d characters", MinSummaryLength)
	}
	if moraleScore != nil && (*moraleScore < 1 || *moraleScore > 10) {
		return newValidationError("morale_score", "must be between 1 and 10")
	}
	return nil
}

// ValidateRating checks a manager's shift rating.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return newValidationError("rating", "must be between 1 and 5")
	}
	return nil
}

// ValidateMood checks a mood check-in before it is recorded.
func ValidateMood(moodType models.MoodType, value int) error {
	if moodType != models.MoodTypePreShift && moodType != models.MoodTypePostShift {
		return newValidationError("type", "must be PRE_SHIFT or POST_SHIFT")
	}
	if value < 1 || value > 5 {
		return newValidationError("mood_value", "must be between 1 and 5")
	}
	return nil
}

// ValidateExceptionRequest checks the type and description of an exception.
func ValidateExceptionRequest(exceptionType models.ExceptionType, description string) error {
	if !exceptionType.Valid() {
		return newValidationError("type", "unknown exception type %q", exceptionType)
	}
	if len(strings.TrimSpace(description)) < MinExceptionDescriptionLength {
		return newValidationError("description", "must be at least %d characters", MinExceptionDescriptionLength)
	}
	return nil
}
