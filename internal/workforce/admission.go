package workforce

import (
	"math"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

// ClockInWindowOpensAt returns the earliest instant a clock-in for shift is admitted.
func ClockInWindowOpensAt(shift models.Shift) time.Time {
	return shift.StartAt.Add(-time.Duration(shift.AllowedEarlyMinutes) * time.Minute)
}

// LateThreshold returns the instant after which a non-strict clock-in is tagged LATE.
func LateThreshold(shift models.Shift) time.Time {
	return shift.StartAt.Add(time.Duration(shift.AllowedLateMinutes) * time.Minute)
}

// EvaluateClockIn decides whether a clock-in at now is admitted and with which status.
// hasOpenEntry reports whether the (shift, user) pair already has an ACTIVE or LATE entry.
//
// The window lower bound is inclusive. In strict mode nothing is admitted after the shift
// ends; otherwise a clock-in past the late tolerance is admitted as LATE.
func EvaluateClockIn(shift models.Shift, settings models.OrganizationSettings, hasOpenEntry bool, now time.Time) (models.ClockStatus, *Denial) {
	if hasOpenEntry {
		return "", AlreadyActive()
	}

	opensAt := ClockInWindowOpensAt(shift)
	if now.Before(opensAt) {
		return "", TooEarly(int(math.Ceil(opensAt.Sub(now).Minutes())))
	}

	if settings.StrictMode {
		if now.After(shift.EndAt) {
			return "", ShiftExpired()
		}
		return models.ClockStatusActive, nil
	}

	if now.After(LateThreshold(shift)) {
		return models.ClockStatusLate, nil
	}
	return models.ClockStatusActive, nil
}

// EvaluateClockOut admits a clock-out only for ACTIVE or LATE entries.
func EvaluateClockOut(entry models.ClockEntry) *Denial {
	if !entry.Status.IsOpen() {
		return NotActive(entry.Status)
	}
	return nil
}
