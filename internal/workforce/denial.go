package workforce

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workforce-api/internal/models"
)

type DenialReason string

const (
	DenialAlreadyActive    DenialReason = "ALREADY_ACTIVE"
	DenialTooEarly         DenialReason = "TOO_EARLY"
	DenialShiftExpired     DenialReason = "SHIFT_EXPIRED"
	DenialNotActive        DenialReason = "NOT_ACTIVE"
	DenialPermissionDenied DenialReason = "PERMISSION_DENIED"
	DenialNotAssignee      DenialReason = "NOT_ASSIGNEE"
)

// Denial is an expected rejection of an action. It satisfies error so it travels the
// usual return path, but callers branch on it rather than treating it as a failure.
type Denial struct {
	Reason             DenialReason `json:"reason"`
	Message            string       `json:"message"`
	MinutesUntilWindow int          `json:"minutes_until_window,omitempty"`
	Capability         Capability   `json:"capability,omitempty"`
}

func (d *Denial) Error() string {
	return d.Message
}

// AsDenial extracts a Denial from err.
func AsDenial(err error) (*Denial, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// HasDenialReason reports whether err is a Denial with the given reason.
func HasDenialReason(err error, reason DenialReason) bool {
	d, ok := AsDenial(err)
	return ok && d.Reason == reason
}

func AlreadyActive() *Denial {
	return &Denial{Reason: DenialAlreadyActive, Message: "Already clocked in for this shift"}
}

func TooEarly(minutesUntilWindow int) *Denial {
	return &Denial{
		Reason:             DenialTooEarly,
		Message:            fmt.Sprintf("Too early to clock in; the window opens in %d minutes", minutesUntilWindow),
		MinutesUntilWindow: minutesUntilWindow,
	}
}

func ShiftExpired() *Denial {
	return &Denial{Reason: DenialShiftExpired, Message: "Shift has ended"}
}

func NotActive(status models.ClockStatus) *Denial {
	return &Denial{Reason: DenialNotActive, Message: fmt.Sprintf("Clock entry is not active (status %s)", status)}
}

func PermissionDenied(capability Capability) *Denial {
	return &Denial{
		Reason:     DenialPermissionDenied,
		Message:    fmt.Sprintf("Your role does not allow %s", capability),
		Capability: capability,
	}
}

// MostSeniorOnly denies an action reserved for hierarchy level 0.
func MostSeniorOnly(action string) *Denial {
	return &Denial{Reason: DenialPermissionDenied, Message: fmt.Sprintf("Only the most senior level can %s", action)}
}

func NotAssignee() *Denial {
	return &Denial{Reason: DenialNotAssignee, Message: "Only the shift assignee can act on this shift"}
}
