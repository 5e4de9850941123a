package workforce

import (
	"sort"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

const (
	DaysPerWeek = 7

	// OverAllocationThreshold is the daily load above which a user is overallocated.
	OverAllocationThreshold = 8 * time.Hour
)

// ShiftRef is a shift contributing to a user/day cell.
type ShiftRef struct {
	ShiftID   uint64    `json:"shift_id"`
	ProjectID uint64    `json:"project_id"`
	PhaseID   uint64    `json:"phase_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Hours     float64   `json:"hours"`
}

// UserLoad is one user's load for a week.
type UserLoad struct {
	UserID            uint64                  `json:"user_id"`
	DayTotals         [DaysPerWeek]float64    `json:"day_totals"`
	WeekTotal         float64                 `json:"week_total"`
	OverAllocatedDays []int                   `json:"over_allocated_days"`
	Cells             [DaysPerWeek][]ShiftRef `json:"cells"`

	// Cost is WeekTotal priced at the user's hourly rate; nil when the user has no rate.
	Cost *float64 `json:"cost,omitempty"`

	dayDurations [DaysPerWeek]time.Duration
}

// IsOverAllocated reports whether day (0 = Monday) exceeds the daily threshold.
func (u UserLoad) IsOverAllocated(day int) bool {
	if day < 0 || day >= DaysPerWeek {
		return false
	}
	return u.dayDurations[day] > OverAllocationThreshold
}

// WeeklyLoad is the allocation projection for a week.
type WeeklyLoad struct {
	WeekStart time.Time              `json:"week_start"`
	Days      [DaysPerWeek]time.Time `json:"days"`
	Users     []UserLoad             `json:"users"`
}

// ForUser returns the load of the given user.
func (w WeeklyLoad) ForUser(userID uint64) (UserLoad, bool) {
	for _, u := range w.Users {
		if u.UserID == userID {
			return u, true
		}
	}
	return UserLoad{}, false
}

// StartOfWeek returns Monday 00:00 in loc of the week containing t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -offset)
}

// BuildWeeklyLoad computes per-user daily and weekly shift hours for the week starting
// at weekStart, which must be a Monday 00:00 in the reference timezone.
//
// Day i covers [weekStart+24h*i, weekStart+24h*(i+1)). A shift counts in full toward the
// day containing its start; shifts crossing midnight are not split. Users appear in input
// order; the result does not depend on the order of shifts.
func BuildWeeklyLoad(users []models.User, shifts []models.Shift, weekStart time.Time) (WeeklyLoad, error) {
	if weekStart.Weekday() != time.Monday ||
		weekStart.Hour() != 0 || weekStart.Minute() != 0 || weekStart.Second() != 0 || weekStart.Nanosecond() != 0 {
		return WeeklyLoad{}, NewConfigurationError("week_start", "%s is not a Monday 00:00 boundary", weekStart.Format(time.RFC3339))
	}

	load := WeeklyLoad{WeekStart: weekStart, Users: make([]UserLoad, 0, len(users))}
	for i := 0; i < DaysPerWeek; i++ {
		load.Days[i] = weekStart.Add(time.Duration(i) * 24 * time.Hour)
	}
	weekEnd := weekStart.Add(DaysPerWeek * 24 * time.Hour)

	sorted := make([]models.Shift, len(shifts))
	copy(sorted, shifts)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].StartAt.Equal(sorted[j].StartAt) {
			return sorted[i].StartAt.Before(sorted[j].StartAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	index := make(map[uint64]int, len(users))
	rates := make(map[uint64]*float64, len(users))
	for _, u := range users {
		if _, seen := index[u.ID]; seen {
			continue
		}
		index[u.ID] = len(load.Users)
		rates[u.ID] = u.HourlyRate
		load.Users = append(load.Users, UserLoad{UserID: u.ID, OverAllocatedDays: []int{}})
	}

	for _, s := range sorted {
		pos, ok := index[s.AssigneeID]
		if !ok {
			continue
		}
		if s.StartAt.Before(weekStart) || !s.StartAt.Before(weekEnd) {
			continue
		}
		if !s.StartAt.Before(s.EndAt) {
			return WeeklyLoad{}, NewConfigurationError("shift", "shift %d has a non-positive duration", s.ID)
		}
		day := int(s.StartAt.Sub(weekStart) / (24 * time.Hour))
		u := &load.Users[pos]
		u.dayDurations[day] += s.Duration()
		u.Cells[day] = append(u.Cells[day], ShiftRef{
			ShiftID:   s.ID,
			ProjectID: s.ProjectID,
			PhaseID:   s.PhaseID,
			StartAt:   s.StartAt,
			EndAt:     s.EndAt,
			Hours:     s.Duration().Hours(),
		})
	}

	for i := range load.Users {
		u := &load.Users[i]
		var week time.Duration
		for day := 0; day < DaysPerWeek; day++ {
			u.DayTotals[day] = u.dayDurations[day].Hours()
			week += u.dayDurations[day]
			if u.dayDurations[day] > OverAllocationThreshold {
				u.OverAllocatedDays = append(u.OverAllocatedDays, day)
			}
			if u.Cells[day] == nil {
				u.Cells[day] = []ShiftRef{}
			}
		}
		u.WeekTotal = week.Hours()
		if rate := rates[u.UserID]; rate != nil {
			cost := u.WeekTotal * *rate
			u.Cost = &cost
		}
	}

	return load, nil
}
