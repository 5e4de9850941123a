package workforce

import (
	"sort"
	"time"

	"github.com/yukikurage/workforce-api/internal/models"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

const (
	// RiskWindow is the trailing period of mood entries considered.
	RiskWindow = 7 * 24 * time.Hour

	minRiskSample     = 3
	lowMoodCeiling    = 2
	highRiskAverage   = 2.5
	mediumRiskAverage = 3.0
)

const (
	ReasonInsufficientData = "insufficient data"
	ReasonSustainedLowMood = "sustained low mood detected"
	ReasonLowerTrend       = "mood trend lower than average"
	ReasonNoConcerns       = "no immediate concerns"
)

// RiskAssessment is the burnout classification of one user.
type RiskAssessment struct {
	Level       RiskLevel `json:"level"`
	Reason      string    `json:"reason"`
	SampleSize  int       `json:"sample_size"`
	AverageMood float64   `json:"average_mood"`
}

// EstimateRisk classifies burnout risk from the mood entries of the trailing week.
//
// Fewer than three entries is never classified above LOW. A streak of three most recent
// entries at or below 2 with a weekly average under 2.5 is HIGH and takes precedence over
// the average-only MEDIUM rule.
func EstimateRisk(entries []models.MoodEntry, now time.Time) RiskAssessment {
	cutoff := now.Add(-RiskWindow)
	recent := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.After(cutoff) {
			recent = append(recent, e)
		}
	}

	if len(recent) < minRiskSample {
		return RiskAssessment{Level: RiskLow, Reason: ReasonInsufficientData, SampleSize: len(recent)}
	}

	sum := 0
	for _, e := range recent {
		sum += e.MoodValue
	}
	avg := float64(sum) / float64(len(recent))

	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Timestamp.Equal(recent[j].Timestamp) {
			return recent[i].Timestamp.After(recent[j].Timestamp)
		}
		return recent[i].ID > recent[j].ID
	})
	streak := true
	for _, e := range recent[:minRiskSample] {
		if e.MoodValue > lowMoodCeiling {
			streak = false
			break
		}
	}

	assessment := RiskAssessment{SampleSize: len(recent), AverageMood: avg}
	switch {
	case streak && avg < highRiskAverage:
		assessment.Level, assessment.Reason = RiskHigh, ReasonSustainedLowMood
	case avg < mediumRiskAverage:
		assessment.Level, assessment.Reason = RiskMedium, ReasonLowerTrend
	default:
		assessment.Level, assessment.Reason = RiskLow, ReasonNoConcerns
	}
	return assessment
}

// EstimateTeamRisk runs EstimateRisk for every user in entriesByUser.
func EstimateTeamRisk(entriesByUser map[uint64][]models.MoodEntry, now time.Time) map[uint64]RiskAssessment {
	out := make(map[uint64]RiskAssessment, len(entriesByUser))
	for userID, entries := range entriesByUser {
		out[userID] = EstimateRisk(entries, now)
	}
	return out
}
