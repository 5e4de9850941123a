package workforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/workforce-api/internal/models"
)

var riskNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// moods builds entries one hour apart, most recent first.
func moods(values ...int) []models.MoodEntry {
	entries := make([]models.MoodEntry, len(values))
	for i, v := range values {
		entries[i] = models.MoodEntry{
			ID:        uint64(len(values) - i),
			UserID:    1,
			Timestamp: riskNow.Add(-time.Duration(i+1) * time.Hour),
			Type:      models.MoodTypePreShift,
			MoodValue: v,
		}
	}
	return entries
}

func TestEstimateRisk_InsufficientData(t *testing.T) {
	for _, entries := range [][]models.MoodEntry{nil, moods(1), moods(1, 1)} {
		got := EstimateRisk(entries, riskNow)
		assert.Equal(t, RiskLow, got.Level)
		assert.Equal(t, ReasonInsufficientData, got.Reason)
	}
}

func TestEstimateRisk_SustainedLowMoodIsHigh(t *testing.T) {
	got := EstimateRisk(moods(2, 1, 2, 3), riskNow)

	assert.Equal(t, RiskHigh, got.Level)
	assert.Equal(t, ReasonSustainedLowMood, got.Reason)
	assert.Equal(t, 4, got.SampleSize)
	assert.InDelta(t, 2.0, got.AverageMood, 0.0001)
}

func TestEstimateRisk_BrokenStreakFallsBackToAverage(t *testing.T) {
	got := EstimateRisk(moods(2, 3, 2, 3), riskNow)

	assert.Equal(t, RiskMedium, got.Level)
	assert.Equal(t, ReasonLowerTrend, got.Reason)
}

func TestEstimateRisk_StreakWithHighAverageIsNotHigh(t *testing.T) {
	got := EstimateRisk(moods(2, 2, 2, 4), riskNow)

	assert.Equal(t, RiskMedium, got.Level)
	assert.InDelta(t, 2.5, got.AverageMood, 0.0001)
}

func TestEstimateRisk_NoConcerns(t *testing.T) {
	got := EstimateRisk(moods(4, 3, 5), riskNow)

	assert.Equal(t, RiskLow, got.Level)
	assert.Equal(t, ReasonNoConcerns, got.Reason)
}

func TestEstimateRisk_IgnoresEntriesOutsideWindow(t *testing.T) {
	entries := moods(1, 1)
	entries = append(entries, models.MoodEntry{ID: 9, UserID: 1, Timestamp: riskNow.Add(-RiskWindow), MoodValue: 1})

	got := EstimateRisk(entries, riskNow)
	assert.Equal(t, RiskLow, got.Level)
	assert.Equal(t, ReasonInsufficientData, got.Reason)
	assert.Equal(t, 2, got.SampleSize)
}

func TestEstimateRisk_InputOrderDoesNotMatter(t *testing.T) {
	entries := moods(1, 2, 2, 5)
	reversed := []models.MoodEntry{entries[3], entries[2], entries[1], entries[0]}

	assert.Equal(t, EstimateRisk(entries, riskNow), EstimateRisk(reversed, riskNow))
}

func TestEstimateTeamRisk(t *testing.T) {
	got := EstimateTeamRisk(map[uint64][]models.MoodEntry{
		1: moods(1, 1, 1),
		2: moods(5, 5, 5),
	}, riskNow)

	assert.Equal(t, RiskHigh, got[1].Level)
	assert.Equal(t, RiskLow, got[2].Level)
}
