// ABOUTME: Tests for dashboard assembly.
// ABOUTME: Covers empty windows, ranking, score fallback, and averages.
package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)

// window builds n records, newest first, with steady values.
func window(n int) []*models.DailyRecord {
	user := uuid.New()
	records := make([]*models.DailyRecord, 0, n)
	for i := 0; i < n; i++ {
		r := models.NewDailyRecord(user, now.AddDate(0, 0, -i))
		r.SleepScore = models.Float(80)
		r.SleepHours = models.Float(7.5)
		r.RestingHR = models.Float(58)
		r.HRV = models.Float(50)
		r.Steps = models.Float(9000)
		r.StressLevel = models.Float(30)
		r.MVPAMinutes = models.Float(40)
		r.HealthScore = models.Float(75)
		r.VO2Max = models.Float(44.2)
		records = append(records, r)
	}
	return records
}

func TestBuildEmpty(t *testing.T) {
	d := Build(nil, now)
	assert.True(t, d.Empty)
	assert.Empty(t, d.Metrics)
	assert.Empty(t, d.Readouts)
	assert.Equal(t, now, d.GeneratedAt)
}

func TestBuildRanksWorstFirst(t *testing.T) {
	records := window(10)
	records[0].Steps = models.Float(2000) // 8000 short of excellent

	d := Build(records, now)
	require.False(t, d.Empty)
	require.Len(t, d.Metrics, len(scoring.Definitions))

	assert.Equal(t, "2025-06-30", d.Date)
	assert.Equal(t, models.MetricSteps, d.Metrics[0].Key)
	assert.Equal(t, scoring.TierPoor, d.Metrics[0].Evaluation.Tier)
	assert.Equal(t, scoring.DirectionDown, d.Metrics[0].Trend.Direction)
	assert.Equal(t, "2,000", d.Metrics[0].Display)
}

func TestBuildAbsentMetricRanksFirstAsFair(t *testing.T) {
	records := window(5)
	records[0].HRV = nil

	d := Build(records, now)
	first := d.Metrics[0]
	assert.Equal(t, models.MetricHRV, first.Key)
	assert.Equal(t, scoring.TierFair, first.Evaluation.Tier)
	assert.Equal(t, scoring.NoDataLabel, first.QualityLabel)
	assert.Equal(t, scoring.Placeholder, first.Display)
	assert.Equal(t, scoring.DirectionStable, first.Trend.Direction)
	require.NotNil(t, first.Average30)
	assert.InDelta(t, 50, *first.Average30, 1e-9)
}

func TestBuildScoreCardStored(t *testing.T) {
	records := window(30)
	records[0].HealthScore = models.Float(90)

	d := Build(records, now)
	require.NotNil(t, d.Score.Today)
	assert.Equal(t, ScoreStored, d.Score.Source)
	assert.Equal(t, 90.0, *d.Score.Today)

	require.NotNil(t, d.Score.Average7)
	assert.InDelta(t, (90+6*75)/7.0, *d.Score.Average7, 1e-9)
	assert.Equal(t, scoring.PositionAbove, d.Score.Comparison.Position)
	assert.Equal(t, "Good", d.Score.Label)
}

func TestBuildScoreCardBandsRoundedAverage(t *testing.T) {
	records := window(7)
	for _, r := range records {
		r.HealthScore = models.Float(84.6)
	}

	d := Build(records, now)
	require.NotNil(t, d.Score.Average7)
	assert.Equal(t, "85", scoring.FormatNumber(d.Score.Average7, 0))
	assert.Equal(t, scoring.TierExcellent, d.Score.Tier)
	assert.Equal(t, "Excellent", d.Score.Label)
}

func TestBuildScoreCardComputedWhenAbsent(t *testing.T) {
	records := window(3)
	for _, r := range records {
		r.HealthScore = nil
	}

	d := Build(records, now)
	require.NotNil(t, d.Score.Today)
	assert.Equal(t, ScoreComputed, d.Score.Source)
	assert.Equal(t, float64(scoring.HealthScore(records[0])), *d.Score.Today)
	assert.Nil(t, d.Score.Average7)
	assert.Equal(t, scoring.NoDataLabel, d.Score.Label)
	assert.Equal(t, scoring.PositionUnknown, d.Score.Comparison.Position)
}

func TestBuildReadouts(t *testing.T) {
	d := Build(window(4), now)
	require.Len(t, d.Readouts, len(scoring.Readouts))

	vo2 := d.Readouts[0]
	assert.Equal(t, models.MetricVO2Max, vo2.Key)
	assert.Equal(t, "44.2", vo2.Display)

	battery := d.Readouts[2]
	assert.Nil(t, battery.Value)
	assert.Equal(t, scoring.Placeholder, battery.Display)
	assert.Equal(t, scoring.Placeholder, battery.Average30Fmt)
}

func TestBuildDoesNotMutateRecords(t *testing.T) {
	records := window(2)
	records[0].HealthScore = nil
	Build(records, now)
	assert.Nil(t, records[0].HealthScore)
}
