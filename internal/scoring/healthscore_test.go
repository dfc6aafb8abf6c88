// ABOUTME: Tests for the composite health score and its banding.
// ABOUTME: Covers saturation, fallbacks, clamping, and NaN handling.
package scoring

import (
	"math"
	"testing"

	"github.com/harperreed/vitral/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHealthScoreSaturates(t *testing.T) {
	r := &models.DailyRecord{
		SleepHours:  models.Float(8),
		RestingHR:   models.Float(50),
		StressLevel: models.Float(0),
		Steps:       models.Float(10000),
		BodyBattery: models.Float(100),
	}
	assert.Equal(t, 100, HealthScore(r))
}

func TestHealthScoreAllAbsentUsesFallbacks(t *testing.T) {
	assert.Equal(t, 32, HealthScore(&models.DailyRecord{}))
	assert.Equal(t, 32, HealthScore(nil))
}

func TestHealthScoreClampsSubScores(t *testing.T) {
	r := &models.DailyRecord{
		SleepHours:  models.Float(12), // capped at 100
		RestingHR:   models.Float(40), // would be 120, capped
		StressLevel: models.Float(0),
		Steps:       models.Float(30000), // capped
		BodyBattery: models.Float(100),
	}
	assert.Equal(t, 100, HealthScore(r))

	r = &models.DailyRecord{
		SleepHours:  models.Float(0),
		RestingHR:   models.Float(120), // would be negative, floored
		StressLevel: models.Float(100),
		Steps:       models.Float(0),
		BodyBattery: models.Float(0),
	}
	assert.Equal(t, 0, HealthScore(r))
}

func TestHealthScoreWeighting(t *testing.T) {
	r := &models.DailyRecord{
		SleepHours:  models.Float(6),    // 75 * 0.25 = 18.75
		RestingHR:   models.Float(60),   // 80 * 0.20 = 16
		StressLevel: models.Float(30),   // 70 * 0.20 = 14
		Steps:       models.Float(5000), // 50 * 0.15 = 7.5
		BodyBattery: models.Float(60),   // 60 * 0.20 = 12
	}
	// 68.25 rounds to 68
	assert.Equal(t, 68, HealthScore(r))
}

func TestHealthScoreNaNMapsToZero(t *testing.T) {
	r := &models.DailyRecord{SleepHours: models.Float(math.NaN())}
	assert.Equal(t, 0, HealthScore(r))
}

func TestScoreTier(t *testing.T) {
	assert.Equal(t, TierExcellent, ScoreTier(85))
	assert.Equal(t, TierGood, ScoreTier(84.9))
	assert.Equal(t, TierGood, ScoreTier(70))
	assert.Equal(t, TierFair, ScoreTier(50))
	assert.Equal(t, TierPoor, ScoreTier(49))
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, NoDataLabel, ScoreLabel(nil))
	assert.Equal(t, "Needs attention", ScoreLabel(models.Float(20)))
	assert.Equal(t, "Excellent", ScoreLabel(models.Float(91)))
}

func TestCompareToBaseline(t *testing.T) {
	f := models.Float
	assert.Equal(t, PositionUnknown, CompareToBaseline(nil, f(70)).Position)
	assert.Equal(t, PositionUnknown, CompareToBaseline(f(70), nil).Position)
	assert.Equal(t, PositionAbove, CompareToBaseline(f(80), f(70)).Position)
	assert.Equal(t, PositionBelow, CompareToBaseline(f(60), f(70)).Position)
	assert.Equal(t, PositionSimilar, CompareToBaseline(f(73), f(70)).Position)
	assert.Equal(t, PositionSimilar, CompareToBaseline(f(67), f(70)).Position)
}
