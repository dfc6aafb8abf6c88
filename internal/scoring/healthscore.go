// ABOUTME: Composite health score and score banding.
// ABOUTME: Weighted sub-scores with fixed fallbacks for missing fields.
package scoring

import (
	"math"

	"github.com/harperreed/vitral/internal/models"
)

// Fallbacks used by HealthScore when a field is absent.
const (
	FallbackSleepHours  = 0.0
	FallbackRestingHR   = 70.0
	FallbackStressLevel = 50.0
	FallbackSteps       = 0.0
	FallbackBodyBattery = 50.0
)

// Sub-score weights; they sum to 1.
const (
	weightSleep   = 0.25
	weightHeart   = 0.20
	weightStress  = 0.20
	weightSteps   = 0.15
	weightBattery = 0.20
)

const (
	targetSleepHours = 8.0
	targetSteps      = 10000.0
	restingHRFloor   = 50.0
)

// HealthScore computes the composite 0-100 score for one day from raw
// fields. It never returns NaN: an undefined result maps to 0.
func HealthScore(r *models.DailyRecord) int {
	if r == nil {
		r = &models.DailyRecord{}
	}

	sleep := clampScore(or(r.SleepHours, FallbackSleepHours) / targetSleepHours * 100)
	heart := clampScore(100 - (or(r.RestingHR, FallbackRestingHR)-restingHRFloor)*2)
	stress := clampScore(100 - or(r.StressLevel, FallbackStressLevel))
	steps := clampScore(or(r.Steps, FallbackSteps) / targetSteps * 100)
	battery := clampScore(or(r.BodyBattery, FallbackBodyBattery))

	total := sleep*weightSleep +
		heart*weightHeart +
		stress*weightStress +
		steps*weightSteps +
		battery*weightBattery

	if math.IsNaN(total) {
		return 0
	}
	return int(math.Round(clampScore(total)))
}

func or(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// clampScore bounds s to [0,100]; NaN passes through for the caller to catch.
func clampScore(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}

// ScoreTier bands a 0-100 health score.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 85:
		return TierExcellent
	case score >= 70:
		return TierGood
	case score >= 50:
		return TierFair
	}
	return TierPoor
}

var scoreLabels = map[Tier]string{
	TierExcellent: "Excellent",
	TierGood:      "Good",
	TierFair:      "Fair",
	TierPoor:      "Needs attention",
}

// ScoreLabel is the gauge caption for a health score.
func ScoreLabel(score *float64) string {
	if score == nil {
		return NoDataLabel
	}
	return scoreLabels[ScoreTier(*score)]
}

// Position describes today's score against the monthly average.
type Position string

const (
	PositionAbove   Position = "above"
	PositionBelow   Position = "below"
	PositionSimilar Position = "similar"
	PositionUnknown Position = "unknown"
)

// comparisonMargin is the number of points either side of the monthly
// average still counted as similar.
const comparisonMargin = 3

// Comparison is today's health score relative to the 30-day average.
type Comparison struct {
	Position Position `json:"position"`
	Text     string   `json:"text"`
}

// CompareToBaseline positions today's score against the 30-day average.
func CompareToBaseline(today, avg30 *float64) Comparison {
	if today == nil || avg30 == nil {
		return Comparison{Position: PositionUnknown, Text: "Not enough data"}
	}
	diff := *today - *avg30
	switch {
	case diff > comparisonMargin:
		return Comparison{Position: PositionAbove, Text: "Today above your monthly average"}
	case diff < -comparisonMargin:
		return Comparison{Position: PositionBelow, Text: "Today below your monthly average"}
	}
	return Comparison{Position: PositionSimilar, Text: "Close to your monthly average"}
}
