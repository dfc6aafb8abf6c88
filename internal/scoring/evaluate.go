// ABOUTME: Threshold-based quality tiers for a metric's current value.
// ABOUTME: Includes the per-metric label overrides shown on cards.
package scoring

import "github.com/harperreed/vitral/internal/models"

// Tier is a quality bucket, best to worst.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// NoDataLabel is shown whenever a value is absent.
const NoDataLabel = "No data"

// Evaluation is the quality judgement for one value.
type Evaluation struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

var (
	higherLabels = map[Tier]string{
		TierExcellent: "Excellent",
		TierGood:      "Good",
		TierFair:      "Fair",
		TierPoor:      "Below target",
	}
	lowerLabels = map[Tier]string{
		TierExcellent: "Excellent",
		TierGood:      "Good",
		TierFair:      "Moderate",
		TierPoor:      "High",
	}
)

// labelOverrides replaces the generic tier label for specific metrics.
var labelOverrides = map[models.MetricKey]map[Tier]string{
	models.MetricRestingHR: {
		TierExcellent: "Optimal",
		TierGood:      "In your range",
		TierFair:      "Elevated",
		TierPoor:      "High",
	},
	models.MetricHRV: {
		TierExcellent: "Excellent recovery",
		TierGood:      "Good recovery",
		TierFair:      "Average recovery",
		TierPoor:      "Low recovery",
	},
	models.MetricStressLevel: {
		TierExcellent: "Very low",
		TierGood:      "Low",
		TierFair:      "Moderate",
		TierPoor:      "High",
	},
	models.MetricSleepHours: {
		TierExcellent: "Optimal",
		TierGood:      "Good",
		TierFair:      "Insufficient",
		TierPoor:      "Too little",
	},
}

// Evaluate classifies value against def's thresholds. An absent value is
// rated fair, never poor.
func Evaluate(value *float64, def Definition) Evaluation {
	if value == nil {
		return Evaluation{Tier: TierFair, Label: NoDataLabel}
	}

	tier := classify(*value, def)
	if def.HigherIsBetter {
		return Evaluation{Tier: tier, Label: higherLabels[tier]}
	}
	return Evaluation{Tier: tier, Label: lowerLabels[tier]}
}

func classify(v float64, def Definition) Tier {
	excellent, good, fair := def.Thresholds[0], def.Thresholds[1], def.Thresholds[2]
	if def.HigherIsBetter {
		switch {
		case v >= excellent:
			return TierExcellent
		case v >= good:
			return TierGood
		case v >= fair:
			return TierFair
		}
		return TierPoor
	}
	switch {
	case v <= excellent:
		return TierExcellent
	case v <= good:
		return TierGood
	case v <= fair:
		return TierFair
	}
	return TierPoor
}

// Label returns the card phrase for value: the metric-specific override for
// its tier when one exists, the generic tier label otherwise.
func Label(value *float64, def Definition) string {
	if value == nil {
		return NoDataLabel
	}
	eval := Evaluate(value, def)
	if overrides, ok := labelOverrides[def.Key]; ok {
		if label, ok := overrides[eval.Tier]; ok {
			return label
		}
	}
	return eval.Label
}
