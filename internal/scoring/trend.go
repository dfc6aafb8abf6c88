// ABOUTME: Trend direction of today's value against a rolling baseline.
// ABOUTME: Direction is polarity-aware: up always means improving.
package scoring

// Direction is the polarity-aware movement of a metric.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

const (
	trendUpperBand = 1.05
	trendLowerBand = 0.95
)

// Trend labels.
const (
	TrendNoDataLabel    = "Trend: no data"
	TrendImprovingLabel = "Trend: improving"
	TrendWorseningLabel = "Trend: worsening"
	TrendStableLabel    = "Trend: stable"
)

// Trend is today's direction relative to the baseline.
type Trend struct {
	Direction Direction `json:"direction"`
	Label     string    `json:"label"`
}

// CalculateTrend compares today with baseline. Values within 5% of the
// baseline (bounds included) are stable. A missing input or a zero baseline
// yields a stable no-data trend.
func CalculateTrend(today, baseline *float64, higherIsBetter bool) Trend {
	if today == nil || baseline == nil || *baseline == 0 {
		return Trend{Direction: DirectionStable, Label: TrendNoDataLabel}
	}

	ratio := *today / *baseline
	switch {
	case ratio > trendUpperBand:
		if higherIsBetter {
			return improving()
		}
		return worsening()
	case ratio < trendLowerBand:
		if higherIsBetter {
			return worsening()
		}
		return improving()
	}
	return Trend{Direction: DirectionStable, Label: TrendStableLabel}
}

func improving() Trend {
	return Trend{Direction: DirectionUp, Label: TrendImprovingLabel}
}

func worsening() Trend {
	return Trend{Direction: DirectionDown, Label: TrendWorseningLabel}
}
