// ABOUTME: Deviation from the excellent threshold, used to rank metrics.
// ABOUTME: Worst metrics sort first; absent values sort before everything.
package scoring

import (
	"math"
	"sort"

	"github.com/harperreed/vitral/internal/models"
)

// MaxDeviation is the deviation assigned to an absent value. It is strictly
// greater than any deviation a finite value can produce.
var MaxDeviation = math.Inf(1)

// DeviationScore measures how far value falls short of def's excellent
// threshold. Zero means at or beyond excellent.
func DeviationScore(value *float64, def Definition) float64 {
	if value == nil {
		return MaxDeviation
	}
	if def.HigherIsBetter {
		return math.Max(0, def.Excellent()-*value)
	}
	return math.Max(0, *value-def.Excellent())
}

// Ranked pairs a definition with the value and deviation it was ranked by.
type Ranked struct {
	Definition Definition
	Value      *float64
	Deviation  float64
}

// RankByDeviation orders defs by the deviation of record's values, worst
// first. Equal deviations keep the order of defs.
func RankByDeviation(record *models.DailyRecord, defs []Definition) []Ranked {
	ranked := make([]Ranked, 0, len(defs))
	for _, d := range defs {
		v := record.Value(d.Key)
		ranked = append(ranked, Ranked{
			Definition: d,
			Value:      v,
			Deviation:  DeviationScore(v, d),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Deviation > ranked[j].Deviation
	})
	return ranked
}
