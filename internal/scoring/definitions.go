// ABOUTME: Static metric definitions: thresholds, polarity, labels, colors.
// ABOUTME: Compiled-in registry keyed by models.MetricKey, in display order.
package scoring

import (
	"fmt"

	"github.com/harperreed/vitral/internal/models"
)

// Color is the card color category a metric renders with.
type Color string

const (
	ColorSleep    Color = "sleep"
	ColorHeart    Color = "heart"
	ColorStress   Color = "stress"
	ColorSteps    Color = "steps"
	ColorActivity Color = "activity"
	ColorTraining Color = "training"
	ColorHRV      Color = "hrv"
	ColorVO2      Color = "vo2"
	ColorBattery  Color = "battery"
)

// Definition describes how a metric is displayed and judged.
// Thresholds are (excellent, good, fair). For HigherIsBetter metrics they
// descend; otherwise they ascend.
type Definition struct {
	Key            models.MetricKey `json:"key"`
	Label          string           `json:"label"`
	Unit           string           `json:"unit,omitempty"`
	UnitSuffix     string           `json:"unit_suffix,omitempty"`
	Color          Color            `json:"color"`
	HigherIsBetter bool             `json:"higher_is_better"`
	Thresholds     [3]float64       `json:"thresholds"`
	IsScore        bool             `json:"is_score,omitempty"`
	Decimals       int              `json:"decimals"`
}

// Excellent returns the strictest threshold.
func (d Definition) Excellent() float64 {
	return d.Thresholds[0]
}

// Validate checks that thresholds run in the direction implied by polarity.
func (d Definition) Validate() error {
	excellent, good, fair := d.Thresholds[0], d.Thresholds[1], d.Thresholds[2]
	if d.HigherIsBetter {
		if !(excellent >= good && good >= fair) {
			return fmt.Errorf("%s: thresholds %v must descend for higher-is-better", d.Key, d.Thresholds)
		}
		return nil
	}
	if !(excellent <= good && good <= fair) {
		return fmt.Errorf("%s: thresholds %v must ascend for lower-is-better", d.Key, d.Thresholds)
	}
	return nil
}

// Definitions is the evaluated metric registry in display order.
// Ranking ties fall back to this order.
var Definitions = []Definition{
	{
		Key:            models.MetricSleepScore,
		Label:          "Sleep score",
		Unit:           "/100",
		Color:          ColorSleep,
		HigherIsBetter: true,
		Thresholds:     [3]float64{85, 70, 50},
		IsScore:        true,
	},
	{
		Key:            models.MetricSleepHours,
		Label:          "Sleep hours",
		UnitSuffix:     "h",
		Color:          ColorSleep,
		HigherIsBetter: true,
		Thresholds:     [3]float64{8, 7, 6},
		Decimals:       1,
	},
	{
		Key:            models.MetricRestingHR,
		Label:          "Resting heart rate",
		UnitSuffix:     "bpm",
		Color:          ColorHeart,
		HigherIsBetter: false,
		Thresholds:     [3]float64{55, 65, 75},
	},
	{
		Key:            models.MetricHRV,
		Label:          "Heart rate variability (HRV)",
		UnitSuffix:     "ms",
		Color:          ColorHRV,
		HigherIsBetter: true,
		Thresholds:     [3]float64{60, 45, 30},
	},
	{
		Key:            models.MetricSteps,
		Label:          "Steps",
		Color:          ColorSteps,
		HigherIsBetter: true,
		Thresholds:     [3]float64{10000, 7500, 5000},
	},
	{
		Key:            models.MetricStressLevel,
		Label:          "Stress",
		Unit:           "/100",
		Color:          ColorStress,
		HigherIsBetter: false,
		Thresholds:     [3]float64{25, 40, 60},
		IsScore:        true,
	},
	{
		Key:            models.MetricMVPAMinutes,
		Label:          "Active minutes",
		UnitSuffix:     "min",
		Color:          ColorActivity,
		HigherIsBetter: true,
		Thresholds:     [3]float64{60, 45, 30},
	},
}

// Readout is a metric shown as a plain value with no quality judgement.
type Readout struct {
	Key        models.MetricKey `json:"key"`
	Label      string           `json:"label"`
	UnitSuffix string           `json:"unit_suffix,omitempty"`
	Color      Color            `json:"color"`
	Decimals   int              `json:"decimals"`
}

// Readouts are the secondary cards.
var Readouts = []Readout{
	{Key: models.MetricVO2Max, Label: "VO2 max", UnitSuffix: "ml/kg/min", Color: ColorVO2, Decimals: 1},
	{Key: models.MetricTrainingLoad, Label: "Training load", Color: ColorTraining},
	{Key: models.MetricBodyBattery, Label: "Body battery", UnitSuffix: "%", Color: ColorBattery},
}

// DefinitionFor looks up the definition for key.
func DefinitionFor(key models.MetricKey) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}
