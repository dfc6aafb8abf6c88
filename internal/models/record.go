// ABOUTME: DailyRecord model and MetricKey enum for wearable data.
// ABOUTME: One record per user per calendar day; every observation is optional.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for DailyRecord.Date.
const DateLayout = "2006-01-02"

// MetricKey identifies a numeric observation on a DailyRecord.
type MetricKey string

const (
	// Sleep
	MetricSleepHours MetricKey = "sleep_hours"
	MetricSleepScore MetricKey = "sleep_score"

	// Cardio
	MetricRestingHR MetricKey = "resting_hr"
	MetricHRV       MetricKey = "hrv"
	MetricVO2Max    MetricKey = "vo2max"

	// Activity
	MetricSteps        MetricKey = "steps"
	MetricMVPAMinutes  MetricKey = "mvpa_minutes"
	MetricTrainingLoad MetricKey = "training_load"

	// Recovery
	MetricStressLevel MetricKey = "stress_level"
	MetricBodyBattery MetricKey = "body_battery"
	MetricHealthScore MetricKey = "health_score"
)

// AllMetricKeys lists every numeric field in schema order.
var AllMetricKeys = []MetricKey{
	MetricSleepHours, MetricRestingHR, MetricSteps, MetricStressLevel,
	MetricSleepScore, MetricHRV, MetricVO2Max, MetricMVPAMinutes,
	MetricTrainingLoad, MetricHealthScore, MetricBodyBattery,
}

// IsValidMetricKey checks if a string names a known metric.
func IsValidMetricKey(s string) bool {
	for _, k := range AllMetricKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

// DailyRecord is one day of wearable-derived metrics for a single user.
// A nil field means the device did not report it that day.
type DailyRecord struct {
	ID           int64      `json:"id" yaml:"id"`
	UserID       uuid.UUID  `json:"user_id" yaml:"user_id"`
	Date         string     `json:"date" yaml:"date"`
	SleepHours   *float64   `json:"sleep_hours" yaml:"sleep_hours,omitempty"`
	RestingHR    *float64   `json:"resting_hr" yaml:"resting_hr,omitempty"`
	Steps        *float64   `json:"steps" yaml:"steps,omitempty"`
	StressLevel  *float64   `json:"stress_level" yaml:"stress_level,omitempty"`
	SleepScore   *float64   `json:"sleep_score" yaml:"sleep_score,omitempty"`
	HRV          *float64   `json:"hrv" yaml:"hrv,omitempty"`
	VO2Max       *float64   `json:"vo2max" yaml:"vo2max,omitempty"`
	MVPAMinutes  *float64   `json:"mvpa_minutes" yaml:"mvpa_minutes,omitempty"`
	TrainingLoad *float64   `json:"training_load" yaml:"training_load,omitempty"`
	HealthScore  *float64   `json:"health_score" yaml:"health_score,omitempty"`
	BodyBattery  *float64   `json:"body_battery" yaml:"body_battery,omitempty"`
	CreatedAt    *time.Time `json:"created_at" yaml:"created_at,omitempty"`
}

// NewDailyRecord creates an empty record for the given user and day.
func NewDailyRecord(userID uuid.UUID, day time.Time) *DailyRecord {
	now := time.Now()
	return &DailyRecord{
		UserID:    userID,
		Date:      day.Format(DateLayout),
		CreatedAt: &now,
	}
}

// Day parses Date as a calendar day in UTC.
func (r *DailyRecord) Day() (time.Time, error) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", r.Date, err)
	}
	return t, nil
}

// Value returns the observation selected by key, or nil when absent or unknown.
func (r *DailyRecord) Value(key MetricKey) *float64 {
	if r == nil {
		return nil
	}
	switch key {
	case MetricSleepHours:
		return r.SleepHours
	case MetricSleepScore:
		return r.SleepScore
	case MetricRestingHR:
		return r.RestingHR
	case MetricHRV:
		return r.HRV
	case MetricVO2Max:
		return r.VO2Max
	case MetricSteps:
		return r.Steps
	case MetricMVPAMinutes:
		return r.MVPAMinutes
	case MetricTrainingLoad:
		return r.TrainingLoad
	case MetricStressLevel:
		return r.StressLevel
	case MetricBodyBattery:
		return r.BodyBattery
	case MetricHealthScore:
		return r.HealthScore
	}
	return nil
}

// SetValue stores v on the field selected by key.
func (r *DailyRecord) SetValue(key MetricKey, v *float64) error {
	switch key {
	case MetricSleepHours:
		r.SleepHours = v
	case MetricSleepScore:
		r.SleepScore = v
	case MetricRestingHR:
		r.RestingHR = v
	case MetricHRV:
		r.HRV = v
	case MetricVO2Max:
		r.VO2Max = v
	case MetricSteps:
		r.Steps = v
	case MetricMVPAMinutes:
		r.MVPAMinutes = v
	case MetricTrainingLoad:
		r.TrainingLoad = v
	case MetricStressLevel:
		r.StressLevel = v
	case MetricBodyBattery:
		r.BodyBattery = v
	case MetricHealthScore:
		r.HealthScore = v
	default:
		return fmt.Errorf("unknown metric: %s", key)
	}
	return nil
}

// Float returns a pointer to v, for building optional observations.
func Float(v float64) *float64 {
	return &v
}
