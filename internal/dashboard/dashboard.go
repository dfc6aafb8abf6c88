// ABOUTME: Assembles the dashboard view model from a window of daily records.
// ABOUTME: Health score card, ranked metric cards, and secondary readouts.
package dashboard

import (
	"math"
	"time"

	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
)

// ScoreSource says where today's health score came from.
type ScoreSource string

const (
	ScoreStored   ScoreSource = "stored"
	ScoreComputed ScoreSource = "computed"
)

// ScoreCard is the health score gauge.
type ScoreCard struct {
	Average7   *float64           `json:"average_7d"`
	Today      *float64           `json:"today"`
	Average30  *float64           `json:"average_30d"`
	Source     ScoreSource        `json:"source"`
	Label      string             `json:"label"`
	Tier       scoring.Tier       `json:"tier,omitempty"`
	Comparison scoring.Comparison `json:"comparison"`
}

// MetricCard is one evaluated metric.
type MetricCard struct {
	Key          models.MetricKey   `json:"key"`
	Label        string             `json:"label"`
	Color        scoring.Color      `json:"color"`
	Unit         string             `json:"unit,omitempty"`
	UnitSuffix   string             `json:"unit_suffix,omitempty"`
	Value        *float64           `json:"value"`
	Display      string             `json:"display"`
	Evaluation   scoring.Evaluation `json:"evaluation"`
	QualityLabel string             `json:"quality_label"`
	Trend        scoring.Trend      `json:"trend"`
	Average7     *float64           `json:"average_7d"`
	Average30    *float64           `json:"average_30d"`
	Average30Fmt string             `json:"average_30d_display"`
}

// ReadoutCard is a plain value with its monthly average.
type ReadoutCard struct {
	Key          models.MetricKey `json:"key"`
	Label        string           `json:"label"`
	Color        scoring.Color    `json:"color"`
	UnitSuffix   string           `json:"unit_suffix,omitempty"`
	Value        *float64         `json:"value"`
	Display      string           `json:"display"`
	Average30    *float64         `json:"average_30d"`
	Average30Fmt string           `json:"average_30d_display"`
}

// Dashboard is everything the presentation layers render.
type Dashboard struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Empty       bool          `json:"empty"`
	LoadFailed  bool          `json:"load_failed,omitempty"`
	Date        string        `json:"date,omitempty"`
	Days        int           `json:"days"`
	Score       ScoreCard     `json:"score"`
	Metrics     []MetricCard  `json:"metrics"`
	Readouts    []ReadoutCard `json:"readouts"`
}

// Build derives the dashboard from records ordered newest first. The first
// record is "today". It does not modify records.
func Build(records []*models.DailyRecord, now time.Time) *Dashboard {
	d := &Dashboard{
		GeneratedAt: now,
		Days:        len(records),
		Metrics:     []MetricCard{},
		Readouts:    []ReadoutCard{},
	}
	if len(records) == 0 {
		d.Empty = true
		return d
	}

	latest := records[0]
	d.Date = latest.Date
	d.Score = buildScore(records, latest)

	for _, r := range scoring.RankByDeviation(latest, scoring.Definitions) {
		d.Metrics = append(d.Metrics, buildMetric(records, r))
	}

	for _, ro := range scoring.Readouts {
		v := latest.Value(ro.Key)
		avg30 := scoring.AverageLast(records, scoring.Window30, ro.Key)
		d.Readouts = append(d.Readouts, ReadoutCard{
			Key:          ro.Key,
			Label:        ro.Label,
			Color:        ro.Color,
			UnitSuffix:   ro.UnitSuffix,
			Value:        v,
			Display:      scoring.FormatNumber(v, ro.Decimals),
			Average30:    avg30,
			Average30Fmt: scoring.FormatNumber(avg30, ro.Decimals),
		})
	}

	return d
}

func buildScore(records []*models.DailyRecord, latest *models.DailyRecord) ScoreCard {
	card := ScoreCard{
		Average7:  scoring.AverageLast(records, scoring.Window7, models.MetricHealthScore),
		Today:     latest.HealthScore,
		Average30: scoring.AverageLast(records, scoring.Window30, models.MetricHealthScore),
		Source:    ScoreStored,
	}
	if card.Today == nil {
		computed := float64(scoring.HealthScore(latest))
		card.Today = &computed
		card.Source = ScoreComputed
	}

	// The gauge shows the rounded average, so band the rounded value.
	if card.Average7 != nil {
		rounded := math.Round(*card.Average7)
		card.Label = scoring.ScoreLabel(&rounded)
		card.Tier = scoring.ScoreTier(rounded)
	} else {
		card.Label = scoring.ScoreLabel(nil)
	}
	card.Comparison = scoring.CompareToBaseline(card.Today, card.Average30)
	return card
}

func buildMetric(records []*models.DailyRecord, r scoring.Ranked) MetricCard {
	def := r.Definition
	avg30 := scoring.AverageLast(records, scoring.Window30, def.Key)
	return MetricCard{
		Key:          def.Key,
		Label:        def.Label,
		Color:        def.Color,
		Unit:         def.Unit,
		UnitSuffix:   def.UnitSuffix,
		Value:        r.Value,
		Display:      scoring.FormatValue(r.Value, def),
		Evaluation:   scoring.Evaluate(r.Value, def),
		QualityLabel: scoring.Label(r.Value, def),
		Trend:        scoring.CalculateTrend(r.Value, avg30, def.HigherIsBetter),
		Average7:     scoring.AverageLast(records, scoring.Window7, def.Key),
		Average30:    avg30,
		Average30Fmt: scoring.FormatValue(avg30, def),
	}
}
