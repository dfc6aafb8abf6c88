// ABOUTME: Rolling averages over daily records.
// ABOUTME: Absent observations are skipped; an all-absent window has no average.
package scoring

import "github.com/harperreed/vitral/internal/models"

// Standard baseline windows, in days.
const (
	Window7  = 7
	Window30 = 30
)

// Average returns the mean of key across records, ignoring absent values.
// It returns nil when no record carries a value.
func Average(records []*models.DailyRecord, key models.MetricKey) *float64 {
	var sum float64
	var n int
	for _, r := range records {
		v := r.Value(key)
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// AverageLast averages key over the first n records. Records are expected
// newest first, so this is the trailing n-day average.
func AverageLast(records []*models.DailyRecord, n int, key models.MetricKey) *float64 {
	if n >= 0 && len(records) > n {
		records = records[:n]
	}
	return Average(records, key)
}
