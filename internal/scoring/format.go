// ABOUTME: Display formatting for metric values.
// ABOUTME: Uses x/text for locale-aware digit grouping on step counts.
package scoring

import (
	"math"
	"strconv"

	"github.com/harperreed/vitral/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered in place of an absent value.
const Placeholder = "—"

var printer = message.NewPrinter(language.English)

// FormatValue renders value with def's precision.
func FormatValue(value *float64, def Definition) string {
	if value == nil {
		return Placeholder
	}
	if def.Key == models.MetricSteps {
		return FormatInteger(value)
	}
	return FormatNumber(value, def.Decimals)
}

// FormatNumber renders value with a fixed number of decimals.
func FormatNumber(value *float64, decimals int) string {
	if value == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*value, 'f', decimals, 64)
}

// FormatInteger rounds value and groups thousands.
func FormatInteger(value *float64) string {
	if value == nil {
		return Placeholder
	}
	return printer.Sprintf("%d", int64(math.Round(*value)))
}
