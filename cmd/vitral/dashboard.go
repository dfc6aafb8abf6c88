// ABOUTME: CLI command rendering today's dashboard as colored terminal cards.
// ABOUTME: Supports --offline (local mirror) and --json output.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/dashboard"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	dashboardOffline bool
	dashboardJSON    bool
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show today's health dashboard",
	Long: `Show the health dashboard for the most recent day in the window.

LAYOUT:

  The health score card shows the 7-day average, today's score and how
  today compares to the 30-day average. When today's score is missing it
  is computed from sleep, resting HR, stress, steps and body battery
  (marked "computed").

  Metric cards are ordered worst first: the metric furthest from its
  excellent threshold comes first, with missing metrics ahead of all of them.

  Each card shows the value, its quality tier, the trend against the
  30-day average and the 30-day average itself.

EXAMPLES:

  vitral dashboard              # From the configured source
  vitral dashboard --offline    # From the local mirror (see 'vitral pull')
  vitral dashboard --json       # Machine-readable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context(), dashboardOffline)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		d := svc.Dashboard(cmd.Context())
		out := cmd.OutOrStdout()

		if dashboardJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		renderDashboard(out, d)
		return nil
	},
}

var tierColors = map[scoring.Tier]*color.Color{
	scoring.TierExcellent: color.New(color.FgGreen, color.Bold),
	scoring.TierGood:      color.New(color.FgCyan),
	scoring.TierFair:      color.New(color.FgYellow),
	scoring.TierPoor:      color.New(color.FgRed, color.Bold),
}

func tierColor(t scoring.Tier) *color.Color {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return color.New(color.Reset)
}

func trendArrow(t scoring.Trend) string {
	switch t.Direction {
	case scoring.DirectionUp:
		return color.GreenString("↑")
	case scoring.DirectionDown:
		return color.RedString("↓")
	default:
		return color.New(color.Faint).Sprint("→")
	}
}

func renderDashboard(w io.Writer, d *dashboard.Dashboard) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	if d.LoadFailed {
		color.New(color.FgRed).Fprintln(w, "Failed to load health data.")
		return
	}
	if d.Empty {
		fmt.Fprintln(w, "No health data in the window.")
		return
	}

	bold.Fprintf(w, "Health dashboard  %s\n", d.Date)
	faint.Fprintf(w, "%d days of data\n\n", d.Days)

	renderScore(w, d.Score)
	fmt.Fprintln(w)

	for _, m := range d.Metrics {
		renderMetric(w, m)
	}

	if len(d.Readouts) > 0 {
		fmt.Fprintln(w)
		for _, r := range d.Readouts {
			fmt.Fprintf(w, "%s %s  %s\n",
				padRight(r.Label, 16),
				withSuffix(r.Display, r.UnitSuffix),
				faint.Sprintf("30d avg %s", r.Average30Fmt))
		}
	}
}

func renderScore(w io.Writer, s dashboard.ScoreCard) {
	faint := color.New(color.Faint)

	gauge := scoring.FormatNumber(s.Average7, 0)
	tierColor(s.Tier).Fprintf(w, "Health score %s", gauge)
	fmt.Fprintf(w, "  %s\n", s.Label)

	today := scoring.FormatNumber(s.Today, 0)
	source := ""
	if s.Source == dashboard.ScoreComputed {
		source = faint.Sprint(" (computed)")
	}
	fmt.Fprintf(w, "  today %s%s  30d avg %s\n", today, source, scoring.FormatNumber(s.Average30, 0))
	faint.Fprintf(w, "  %s\n", s.Comparison.Text)
}

func renderMetric(w io.Writer, m dashboard.MetricCard) {
	faint := color.New(color.Faint)

	value := withSuffix(m.Display, m.UnitSuffix)

	fmt.Fprintf(w, "%s %s %s %s  %s\n",
		padRight(m.Label, 16),
		padRight(value, 10),
		tierColor(m.Evaluation.Tier).Sprint(padRight(m.QualityLabel, 18)),
		trendArrow(m.Trend),
		faint.Sprintf("30d avg %s", m.Average30Fmt))
}

// withSuffix appends a unit to a formatted value; placeholders stay bare.
func withSuffix(display, suffix string) string {
	switch {
	case suffix == "" || display == scoring.Placeholder:
		return display
	case suffix == "%":
		return display + suffix
	default:
		return display + " " + suffix
	}
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardOffline, "offline", false, "read from the local mirror")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "print the dashboard as JSON")
	rootCmd.AddCommand(dashboardCmd)
}
