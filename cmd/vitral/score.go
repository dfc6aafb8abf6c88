// ABOUTME: CLI command printing the composite health score for a day.
// ABOUTME: Shows the computed score next to any stored score.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	scoreDate    string
	scoreOffline bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the composite health score",
	Long: `Compute the composite health score for a day in the window.

The score weighs sleep hours (25%), resting heart rate (20%), stress (20%),
steps (15%) and body battery (20%). Missing inputs fall back to neutral
defaults so the score is always between 0 and 100.

EXAMPLES:

  vitral score                     # Latest day
  vitral score --date 2025-06-28   # A specific day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context(), scoreOffline)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		res := svc.Window(cmd.Context())
		if res.Failed {
			return fmt.Errorf("failed to load records from %s", svc.Source.Name())
		}

		record, err := pickRecord(res.Records, scoreDate)
		if err != nil {
			return err
		}

		score := scoring.HealthScore(record)
		f := float64(score)
		out := cmd.OutOrStdout()
		tierColor(scoring.ScoreTier(f)).Fprintf(out, "%s  %d", record.Date, score)
		fmt.Fprintf(out, "  %s\n", scoring.ScoreLabel(&f))
		if record.HealthScore != nil {
			color.New(color.Faint).Fprintf(out, "stored score %s\n", scoring.FormatNumber(record.HealthScore, 0))
		}
		return nil
	},
}

// pickRecord returns the record for date, or the newest when date is empty.
func pickRecord(records []*models.DailyRecord, date string) (*models.DailyRecord, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in the window")
	}
	if date == "" {
		return records[0], nil
	}
	for _, r := range records {
		if r.Date == date {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no record for %s", date)
}

func init() {
	scoreCmd.Flags().StringVar(&scoreDate, "date", "", "day to score (YYYY-MM-DD, default: latest)")
	scoreCmd.Flags().BoolVar(&scoreOffline, "offline", false, "read from the local mirror")
	rootCmd.AddCommand(scoreCmd)
}
