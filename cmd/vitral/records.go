// ABOUTME: CLI command for listing the raw daily records in the window.
// ABOUTME: One line per day, newest first, with a column per core metric.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	recordsLimit   int
	recordsOffline bool
)

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"list", "ls"},
	Short:   "List daily records",
	Long: `List the daily records in the window, newest first.

OUTPUT FORMAT:

  DATE  SLEEP(h)  SCORE  RHR  HRV  STEPS  STRESS  HEALTH

  Missing values are shown as —.

EXAMPLES:

  vitral records              # The whole window
  vitral records -n 7         # The last week
  vitral records --offline    # From the local mirror`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context(), recordsOffline)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		res := svc.Window(cmd.Context())
		if res.Failed {
			return fmt.Errorf("failed to load records from %s", svc.Source.Name())
		}

		records := res.Records
		if recordsLimit > 0 && len(records) > recordsLimit {
			records = records[:recordsLimit]
		}

		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
			return nil
		}

		printRecords(cmd.OutOrStdout(), records)
		return nil
	},
}

var recordColumns = []struct {
	title string
	key   models.MetricKey
	width int
}{
	{"SLEEP", models.MetricSleepHours, 6},
	{"SCORE", models.MetricSleepScore, 6},
	{"RHR", models.MetricRestingHR, 5},
	{"HRV", models.MetricHRV, 5},
	{"STEPS", models.MetricSteps, 8},
	{"STRESS", models.MetricStressLevel, 7},
	{"HEALTH", models.MetricHealthScore, 6},
}

func printRecords(w io.Writer, records []*models.DailyRecord) {
	faint := color.New(color.Faint)

	header := padRight("DATE", 11)
	for _, c := range recordColumns {
		header += padRight(c.title, c.width+1)
	}
	faint.Fprintln(w, header)

	for _, r := range records {
		line := padRight(r.Date, 11)
		for _, c := range recordColumns {
			line += padRight(formatColumn(r, c.key), c.width+1)
		}
		fmt.Fprintln(w, line)
	}
}

func formatColumn(r *models.DailyRecord, key models.MetricKey) string {
	v := r.Value(key)
	if def, ok := scoring.DefinitionFor(key); ok {
		return scoring.FormatValue(v, def)
	}
	return scoring.FormatNumber(v, 0)
}

func init() {
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 0, "max records to show (default: whole window)")
	recordsCmd.Flags().BoolVar(&recordsOffline, "offline", false, "read from the local mirror")
	rootCmd.AddCommand(recordsCmd)
}
