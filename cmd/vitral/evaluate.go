// ABOUTME: CLI command classifying a single metric value.
// ABOUTME: Prints the tier, the metric's quality label, and the thresholds.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/scoring"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate <metric> [value]",
	Aliases: []string{"eval"},
	Short:   "Classify a metric value",
	Long: `Classify a value for one metric into excellent, good, fair or poor.

METRICS:

  sleep_score, sleep_hours, resting_hr, hrv, steps, stress_level,
  mvpa_minutes

  Omit the value to see how a missing value is reported.

EXAMPLES:

  vitral evaluate resting_hr 58
  vitral evaluate steps 7500
  vitral evaluate hrv`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		keys := make([]string, 0, len(scoring.Definitions))
		for _, d := range scoring.Definitions {
			keys = append(keys, string(d.Key))
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		def, ok := scoring.DefinitionFor(models.MetricKey(args[0]))
		if !ok {
			return fmt.Errorf("unknown metric: %s", args[0])
		}

		var value *float64
		if len(args) == 2 {
			v, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", ""), 64)
			if err != nil {
				return fmt.Errorf("invalid value: %s", args[1])
			}
			value = &v
		}

		eval := scoring.Evaluate(value, def)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s: %s (%s)\n",
			def.Label,
			withSuffix(scoring.FormatValue(value, def), def.UnitSuffix),
			tierColor(eval.Tier).Sprint(eval.Label),
			eval.Tier)

		direction := "higher is better"
		if !def.HigherIsBetter {
			direction = "lower is better"
		}
		color.New(color.Faint).Fprintf(out, "thresholds %s / %s / %s, %s\n",
			scoring.FormatNumber(&def.Thresholds[0], def.Decimals),
			scoring.FormatNumber(&def.Thresholds[1], def.Decimals),
			scoring.FormatNumber(&def.Thresholds[2], def.Decimals),
			direction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
