// ABOUTME: CLI commands for viewing and editing the config file.
// ABOUTME: Secrets are masked in 'config show'.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
	Long: `View or change settings in ~/.config/vitral/config.json.

KEYS:

  source         postgres, rest or local (inferred when unset)
  database_url   Postgres connection string
  rest_url       Hosted project URL for the REST API
  api_key        REST API key
  user_id        Your user UUID
  backend        Local mirror: sqlite (default) or charm
  charm_host     Charm server (default charm.2389.dev)
  data_dir       SQLite directory (default ~/.local/share/vitral)
  window_days    Days of history to load (default 30)
  log_level      debug, info, warn or error

ENVIRONMENT:

  Every key can be overridden with VITRAL_<KEY>, e.g. VITRAL_USER_ID.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		out := cmd.OutOrStdout()

		faint.Fprintf(out, "# %s\n", config.GetConfigPath())
		for _, key := range config.Keys {
			v, err := cfg.Get(key)
			if err != nil {
				return err
			}
			if key == "api_key" || key == "database_url" {
				v = mask(v)
			}
			if v == "" {
				v = faint.Sprint("(unset)")
			}
			fmt.Fprintf(out, "%s %s\n", padRight(key, 14), v)
		}
		fmt.Fprintf(out, "%s %s\n", padRight("→ source", 14), cfg.GetSource())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save the config file.

Pass an empty value to unset a key.

EXAMPLES:

  vitral config set user_id 36f40093-9629-442d-8e9f-5a4f00a371c0
  vitral config set backend charm
  vitral config set window_days ""`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Keys, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Edit the file as written, without the environment overlay.
		fileCfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s", args[0])
		return nil
	},
}

// mask hides all but the last four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
