// ABOUTME: Root Cobra command for vitral CLI.
// ABOUTME: Loads config and builds the logger in PersistentPreRunE; opens sources on demand.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitral/internal/config"
	"github.com/harperreed/vitral/internal/dashboard"
	"github.com/harperreed/vitral/internal/source"
	"github.com/harperreed/vitral/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *log.Logger

	logLevelFlag string
	debugFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "vitral",
	Short: "Personal health metrics dashboard",
	Long: `Vitral is a dashboard for the daily health metrics your wearable collects.

WHAT IT SHOWS:

  Health score   7-day average gauge, today's score, monthly comparison
  Metrics        sleep score, sleep hours, resting HR, HRV, steps, stress,
                 active minutes; ranked worst first with trend vs 30 days
  Readouts       VO2 max, training load, body battery

QUICK START:

  $ vitral config set rest_url https://<project>.supabase.co
  $ vitral config set api_key <anon key>
  $ vitral config set user_id <uuid>
  $ vitral dashboard                   # Today's dashboard
  $ vitral records                     # The last 30 days, raw
  $ vitral evaluate resting_hr 58      # Classify a single value

OFFLINE MIRROR:

  $ vitral pull                        # Copy the window into the local store
  $ vitral dashboard --offline         # Render from the local store

  The local store is SQLite by default (~/.local/share/vitral/vitral.db)
  or Charm KV with cloud sync (backend: charm).

SERVERS:

  $ vitral serve --addr :8080          # JSON API
  $ vitral mcp                         # MCP server for AI assistants

CONFIGURATION:

  Settings live in ~/.config/vitral/config.json and can be overridden
  with VITRAL_* environment variables (see 'vitral config --help').`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		if debugFlag {
			level = "debug"
		}
		logger = newLogger(os.Stderr, level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "shorthand for --log-level debug")
}

// newLogger builds the structured logger passed to every component.
func newLogger(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "vitral",
		ReportTimestamp: true,
	})
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// openService opens the configured source, or the local mirror when offline.
// The caller closes svc.Source.
func openService(ctx context.Context, offline bool) (*dashboard.Service, error) {
	userID, err := cfg.UserUUID()
	if err != nil {
		return nil, err
	}

	var src source.Source
	if offline {
		repo, err := cfg.OpenStorage()
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
		src = source.NewLocal(repo)
	} else {
		src, err = cfg.OpenSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s source: %w", cfg.GetSource(), err)
		}
	}

	logger.Debug("opened source", "source", src.Name(), "user", userID, "days", cfg.GetWindowDays())
	return &dashboard.Service{
		Source: src,
		UserID: userID,
		Days:   cfg.GetWindowDays(),
		Logger: logger,
	}, nil
}

// openRepo opens the local mirror.
func openRepo() (storage.Repository, error) {
	repo, err := cfg.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return repo, nil
}
