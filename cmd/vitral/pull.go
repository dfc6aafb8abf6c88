// ABOUTME: CLI command mirroring the remote window into the local store.
// ABOUTME: Upserts each fetched day so repeated pulls are idempotent.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/config"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/storage"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Mirror the remote window into the local store",
	Long: `Fetch the trailing window from the configured remote source and store
it locally, so 'vitral dashboard --offline' works without a network.

Days already in the local store are replaced with the remote version.

EXAMPLES:

  vitral pull
  VITRAL_WINDOW_DAYS=90 vitral pull   # Mirror a longer window`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GetSource() == config.SourceLocal {
			return fmt.Errorf("no remote source configured (set rest_url or database_url)")
		}

		svc, err := openService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		res := svc.Window(cmd.Context())
		if res.Failed {
			return fmt.Errorf("failed to load records from %s", svc.Source.Name())
		}

		repo, err := openRepo()
		if err != nil {
			return err
		}
		defer repo.Close()

		n, err := mirrorRecords(repo, res.Records)
		if err != nil {
			return err
		}

		logger.Info("pulled records", "source", svc.Source.Name(), "records", n, "backend", cfg.GetBackend())
		color.Green("✓ Pulled %d days from %s", n, svc.Source.Name())
		return nil
	},
}

// mirrorRecords upserts records into repo and returns how many were written.
func mirrorRecords(repo storage.Repository, records []*models.DailyRecord) (int, error) {
	for i, r := range records {
		if err := repo.UpsertRecord(r); err != nil {
			return i, fmt.Errorf("store %s: %w", r.Date, err)
		}
	}
	return len(records), nil
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
