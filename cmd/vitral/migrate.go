// ABOUTME: CLI command for copying the local mirror between backends.
// ABOUTME: Moves records from the configured backend to SQLite or Charm KV.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/config"
	"github.com/harperreed/vitral/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the local mirror to another backend",
	Long: `Copy every record in the local mirror from the configured backend to
another one.

BACKENDS:

  sqlite   ~/.local/share/vitral/vitral.db (default)
  charm    Charm KV with automatic cloud sync

Records already in the destination for the same day are replaced. The
config is not changed; run 'vitral config set backend <name>' afterwards.

USAGE:

  vitral migrate --to charm --dry-run   # Preview what would be copied
  vitral migrate --to charm             # Perform the copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := cfg.GetBackend()
		if migrateTo == from {
			return fmt.Errorf("already using the %s backend", from)
		}
		if migrateTo != config.BackendSQLite && migrateTo != config.BackendCharm {
			return fmt.Errorf("unknown backend: %q (use sqlite or charm)", migrateTo)
		}

		src, err := openRepo()
		if err != nil {
			return err
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := src.GetAllData()
			if err != nil {
				return fmt.Errorf("read %s backend: %w", from, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Would copy %d records from %s to %s\n", len(data.Records), from, migrateTo)
			return nil
		}

		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		if migrateTo == config.BackendSQLite {
			if nonEmpty, _ := storage.IsDirNonEmpty(dstCfg.GetDataDir()); nonEmpty {
				color.Yellow("Note: %s already has data; matching days will be replaced.",
					filepath.Join(dstCfg.GetDataDir(), storage.DefaultDBName))
			}
		}

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", migrateTo, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		logger.Info("migrated records", "from", from, "to", migrateTo, "records", summary.Records)
		color.Green("✓ Copied %d records from %s to %s", summary.Records, from, migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendCharm, "destination backend: sqlite or charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
