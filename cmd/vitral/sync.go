// ABOUTME: CLI commands for syncing the Charm mirror across devices.
// ABOUTME: Wraps charm link/unlink and the kv maintenance calls for the vitral store.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/vitral/internal/charm"
	"github.com/harperreed/vitral/internal/config"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync the local mirror across devices",
	Long: `Sync the charm backend's mirror of your daily records.

Only applies when 'vitral config set backend charm' is in effect. Records
pulled or imported on one linked device show up on the others.`,
}

// requireCharmBackend rejects mirror maintenance while another backend is active.
func requireCharmBackend(c *config.Config) error {
	if c.GetBackend() != config.BackendCharm {
		return fmt.Errorf("backend is %s; sync needs the charm backend (vitral config set backend charm)", c.GetBackend())
	}
	return nil
}

// runCharm hands the terminal to the charm CLI.
func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// confirm reads one word from stdin and reports whether it matches any of want.
func confirm(prompt string, want ...string) bool {
	fmt.Print(prompt)
	var answer string
	_, _ = fmt.Scanln(&answer)
	for _, w := range want {
		if answer == w {
			return true
		}
	}
	fmt.Println("Canceled.")
	return false
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("✓ Device linked to Charm")

		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			return nil
		}
		defer client.Close()
		if err := client.Sync(); err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
			return nil
		}
		color.Green("✓ Initial sync complete")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm, keeping the local mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Charm account and mirror size",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCharmBackend(cfg); err != nil {
			color.Yellow("%v", err)
			return nil
		}

		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			color.Yellow("Charm client not initialized: %v", err)
			return nil
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked. Run 'vitral sync link'.")
			return nil
		}

		host := cfg.CharmHost
		if host == "" {
			host = charm.DefaultHost
		}
		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", host)
		if client.IsReadOnly() {
			color.Yellow("Mirror is locked by another process; read-only")
		}

		data, err := client.GetAllData()
		if err != nil {
			return fmt.Errorf("read mirror: %w", err)
		}
		fmt.Printf("Records: %d\n", len(data.Records))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCharmBackend(cfg); err != nil {
			return err
		}
		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer client.Close()

		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair a corrupted or locked mirror",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCharmBackend(cfg); err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		result, err := kv.Repair(charm.DBName, force)
		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Vacuumed")
		}
		if err != nil {
			if !force {
				color.Yellow("Run with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		color.Green("✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the local mirror and restore it from Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCharmBackend(cfg); err != nil {
			return err
		}
		if !confirm("Delete the local mirror and restore from cloud? [y/N]: ", "y", "Y") {
			return nil
		}
		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Mirror restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the mirror locally and in Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCharmBackend(cfg); err != nil {
			return err
		}
		if !confirm("Type 'wipe' to permanently delete the mirror and its cloud backups: ", "wipe") {
			return nil
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		color.Green("✓ Wiped: %d cloud backups, %d local files", result.CloudBackupsDeleted, result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncNowCmd,
		syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
