// ABOUTME: CLI command for starting the JSON HTTP API.
// ABOUTME: Serves the dashboard, records, and evaluation routes until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/vitral/internal/api"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveOffline bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a JSON API for the dashboard.

ROUTES:

  GET /api/dashboard                       Today's dashboard
  GET /api/records?limit=N                 Records in the window
  GET /api/metrics/{key}/evaluate?value=V  Classify a value
  GET /healthz                             Liveness

Access logs go to stderr in Common Log Format. CORS is open for GET.

EXAMPLES:

  vitral serve
  vitral serve --addr 127.0.0.1:9090 --offline`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd.Context(), serveOffline)
		if err != nil {
			return err
		}
		defer svc.Source.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return api.NewServer(svc).ListenAndServe(ctx, serveAddr, os.Stderr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "serve from the local mirror")
	rootCmd.AddCommand(serveCmd)
}
