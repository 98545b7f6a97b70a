package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trustdesk/trustdesk/internal/api"
	"github.com/trustdesk/trustdesk/internal/config"
	"github.com/trustdesk/trustdesk/internal/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the back-office API server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()
		s.Start()
	},
}

// Register the "server" command
func init() {
	rootCmd.AddCommand(serverCmd)
}
