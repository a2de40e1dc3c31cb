package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/logger"
	"github.com/ksyq12/tenantrouter/internal/output"
)

var metricsFile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show nginx state and tenant routes",
	Long: `Report whether nginx is active, whether its configuration passes the
test, and every tenant route found.

With --metrics-file (or metrics_file in the config), the same snapshot is
also written as Prometheus gauges for node_exporter's textfile collector.

Examples:
  tenantrouter status
  tenantrouter status --metrics-file /var/lib/node_exporter/tenantrouter.prom`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this .prom file")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := loadManager()
	if err != nil {
		return err
	}

	st, err := mgr.Status()
	if err != nil {
		return err
	}

	path := metricsFile
	if path == "" {
		path = cfg.MetricsFile
	}
	if path != "" {
		if err := deps.MetricsWriter.Write(path, st); err != nil {
			logger.Warn("metrics not written: %v", err)
		} else {
			logger.Debug("metrics written to %s", path)
		}
	}

	return output.JSON(st)
}
