package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var noReload bool

var enableCmd = &cobra.Command{
	Use:   "enable <domain>",
	Short: "Enable a tenant route",
	Long: `Enable a tenant route by linking its config into the enabled directory.

The config must already exist in the available directory.

Examples:
  tenantrouter enable t1
  tenantrouter enable t1.cyzor.local --no-reload`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runEnable,
}

func init() {
	enableCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(enableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	output.Info("Enabling route...")
	domain, err := mgr.Enable(args[0])
	if err != nil {
		return err
	}

	if err := testAndReload(mgr, !noReload); err != nil {
		return err
	}

	output.Success("Route %s enabled", domain)
	return nil
}
