package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var disableCmd = &cobra.Command{
	Use:   "disable <domain>",
	Short: "Disable a tenant route",
	Long: `Disable a tenant route by removing its link from the enabled directory.

The config file stays in the available directory, so the route can be
enabled again later.

Examples:
  tenantrouter disable t1`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runDisable,
}

func init() {
	disableCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(disableCmd)
}

func runDisable(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	output.Info("Disabling route...")
	domain, err := mgr.Disable(args[0])
	if err != nil {
		return err
	}

	if err := testAndReload(mgr, !noReload); err != nil {
		return err
	}

	output.Success("Route %s disabled", domain)
	return nil
}
