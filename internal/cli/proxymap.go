package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/output"
)

var proxyMapCmd = &cobra.Command{
	Use:   "proxy-map",
	Short: "Rebuild the host-to-port proxy map",
	Long: `Rebuild the proxy map file (proxy_map_file) from the enabled routes.

setup, enable and disable already rebuild it; use this after editing
route files by hand.

Examples:
  tenantrouter proxy-map
  tenantrouter proxy-map --no-reload`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runProxyMap,
}

func init() {
	proxyMapCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload nginx")

	rootCmd.AddCommand(proxyMapCmd)
}

func runProxyMap(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := loadManager()
	if err != nil {
		return err
	}
	if cfg.ProxyMapFile == "" {
		return errors.Wrap(errors.ErrCodeConfig, "proxy_map_file is not set", nil)
	}

	hosts, err := mgr.RefreshProxyMap()
	if err != nil {
		return err
	}
	output.Success("Proxy map written to %s (%d hosts)", cfg.ProxyMapFile, hosts)

	return testAndReload(mgr, !noReload)
}
