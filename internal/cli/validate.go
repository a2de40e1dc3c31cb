package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Test the nginx configuration",
	Long: `Run the nginx configuration test.

The configuration is valid only when the test exits with status 0 and
reports success.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runValidate,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload nginx",
	Long: `Ask the service manager to reload nginx.

The configuration is not tested first; run 'tenantrouter validate' for that.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runReload,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reloadCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	if err := mgr.Validate(); err != nil {
		return err
	}
	output.Success("nginx configuration is valid")
	return nil
}

func runReload(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	if err := mgr.Reload(); err != nil {
		return err
	}
	output.Success("nginx reloaded")
	return nil
}
