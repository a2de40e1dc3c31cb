package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show one tenant route",
	Long: `Show the route for a domain as JSON.

The local domain suffix is appended unless the domain already ends with it.

Examples:
  tenantrouter show t1
  tenantrouter show acme.example.cyzor.local`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	route, err := mgr.Show(args[0])
	if err != nil {
		return err
	}

	return output.JSON(route)
}
