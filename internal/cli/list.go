package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var listTable bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tenant routes",
	Long: `List the tenant routes found in the available directory.

Fields are read back from each config file; a field that cannot be
recovered is reported as "unknown".

Examples:
  tenantrouter list
  tenantrouter ls --table`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listTable, "table", false, "Print a table instead of JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	routes, err := mgr.List()
	if err != nil {
		return err
	}

	if !listTable {
		return output.JSON(routes)
	}

	if len(routes) == 0 {
		output.Info("No tenant routes configured")
		return nil
	}

	headers := []string{"ID", "DOMAIN", "PORT", "ENABLED", "CONFIG"}
	rows := make([][]string, 0, len(routes))
	for _, r := range routes {
		enabled := "no"
		if r.Enabled {
			enabled = "yes"
		}
		rows = append(rows, []string{r.ID, r.Domain, r.Port, enabled, r.Config})
	}

	output.Table(headers, rows)
	return nil
}
