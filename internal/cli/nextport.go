package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/output"
)

var nextPortCmd = &cobra.Command{
	Use:   "next-port",
	Short: "Print the next free backend port",
	Long: `Print the first port in the configured range with no listening socket.

Nothing is reserved: the port may be taken by the time it is used.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runNextPort,
}

func init() {
	rootCmd.AddCommand(nextPortCmd)
}

func runNextPort(cmd *cobra.Command, args []string) error {
	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	port, err := mgr.NextPort()
	if err != nil {
		return err
	}

	output.Print("%d", port)
	return nil
}
