package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/output"
	"github.com/ksyq12/tenantrouter/internal/tenant"
)

var setupCmd = &cobra.Command{
	Use:   "setup <tenant-id> <domain> [port]",
	Short: "Provision the route for a tenant",
	Long: `Generate, enable and apply the nginx route for a tenant.

The domain gets the local domain suffix appended unless it already ends
with it. Without a port, the next free backend port is allocated.

Steps: allocate port, write and link config, nginx -t, reload. The first
failing step aborts; files already written are kept.

Examples:
  tenantrouter setup t1 t1
  tenantrouter setup acme acme.example 6003`,
	Args: usageArgs(cobra.RangeArgs(2, 3)),
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	tenantID, domain := args[0], args[1]

	port := 0
	if len(args) == 3 {
		p, err := strconv.Atoi(args[2])
		if err != nil || p < 1 || p > 65535 {
			return errors.Usage(fmt.Sprintf("invalid port: %s", args[2]))
		}
		port = p
	}

	_, mgr, err := loadManager()
	if err != nil {
		return err
	}

	output.Info("Setting up tenant %s", tenantID)
	output.Print("  Domain: %s", mgr.NormalizeDomain(domain))

	res, err := mgr.Setup(tenantID, domain, port)
	reportSetup(mgr, res, err)
	return err
}

// reportSetup prints one line per completed step, then the reason the
// next step failed, if any.
func reportSetup(mgr *tenant.Manager, res *tenant.SetupResult, err error) {
	if res.Done(tenant.StepPort) {
		output.Print("  Port: %d", res.Port)
	}
	if res.Done(tenant.StepGenerate) {
		output.Success("Config written: %s", res.ConfigPath)
		output.Success("Linked into %s", mgr.Driver().Paths().Enabled)
	}
	if res.Done(tenant.StepValidate) {
		output.Success("Configuration valid")
	}
	if res.Done(tenant.StepReload) {
		output.Success("nginx reloaded")
		output.Success("Tenant %s routed: http://%s -> localhost:%d", res.TenantID, res.Domain, res.Port)
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, errors.ErrConfigTestFailed):
		output.Error("Configuration invalid")
	case errors.Is(err, errors.ErrReloadFailed):
		warnReloadFailed()
	}
}
