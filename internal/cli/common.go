package cli

import (
	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/output"
	"github.com/ksyq12/tenantrouter/internal/tenant"
)

// loadManager loads the config and builds the route manager for it
func loadManager() (*config.Config, *tenant.Manager, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeConfig, "failed to load config", err)
	}

	mgr, err := deps.ManagerFactory.Create(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, mgr, nil
}

// testAndReload tests the config and, if it passes and reload is set,
// reloads nginx. A failed reload is flagged as leaving the config in place.
func testAndReload(mgr *tenant.Manager, reload bool) error {
	output.Info("Testing configuration...")
	if err := mgr.Validate(); err != nil {
		return err
	}
	output.Success("Configuration valid")

	if !reload {
		output.Warn("Skipping reload; run 'tenantrouter reload' to apply")
		return nil
	}

	output.Info("Reloading nginx...")
	if err := mgr.Reload(); err != nil {
		warnReloadFailed()
		return err
	}
	output.Success("nginx reloaded")
	return nil
}

func warnReloadFailed() {
	output.Warn("Reload failed (configuration may still be valid)")
}
