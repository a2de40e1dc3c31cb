package cli

import (
	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/driver"
	"github.com/ksyq12/tenantrouter/internal/executor"
	"github.com/ksyq12/tenantrouter/internal/metrics"
	"github.com/ksyq12/tenantrouter/internal/port"
	"github.com/ksyq12/tenantrouter/internal/tenant"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader   ConfigLoader
	ManagerFactory ManagerFactory
	MetricsWriter  MetricsWriter
}

// ConfigLoader handles configuration loading
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// ManagerFactory builds the route manager for a configuration
type ManagerFactory interface {
	Create(cfg *config.Config) (*tenant.Manager, error)
}

// MetricsWriter exports a status snapshot to a textfile
type MetricsWriter interface {
	Write(path string, st *tenant.Status) error
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:   &realConfigLoader{},
	ManagerFactory: &realManagerFactory{},
	MetricsWriter:  &realMetricsWriter{},
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	return config.Load(path)
}

type realManagerFactory struct{}

func (r *realManagerFactory) Create(cfg *config.Config) (*tenant.Manager, error) {
	exec := executor.NewSystemExecutor()
	drv := driver.NewNginx(cfg, exec)
	ports := port.NewAllocator(cfg.PortStart, cfg.PortStep, cfg.PortEnd,
		port.NewSocketProber(exec, cfg.Commands.ListSockets))
	return tenant.NewManager(cfg, drv, ports, tenant.NewRecordStore(cfg.RoutesDir())), nil
}

type realMetricsWriter struct{}

func (r *realMetricsWriter) Write(path string, st *tenant.Status) error {
	e := metrics.NewExporter()
	e.Observe(st)
	return e.WriteTextfile(path)
}
