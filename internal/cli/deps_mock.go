package cli

import (
	"bytes"
	"path/filepath"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/driver"
	"github.com/ksyq12/tenantrouter/internal/executor"
	"github.com/ksyq12/tenantrouter/internal/output"
	"github.com/ksyq12/tenantrouter/internal/port"
	"github.com/ksyq12/tenantrouter/internal/tenant"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg     *config.Config
	LoadErr error
	Paths   []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

// MockManagerFactory is a test double for ManagerFactory. It builds a real
// Manager over the given driver and a port allocator backed by Prober.
type MockManagerFactory struct {
	Driver driver.Driver
	Prober port.Prober
	Err    error
	Calls  int
}

func (m *MockManagerFactory) Create(cfg *config.Config) (*tenant.Manager, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	drv := m.Driver
	if drv == nil {
		drv = driver.NewMockDriver(cfg.AvailableDir, cfg.EnabledDir)
	}
	prober := m.Prober
	if prober == nil {
		prober = port.ProberFunc(func(int) (bool, error) { return false, nil })
	}

	ports := port.NewAllocator(cfg.PortStart, cfg.PortStep, cfg.PortEnd, prober)
	return tenant.NewManager(cfg, drv, ports, tenant.NewRecordStore(cfg.RoutesDir())), nil
}

// MockMetricsWriter is a test double for MetricsWriter
type MockMetricsWriter struct {
	Err   error
	Paths []string
	Last  *tenant.Status
}

func (m *MockMetricsWriter) Write(path string, st *tenant.Status) error {
	m.Paths = append(m.Paths, path)
	m.Last = st
	return m.Err
}

// nginxTestOK is what nginx -t prints for a valid configuration.
const nginxTestOK = "nginx: the configuration file /etc/nginx/nginx.conf syntax is ok\n" +
	"nginx: configuration file /etc/nginx/nginx.conf test is successful\n"

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
		TempDir() string
	}
	OldDeps *Dependencies
	Cfg     *config.Config
	Loader  *MockConfigLoader
	Exec    *executor.MockExecutor
	Driver  *driver.NginxDriver
	Factory *MockManagerFactory
	Metrics *MockMetricsWriter
	Out     *bytes.Buffer
}

// NewTestHelper installs dependencies that run the real nginx driver
// against temporary directories, with every system command answered by a
// MockExecutor. User output is captured in Out.
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
	TempDir() string
}) *TestHelper {
	t.Helper()

	root := t.TempDir()
	cfg := config.New()
	cfg.AvailableDir = filepath.Join(root, "sites-available")
	cfg.EnabledDir = filepath.Join(root, "sites-enabled")
	cfg.StateDir = filepath.Join(root, "state")

	exec := &executor.MockExecutor{}
	h := &TestHelper{
		T:       t,
		OldDeps: deps,
		Cfg:     cfg,
		Loader:  &MockConfigLoader{Cfg: cfg},
		Exec:    exec,
		Driver:  driver.NewNginx(cfg, exec),
		Metrics: &MockMetricsWriter{},
		Out:     &bytes.Buffer{},
	}
	h.SetCommandResults(true, true)
	h.Factory = &MockManagerFactory{Driver: h.Driver}

	deps = &Dependencies{
		ConfigLoader:   h.Loader,
		ManagerFactory: h.Factory,
		MetricsWriter:  h.Metrics,
	}
	output.SetOutput(h.Out)

	t.Cleanup(func() {
		deps = h.OldDeps
		output.SetOutput(nil)
	})

	return h
}

// SetCommandResults controls whether nginx -t passes and whether the
// service manager succeeds. Socket listing always reports nothing.
func (h *TestHelper) SetCommandResults(configValid, serviceOK bool) {
	h.Exec.RunFunc = func(name string, args ...string) (executor.Result, error) {
		switch name {
		case "nginx":
			if configValid {
				return executor.Result{Stderr: []byte(nginxTestOK)}, nil
			}
			return executor.Result{ExitCode: 1, Stderr: []byte("nginx: [emerg] invalid directive\n")}, nil
		case "systemctl":
			if serviceOK {
				return executor.Result{}, nil
			}
			return executor.Result{ExitCode: 1, Stderr: []byte("Job for nginx.service failed\n")}, nil
		}
		return executor.Result{}, nil
	}
}
