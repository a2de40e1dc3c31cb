package driver

import (
	"path/filepath"
	"strings"
)

// MockDriver is an in-memory Driver for orchestration tests. Every call is
// appended to Calls as "<op>" or "<op> <domain>", so tests can assert both
// what ran and in which order.
type MockDriver struct {
	paths Paths

	WriteFunc     func(domain, content string) (string, error)
	EnableFunc    func(domain string) error
	DisableFunc   func(domain string) error
	ProxyMapFunc  func(path, content string) error
	ListFunc      func() ([]string, error)
	IsEnabledFunc func(domain string) (bool, error)
	TestFunc      func() error
	ReloadFunc    func() error
	IsActiveFunc  func() (bool, error)

	Calls []string
	// Written holds the content of the last Write per domain.
	Written map[string]string
	// ProxyMap holds the content of the last WriteProxyMap.
	ProxyMap string
}

// NewMockDriver returns a MockDriver whose operations all succeed.
func NewMockDriver(availableDir, enabledDir string) *MockDriver {
	return &MockDriver{
		paths:   Paths{Available: availableDir, Enabled: enabledDir},
		Written: make(map[string]string),
	}
}

func (m *MockDriver) record(op string, domain ...string) {
	m.Calls = append(m.Calls, strings.Join(append([]string{op}, domain...), " "))
}

// Count returns how many recorded calls start with op.
func (m *MockDriver) Count(op string) int {
	n := 0
	for _, c := range m.Calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// Reset clears the call log.
func (m *MockDriver) Reset() {
	m.Calls = nil
	m.Written = make(map[string]string)
	m.ProxyMap = ""
}

func (m *MockDriver) Name() string { return "nginx" }

func (m *MockDriver) Paths() Paths { return m.paths }

// Write returns the path the file would have in the available directory
// unless WriteFunc says otherwise.
func (m *MockDriver) Write(domain, content string) (string, error) {
	m.record("write", domain)
	if m.WriteFunc != nil {
		return m.WriteFunc(domain, content)
	}
	m.Written[domain] = content
	return filepath.Join(m.paths.Available, domain+ConfigExt), nil
}

func (m *MockDriver) Enable(domain string) error {
	m.record("enable", domain)
	if m.EnableFunc != nil {
		return m.EnableFunc(domain)
	}
	return nil
}

func (m *MockDriver) Disable(domain string) error {
	m.record("disable", domain)
	if m.DisableFunc != nil {
		return m.DisableFunc(domain)
	}
	return nil
}

func (m *MockDriver) WriteProxyMap(path, content string) error {
	m.record("write-proxy-map")
	if m.ProxyMapFunc != nil {
		return m.ProxyMapFunc(path, content)
	}
	m.ProxyMap = content
	return nil
}

func (m *MockDriver) List() ([]string, error) {
	m.record("list")
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []string{}, nil
}

func (m *MockDriver) IsEnabled(domain string) (bool, error) {
	m.record("is-enabled", domain)
	if m.IsEnabledFunc != nil {
		return m.IsEnabledFunc(domain)
	}
	return false, nil
}

func (m *MockDriver) Test() error {
	m.record("test")
	if m.TestFunc != nil {
		return m.TestFunc()
	}
	return nil
}

func (m *MockDriver) Reload() error {
	m.record("reload")
	if m.ReloadFunc != nil {
		return m.ReloadFunc()
	}
	return nil
}

// IsActive reports an active service by default.
func (m *MockDriver) IsActive() (bool, error) {
	m.record("is-active")
	if m.IsActiveFunc != nil {
		return m.IsActiveFunc()
	}
	return true, nil
}
