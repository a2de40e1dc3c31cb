package tenant

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/driver"
	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/logger"
	"github.com/ksyq12/tenantrouter/internal/template"
)

// PortAllocator hands out the next free backend port.
type PortAllocator interface {
	Next() (int, error)
}

// Manager performs route operations against one web server.
type Manager struct {
	cfg     *config.Config
	drv     driver.Driver
	ports   PortAllocator
	records *RecordStore
	now     func() time.Time
}

// NewManager creates a Manager. records may be nil.
func NewManager(cfg *config.Config, drv driver.Driver, ports PortAllocator, records *RecordStore) *Manager {
	return &Manager{
		cfg:     cfg,
		drv:     drv,
		ports:   ports,
		records: records,
		now:     time.Now,
	}
}

// Driver returns the web server driver the manager operates on.
func (m *Manager) Driver() driver.Driver {
	return m.drv
}

func (m *Manager) suffix() string {
	return strings.Trim(m.cfg.DomainSuffix, ".")
}

// NormalizeDomain appends the local domain suffix unless domain already
// ends with it. The match is a plain string suffix, so "mycyzor.local" is
// left alone.
func (m *Manager) NormalizeDomain(domain string) string {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	suffix := m.suffix()
	if strings.HasSuffix(domain, suffix) {
		return domain
	}
	return domain + "." + suffix
}

func validateTenantID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Validation("tenant id cannot be empty")
	}
	if strings.ContainsAny(id, "\r\n") {
		return errors.Validation("tenant id must be a single line")
	}
	return nil
}

func validateDomain(domain string) error {
	if domain == "" {
		return errors.Validation("domain cannot be empty")
	}
	if strings.IndexFunc(domain, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }) >= 0 {
		return errors.Validation(fmt.Sprintf("domain cannot contain whitespace: %q", domain))
	}
	if strings.ContainsAny(domain, `/\`) || strings.ContainsRune(domain, 0) || domain == "." || domain == ".." {
		return errors.Validation(fmt.Sprintf("invalid domain: %q", domain))
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return errors.Validation("domain cannot start or end with hyphen")
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.Validation(fmt.Sprintf("port out of range: %d", port))
	}
	return nil
}

// Generate renders the route for a tenant, writes it to the available
// directory and links it into the enabled directory, then rebuilds the
// proxy map when one is configured. It returns the path
// of the written file. A file written before a failed link is left in
// place.
func (m *Manager) Generate(tenantID, domain string, port int) (string, error) {
	if err := validateTenantID(tenantID); err != nil {
		return "", err
	}
	if err := validateDomain(domain); err != nil {
		return "", err
	}
	if err := validatePort(port); err != nil {
		return "", err
	}

	domain = m.NormalizeDomain(domain)
	createdAt := m.now()

	content, err := template.Render(m.drv.Name(), template.NewTemplateData(tenantID, domain, port, createdAt))
	if err != nil {
		return "", errors.WrapDomain(errors.ErrCodeInternal, domain, "failed to render config", err)
	}

	path, err := m.drv.Write(domain, content)
	if err != nil {
		logger.LogError(err, "config write failed")
		return "", err
	}

	if err := m.drv.Enable(domain); err != nil {
		logger.LogError(err, "enable failed")
		return "", err
	}

	err = m.records.Save(&Record{
		ID:        tenantID,
		Domain:    domain,
		Port:      port,
		Config:    path,
		CreatedAt: createdAt.UTC(),
	})
	if err != nil {
		logger.Warn("route record for %s not saved: %v", domain, err)
	}
	m.refreshProxyMap()

	logger.InfoFields("route generated", map[string]interface{}{
		"id":     tenantID,
		"domain": domain,
		"port":   port,
		"config": path,
	})
	return path, nil
}

// Validate runs the web server's configuration test.
func (m *Manager) Validate() error {
	return m.drv.Test()
}

// Reload asks the service manager to reload the web server.
func (m *Manager) Reload() error {
	return m.drv.Reload()
}

// Apply validates the configuration and reloads only if it passed.
func (m *Manager) Apply() error {
	if err := m.Validate(); err != nil {
		return err
	}
	return m.Reload()
}

// NextPort returns the next free backend port.
func (m *Manager) NextPort() (int, error) {
	if m.ports == nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "no port allocator configured", nil)
	}
	return m.ports.Next()
}

// Enable re-links an existing route into the enabled directory.
func (m *Manager) Enable(domain string) (string, error) {
	if err := validateDomain(domain); err != nil {
		return "", err
	}
	domain = m.NormalizeDomain(domain)
	if err := m.drv.Enable(domain); err != nil {
		return domain, err
	}
	m.refreshProxyMap()
	return domain, nil
}

// Disable removes a route's link from the enabled directory. The config
// file stays in the available directory.
func (m *Manager) Disable(domain string) (string, error) {
	if err := validateDomain(domain); err != nil {
		return "", err
	}
	domain = m.NormalizeDomain(domain)
	if err := m.drv.Disable(domain); err != nil {
		return domain, err
	}
	m.refreshProxyMap()
	return domain, nil
}

// List scans the available directory and returns every route found,
// sorted by file name. An empty or missing directory yields an empty slice.
func (m *Manager) List() ([]config.Route, error) {
	paths, err := m.drv.List()
	if err != nil {
		return nil, err
	}

	routes := make([]config.Route, 0, len(paths))
	for _, path := range paths {
		routes = append(routes, m.inspect(path))
	}
	return routes, nil
}

// Show returns the route stored for domain.
func (m *Manager) Show(domain string) (*config.Route, error) {
	if err := validateDomain(domain); err != nil {
		return nil, err
	}
	domain = m.NormalizeDomain(domain)

	path := filepath.Join(m.drv.Paths().Available, domain+driver.ConfigExt)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(domain)
		}
		return nil, errors.WrapDomain(errors.ErrCodeIO, domain, "failed to read config", err)
	}

	route := m.inspect(path)
	return &route, nil
}

// inspect parses one config file and completes it from the route record
// and the enabled directory. Read failures degrade to unknown fields.
func (m *Manager) inspect(path string) config.Route {
	name := strings.TrimSuffix(filepath.Base(path), driver.ConfigExt)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("could not read %s: %v", path, err)
	}
	route := ParseRoute(path, string(content))

	if !route.Complete() {
		rec, err := m.records.Load(name)
		if err != nil {
			logger.Debug("route record for %s: %v", name, err)
		}
		if rec != nil {
			rec.fill(&route)
		}
	}

	enabled, err := m.drv.IsEnabled(name)
	if err != nil {
		logger.Debug("enabled check for %s: %v", name, err)
	}
	route.Enabled = enabled

	return route
}
