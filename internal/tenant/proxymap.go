package tenant

import (
	"strconv"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/logger"
	"github.com/ksyq12/tenantrouter/internal/template"
)

// RefreshProxyMap rebuilds the host-to-port map file from the enabled
// routes and returns how many hosts it maps. It does nothing when no map
// file is configured.
func (m *Manager) RefreshProxyMap() (int, error) {
	if m.cfg.ProxyMapFile == "" {
		return 0, nil
	}

	routes, err := m.List()
	if err != nil {
		return 0, err
	}
	entries := proxyMapEntries(routes)

	data := template.NewProxyMapData(entries, m.cfg.PortStart, m.cfg.DomainSuffix)
	content, err := template.RenderProxyMap(m.drv.Name(), data)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "failed to render proxy map", err)
	}
	if err := m.drv.WriteProxyMap(m.cfg.ProxyMapFile, content); err != nil {
		return 0, err
	}

	logger.InfoFields("proxy map rebuilt", map[string]interface{}{
		"path":  m.cfg.ProxyMapFile,
		"hosts": len(entries),
	})
	return len(entries), nil
}

// refreshProxyMap is the best-effort rebuild run after route changes.
func (m *Manager) refreshProxyMap() {
	if _, err := m.RefreshProxyMap(); err != nil {
		logger.Warn("proxy map not updated: %v", err)
	}
}

// proxyMapEntries keeps enabled routes with a known domain and a numeric
// port. The first route for a host wins; nginx rejects duplicate map keys.
func proxyMapEntries(routes []config.Route) []template.ProxyMapEntry {
	seen := make(map[string]bool, len(routes))
	entries := make([]template.ProxyMapEntry, 0, len(routes))
	for _, r := range routes {
		if !r.Enabled || r.Domain == config.Unknown {
			continue
		}
		if p, err := strconv.Atoi(r.Port); err != nil || p < 1 || p > 65535 {
			logger.Debug("proxy map: skipping %s, port %q", r.Domain, r.Port)
			continue
		}
		if seen[r.Domain] {
			logger.Debug("proxy map: duplicate host %s in %s", r.Domain, r.Config)
			continue
		}
		seen[r.Domain] = true
		entries = append(entries, template.ProxyMapEntry{Host: r.Domain, Port: r.Port})
	}
	return entries
}
