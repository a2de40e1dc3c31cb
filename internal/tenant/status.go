package tenant

import (
	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/logger"
)

// Service states reported in Status.Nginx.
const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
	ServiceUnknown  = "unknown"
)

// Status is a point-in-time snapshot of the web server and its routes.
type Status struct {
	Nginx        string         `json:"nginx"`
	NginxValid   bool           `json:"nginx_valid"`
	TenantsCount int            `json:"tenants_count"`
	Tenants      []config.Route `json:"tenants"`
}

// Status queries the service state, runs the config test and scans the
// inventory. Nothing is cached between calls.
func (m *Manager) Status() (*Status, error) {
	st := &Status{Nginx: ServiceUnknown}

	active, err := m.drv.IsActive()
	switch {
	case err != nil:
		logger.Warn("could not query service state: %v", err)
	case active:
		st.Nginx = ServiceActive
	default:
		st.Nginx = ServiceInactive
	}

	if err := m.Validate(); err != nil {
		logger.Debug("config test: %v", err)
	} else {
		st.NginxValid = true
	}

	routes, err := m.List()
	if err != nil {
		return nil, err
	}
	st.Tenants = routes
	st.TenantsCount = len(routes)

	return st, nil
}
