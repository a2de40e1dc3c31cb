// Package metrics exports route status as Prometheus gauges in the
// node_exporter textfile format.
//
// The tool is not a long-running process, so nothing is served over HTTP.
// Each export writes a fresh snapshot that node_exporter's textfile
// collector picks up on its next scrape.
package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ksyq12/tenantrouter/internal/tenant"
)

// Prometheus metric names.
const (
	MetricTenants          = "tenantrouter_tenants"
	MetricNginxActive      = "tenantrouter_nginx_active"
	MetricNginxConfigValid = "tenantrouter_nginx_config_valid"
	MetricTenantInfo       = "tenantrouter_tenant_info"
)

// Exporter holds the gauges for one status snapshot.
type Exporter struct {
	registry *prometheus.Registry

	tenants     prometheus.Gauge
	nginxActive prometheus.Gauge
	configValid prometheus.Gauge
	tenantInfo  *prometheus.GaugeVec
}

// NewExporter creates an Exporter with its own registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		tenants: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricTenants,
			Help: "Number of tenant route files in the available directory.",
		}),
		nginxActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricNginxActive,
			Help: "Whether the nginx service is active (1) or not (0).",
		}),
		configValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricNginxConfigValid,
			Help: "Whether nginx -t accepted the configuration (1) or not (0).",
		}),
		tenantInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricTenantInfo,
			Help: "Tenant route metadata; the value is always 1.",
		}, []string{"id", "domain", "port", "enabled"}),
	}

	e.registry.MustRegister(e.tenants, e.nginxActive, e.configValid, e.tenantInfo)
	return e
}

// Observe replaces the gauge values with those of st.
func (e *Exporter) Observe(st *tenant.Status) {
	e.tenants.Set(float64(st.TenantsCount))
	e.nginxActive.Set(boolValue(st.Nginx == tenant.ServiceActive))
	e.configValid.Set(boolValue(st.NginxValid))

	e.tenantInfo.Reset()
	for _, r := range st.Tenants {
		e.tenantInfo.WithLabelValues(r.ID, r.Domain, r.Port, fmt.Sprint(r.Enabled)).Set(1)
	}
}

// WriteTextfile writes the current values to path. The file is written to
// a temporary name and renamed, so a concurrent scrape never sees a
// partial file.
func (e *Exporter) WriteTextfile(path string) error {
	if !strings.HasSuffix(path, ".prom") {
		return fmt.Errorf("metrics file must end in .prom: %s", path)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
