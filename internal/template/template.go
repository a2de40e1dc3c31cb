package template

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"
)

const (
	tenantTemplate   = "tenant"
	proxyMapTemplate = "proxy_map"
)

// TemplateData contains data for rendering templates
type TemplateData struct {
	TenantID  string
	Domain    string
	Port      int
	CreatedAt string
}

// NewTemplateData builds the data for one route, stamping createdAt as RFC 3339.
func NewTemplateData(tenantID, domain string, port int, createdAt time.Time) TemplateData {
	return TemplateData{
		TenantID:  tenantID,
		Domain:    domain,
		Port:      port,
		CreatedAt: createdAt.Format(time.RFC3339),
	}
}

// ProxyMapEntry maps one Host header value to a backend port.
type ProxyMapEntry struct {
	Host string
	Port string
}

// ProxyMapData contains data for the host-to-port map file
type ProxyMapData struct {
	Entries       []ProxyMapEntry
	DefaultPort   int
	FallbackNames string
}

// NewProxyMapData builds the map data. Unmatched hosts under suffix, and
// localhost, fall through to defaultPort.
func NewProxyMapData(entries []ProxyMapEntry, defaultPort int, suffix string) ProxyMapData {
	suffix = strings.Trim(suffix, ".")
	return ProxyMapData{
		Entries:       entries,
		DefaultPort:   defaultPort,
		FallbackNames: fmt.Sprintf(`~^.*\.%s$ localhost`, regexp.QuoteMeta(suffix)),
	}
}

// Render renders the tenant route template for the given driver
func Render(driverName string, data TemplateData) (string, error) {
	return render(driverName, tenantTemplate, data)
}

// RenderProxyMap renders the host-to-port map file for the given driver
func RenderProxyMap(driverName string, data ProxyMapData) (string, error) {
	return render(driverName, proxyMapTemplate, data)
}

func render(driverName, name string, data interface{}) (string, error) {
	fs, err := getTemplateFS(driverName)
	if err != nil {
		return "", err
	}

	tmplPath := fmt.Sprintf("%s/%s.tmpl", driverName, name)
	content, err := fs.ReadFile(tmplPath)
	if err != nil {
		return "", fmt.Errorf("template not found: %s/%s", driverName, name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
