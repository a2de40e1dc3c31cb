package tenant

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/driver"
)

const (
	serverNameMarker = "server_name"
	proxyPassMarker  = "proxy_pass"
	localBackend     = "http://localhost"
	idMarker         = "# ID:"
)

// ParseRoute re-derives a route from the text of a generated config file.
// Fields whose marker line is missing are set to config.Unknown, except the
// id, which falls back to the file name without its extension.
func ParseRoute(path, content string) config.Route {
	route := config.Route{
		ID:     config.Unknown,
		Domain: config.Unknown,
		Port:   config.Unknown,
		Config: path,
	}

	var domainSeen, portSeen, idSeen bool
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()

		if !domainSeen && strings.Contains(line, serverNameMarker) {
			domainSeen = true
			if fields := strings.Fields(line); len(fields) > 1 && strings.TrimRight(fields[1], ";") != "" {
				route.Domain = strings.TrimRight(fields[1], ";")
			}
		}

		if !portSeen && strings.Contains(line, proxyPassMarker) && strings.Contains(line, localBackend) {
			portSeen = true
			// The directive ends at the first ";", whatever follows on the line.
			directive, _, _ := strings.Cut(line, ";")
			port := directive[strings.LastIndex(directive, ":")+1:]
			if port = strings.Trim(strings.TrimSpace(port), `'"`); port != "" {
				route.Port = port
			}
		}

		if !idSeen && strings.Contains(line, idMarker) {
			idSeen = true
			// Only the first colon-delimited field after the marker is the id.
			if parts := strings.Split(line, ":"); strings.TrimSpace(parts[1]) != "" {
				route.ID = strings.TrimSpace(parts[1])
			}
		}

		if domainSeen && portSeen && idSeen {
			break
		}
	}

	if !idSeen {
		route.ID = strings.TrimSuffix(filepath.Base(path), driver.ConfigExt)
	}
	return route
}
