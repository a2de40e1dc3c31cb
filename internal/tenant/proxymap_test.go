package tenant

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/driver"
	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/template"
)

func TestRefreshProxyMap_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.mgr.Generate("t1", "t1", 6001)
	require.NoError(t, err)

	n, err := env.mgr.RefreshProxyMap()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRefreshProxyMap_FollowsRouteChanges(t *testing.T) {
	env := newTestEnv(t)
	mapFile := filepath.Join(t.TempDir(), "conf.d", "tenant_proxy_map.conf")
	env.mgr.cfg.ProxyMapFile = mapFile

	readMap := func() string {
		t.Helper()
		data, err := os.ReadFile(mapFile)
		require.NoError(t, err)
		return string(data)
	}

	_, err := env.mgr.Generate("t1", "t1", 6001)
	require.NoError(t, err)
	_, err = env.mgr.Generate("acme", "acme.example", 6003)
	require.NoError(t, err)

	content := readMap()
	assert.Contains(t, content, "    acme.example.cyzor.local 6003;\n    t1.cyzor.local 6001;\n    default 6001;\n")

	_, err = env.mgr.Disable("t1")
	require.NoError(t, err)
	assert.NotContains(t, readMap(), "t1.cyzor.local 6001;")

	_, err = env.mgr.Enable("t1")
	require.NoError(t, err)
	assert.Contains(t, readMap(), "t1.cyzor.local 6001;")

	n, err := env.mgr.RefreshProxyMap()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRefreshProxyMap_FailureOnlyWarns(t *testing.T) {
	mock := driver.NewMockDriver("/a", "/e")
	mock.ProxyMapFunc = func(path, content string) error {
		return errors.Wrap(errors.ErrCodePermission, "/etc/nginx/conf.d is not writable", nil)
	}
	cfg := config.New()
	cfg.ProxyMapFile = "/etc/nginx/conf.d/tenant_proxy_map.conf"
	mgr := NewManager(cfg, mock, nil, nil)

	_, err := mgr.Generate("t1", "t1", 6001)
	require.NoError(t, err)
	assert.Equal(t, []string{"write t1.cyzor.local", "enable t1.cyzor.local", "list", "write-proxy-map"}, mock.Calls)

	_, err = mgr.RefreshProxyMap()
	assert.True(t, errors.Is(err, errors.ErrPermissionDenied))
}

func TestProxyMapEntries(t *testing.T) {
	route := func(domain, port string, enabled bool) config.Route {
		return config.Route{ID: "x", Domain: domain, Port: port, Enabled: enabled,
			Config: fmt.Sprintf("/a/%s.conf", domain)}
	}

	entries := proxyMapEntries([]config.Route{
		route("a.cyzor.local", "6001", true),
		route("disabled.cyzor.local", "6003", false),
		route(config.Unknown, "6005", true),
		route("noport.cyzor.local", config.Unknown, true),
		route("junk.cyzor.local", "6007/", true),
		route("a.cyzor.local", "6009", true),
		route("b.cyzor.local", "6011", true),
	})

	assert.Equal(t, []template.ProxyMapEntry{
		{Host: "a.cyzor.local", Port: "6001"},
		{Host: "b.cyzor.local", Port: "6011"},
	}, entries)
}
