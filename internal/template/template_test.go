package template

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	created := time.Date(2026, 10, 19, 10, 30, 45, 0, time.UTC)
	data := NewTemplateData("acme", "acme.example.cyzor.local", 6003, created)

	result, err := Render("nginx", data)
	require.NoError(t, err)

	for _, expected := range []string{
		"# Tenant: acme.example.cyzor.local",
		"# ID: acme",
		"# Port: 6003",
		"# Created: 2026-10-19T10:30:45Z",
		"listen 80;",
		"server_name acme.example.cyzor.local;",
		"proxy_pass http://localhost:6003;",
		"proxy_set_header Host $host;",
		"proxy_set_header X-Real-IP $remote_addr;",
		"proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;",
		"proxy_set_header X-Forwarded-Proto $scheme;",
		"proxy_http_version 1.1;",
		"proxy_buffering off;",
		"proxy_request_buffering off;",
		"location /health {",
		"proxy_pass http://localhost:6003/;",
		"access_log off;",
	} {
		assert.Contains(t, result, expected)
	}
}

func TestRenderPrimaryProxyComesFirst(t *testing.T) {
	result, err := Render("nginx", NewTemplateData("t1", "t1.cyzor.local", 6001, time.Now()))
	require.NoError(t, err)

	primary := strings.Index(result, "proxy_pass http://localhost:6001;")
	health := strings.Index(result, "proxy_pass http://localhost:6001/;")
	require.NotEqual(t, -1, primary)
	require.NotEqual(t, -1, health)
	assert.Less(t, primary, health)
}

func TestRenderInvalidDriver(t *testing.T) {
	_, err := Render("apache", NewTemplateData("t1", "t1.cyzor.local", 6001, time.Now()))
	assert.Error(t, err)
}

func TestRenderProxyMap(t *testing.T) {
	data := NewProxyMapData([]ProxyMapEntry{
		{Host: "acme.example.cyzor.local", Port: "6003"},
		{Host: "t1.cyzor.local", Port: "6001"},
	}, 6001, ".cyzor.local")

	result, err := RenderProxyMap("nginx", data)
	require.NoError(t, err)

	assert.Contains(t, result, "map $http_host $backend_pool {\n"+
		"    acme.example.cyzor.local 6003;\n"+
		"    t1.cyzor.local 6001;\n"+
		"    default 6001;\n"+
		"}\n")
	assert.Contains(t, result, `server_name ~^.*\.cyzor\.local$ localhost;`)
	assert.Contains(t, result, "listen 80 default_server;")
	assert.Contains(t, result, "proxy_pass http://127.0.0.1:$backend_pool;")
}

func TestRenderProxyMapEmpty(t *testing.T) {
	result, err := RenderProxyMap("nginx", NewProxyMapData(nil, 7001, "tenants.test"))
	require.NoError(t, err)
	assert.Contains(t, result, "map $http_host $backend_pool {\n    default 7001;\n}\n")
	assert.Contains(t, result, `~^.*\.tenants\.test$`)
}
