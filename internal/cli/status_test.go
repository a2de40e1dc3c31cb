package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksyq12/tenantrouter/internal/tenant"
)

func TestRunStatus(t *testing.T) {
	t.Run("active and valid", func(t *testing.T) {
		h := NewTestHelper(t)
		require.NoError(t, execute("setup", "t1", "t1", "6001"))

		h.Out.Reset()
		require.NoError(t, execute("status"))

		var st tenant.Status
		require.NoError(t, json.Unmarshal(h.Out.Bytes(), &st))
		assert.Equal(t, "active", st.Nginx)
		assert.True(t, st.NginxValid)
		assert.Equal(t, 1, st.TenantsCount)
		require.Len(t, st.Tenants, 1)
		assert.Equal(t, "t1.cyzor.local", st.Tenants[0].Domain)

		assert.Empty(t, h.Metrics.Paths, "no metrics file configured")
	})

	t.Run("inactive and invalid", func(t *testing.T) {
		h := NewTestHelper(t)
		h.SetCommandResults(false, false)

		require.NoError(t, execute("status"), "status reports, it does not fail")

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(h.Out.Bytes(), &raw))
		assert.Equal(t, "inactive", raw["nginx"])
		assert.Equal(t, false, raw["nginx_valid"])
		assert.Equal(t, float64(0), raw["tenants_count"])
		assert.Equal(t, []interface{}{}, raw["tenants"])
	})

	t.Run("metrics file from flag", func(t *testing.T) {
		h := NewTestHelper(t)

		require.NoError(t, execute("status", "--metrics-file", "/tmp/tenantrouter.prom"))
		assert.Equal(t, []string{"/tmp/tenantrouter.prom"}, h.Metrics.Paths)
		require.NotNil(t, h.Metrics.Last)
		assert.Equal(t, "active", h.Metrics.Last.Nginx)
	})

	t.Run("metrics file from config", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Cfg.MetricsFile = "/var/lib/node_exporter/tenantrouter.prom"

		require.NoError(t, execute("status"))
		assert.Equal(t, []string{"/var/lib/node_exporter/tenantrouter.prom"}, h.Metrics.Paths)
	})

	t.Run("metrics write failure only warns", func(t *testing.T) {
		h := NewTestHelper(t)
		h.Metrics.Err = errors.New("read-only file system")

		require.NoError(t, execute("status", "--metrics-file", "/tmp/tenantrouter.prom"))
		assert.Contains(t, h.Out.String(), `"nginx": "active"`)
	})
}
