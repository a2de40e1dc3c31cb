package tenant

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksyq12/tenantrouter/internal/config"
)

func TestRecordStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "routes")
	store := NewRecordStore(dir)
	require.NotNil(t, store)

	t.Run("load missing", func(t *testing.T) {
		rec, err := store.Load("t1.cyzor.local")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("save and load", func(t *testing.T) {
		created := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
		require.NoError(t, store.Save(&Record{
			ID:        "t1",
			Domain:    "t1.cyzor.local",
			Port:      6001,
			Config:    "/etc/nginx/sites-available/t1.cyzor.local.conf",
			CreatedAt: created,
		}))

		data, err := os.ReadFile(filepath.Join(dir, "t1.cyzor.local.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "port: 6001")

		rec, err := store.Load("t1.cyzor.local")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "t1", rec.ID)
		assert.Equal(t, 6001, rec.Port)
		assert.True(t, created.Equal(rec.CreatedAt))
	})

	t.Run("malformed record", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cyzor.local.yaml"), []byte("port: [\n"), 0644))
		_, err := store.Load("bad.cyzor.local")
		assert.Error(t, err)
	})

	t.Run("path-like domain rejected", func(t *testing.T) {
		err := store.Save(&Record{Domain: "../escape"})
		assert.Error(t, err)
	})
}

func TestRecordStore_Nil(t *testing.T) {
	store := NewRecordStore("")
	assert.Nil(t, store)
	assert.NoError(t, store.Save(&Record{Domain: "t1.cyzor.local"}))

	rec, err := store.Load("t1.cyzor.local")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecordFill(t *testing.T) {
	rec := &Record{ID: "acme", Domain: "acme.cyzor.local", Port: 6003}

	route := config.Route{ID: "hand-edited", Domain: config.Unknown, Port: config.Unknown}
	rec.fill(&route)
	assert.Equal(t, "hand-edited", route.ID)
	assert.Equal(t, "acme.cyzor.local", route.Domain)
	assert.Equal(t, "6003", route.Port)
}
