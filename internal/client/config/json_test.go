package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_driver":   "pgx",
		"database_dsn":      "postgres://localhost/recipes",
		"remote_recipe_ttl": "30m",
		"search_ttl":        int64(2 * time.Minute),
		"page_size":         12,
		"seed_demo_user":    false,
	})

	t.Run("overlays named fields only", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
		assert.Equal(t, "postgres://localhost/recipes", cfg.DatabaseDSN)
		assert.Equal(t, 30*time.Minute, cfg.RemoteRecipeTTL)
		assert.Equal(t, 2*time.Minute, cfg.SearchTTL)
		assert.Equal(t, 12, cfg.PageSize)
		assert.False(t, cfg.SeedDemoUser)

		assert.Equal(t, 5*time.Minute, cfg.PreferencesTTL)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("no flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{DatabaseDSN: "defaults.db"}
		parseJson(cfg, []string{"-d", "x.db"})

		assert.Equal(t, "defaults.db", cfg.DatabaseDSN)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
