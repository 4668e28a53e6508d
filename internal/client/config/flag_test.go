package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:     "dsn and log level",
			args:     []string{"-d", "other.db", "-l", "debug"},
			expected: &Config{DatabaseDSN: "other.db", LogLevel: "debug", CacheBackend: CacheMemory},
		},
		{
			name:     "redis address switches backend",
			args:     []string{"-r", "10.0.0.1:6379", "-c", "ignored.json"},
			expected: &Config{RedisAddr: "10.0.0.1:6379", CacheBackend: CacheRedis},
		},
		{
			name:        "flag without value",
			args:        []string{"-d"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CacheBackend: CacheMemory}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
