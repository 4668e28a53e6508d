package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvAPIKey         = "SPOONACULAR_API_KEY"
	EnvDatabaseDriver = "RECIPES_DATABASE_DRIVER"
	EnvDatabaseDSN    = "RECIPES_DATABASE_DSN"
	EnvTokenSecret    = "RECIPES_TOKEN_SECRET"
	EnvCacheBackend   = "RECIPES_CACHE_BACKEND"
	EnvRedisAddr      = "RECIPES_REDIS_ADDR"
	EnvLogBackend     = "RECIPES_LOG_BACKEND"
	EnvLogLevel       = "RECIPES_LOG_LEVEL"
)

// loadDotEnv copies variables from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with non-empty values returned by lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(EnvAPIKey, &cfg.RecipeAPIKey)
	set(EnvDatabaseDriver, &cfg.DatabaseDriver)
	set(EnvDatabaseDSN, &cfg.DatabaseDSN)
	set(EnvTokenSecret, &cfg.TokenSecret)
	set(EnvCacheBackend, &cfg.CacheBackend)
	set(EnvRedisAddr, &cfg.RedisAddr)
	set(EnvLogBackend, &cfg.LogBackend)
	set(EnvLogLevel, &cfg.LogLevel)
}
