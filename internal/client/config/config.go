package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the gophrecipes CLI.
//
// Durations are time.Duration values; the JSON loader accepts "5m" style
// strings or integer nanoseconds.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string

	TokenSecret string
	TokenTTL    time.Duration
	TokenFormat string

	RecipeAPIBaseURL string
	RecipeAPIKey     string
	RequestTimeout   time.Duration

	RemoteRecipeTTL time.Duration
	PreferencesTTL  time.Duration
	SearchTTL       time.Duration

	CacheBackend string
	RedisAddr    string
	CachePrefix  string

	LogBackend string
	LogLevel   string

	PageSize     int
	SeedDemoUser bool
}

// Supported values for DatabaseDriver, TokenFormat and CacheBackend.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"

	TokenFormatJWT   = "jwt"
	TokenFormatPlain = "plain"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "recipes.db"

	c.TokenSecret = ""
	c.TokenTTL = 24 * time.Hour
	c.TokenFormat = TokenFormatJWT

	c.RecipeAPIBaseURL = "https://api.spoonacular.com"
	c.RecipeAPIKey = ""
	c.RequestTimeout = 10 * time.Second

	c.RemoteRecipeTTL = time.Hour
	c.PreferencesTTL = 5 * time.Minute
	c.SearchTTL = 5 * time.Minute

	c.CacheBackend = CacheMemory
	c.RedisAddr = "127.0.0.1:6379"
	c.CachePrefix = "gophrecipes:"

	c.LogBackend = "slog"
	c.LogLevel = "warn"

	c.PageSize = 6
	c.SeedDemoUser = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env included), a JSON file and command-line flags. Later
// sources take precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg, os.LookupEnv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
