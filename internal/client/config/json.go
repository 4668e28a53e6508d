package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophrecipes/internal/flagx"
	"github.com/dmitrijs2005/gophrecipes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero", so a partial file only overrides
// what it names. The API key is deliberately not read from JSON.
type JsonConfig struct {
	DatabaseDriver *string `json:"database_driver"`
	DatabaseDSN    *string `json:"database_dsn"`

	TokenSecret *string         `json:"token_secret"`
	TokenTTL    *timex.Duration `json:"token_ttl"`
	TokenFormat *string         `json:"token_format"`

	RecipeAPIBaseURL *string         `json:"recipe_api_base_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`

	RemoteRecipeTTL *timex.Duration `json:"remote_recipe_ttl"`
	PreferencesTTL  *timex.Duration `json:"preferences_ttl"`
	SearchTTL       *timex.Duration `json:"search_ttl"`

	CacheBackend *string `json:"cache_backend"`
	RedisAddr    *string `json:"redis_addr"`
	CachePrefix  *string `json:"cache_prefix"`

	LogBackend *string `json:"log_backend"`
	LogLevel   *string `json:"log_level"`

	PageSize     *int  `json:"page_size"`
	SeedDemoUser *bool `json:"seed_demo_user"`
}

// parseJson overlays cfg with values loaded from the JSON file named by -c
// or -config in args. Without either flag it does nothing. Read and decode
// errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	str := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	str(jc.DatabaseDriver, &cfg.DatabaseDriver)
	str(jc.DatabaseDSN, &cfg.DatabaseDSN)
	str(jc.TokenSecret, &cfg.TokenSecret)
	str(jc.TokenFormat, &cfg.TokenFormat)
	str(jc.RecipeAPIBaseURL, &cfg.RecipeAPIBaseURL)
	str(jc.CacheBackend, &cfg.CacheBackend)
	str(jc.RedisAddr, &cfg.RedisAddr)
	str(jc.CachePrefix, &cfg.CachePrefix)
	str(jc.LogBackend, &cfg.LogBackend)
	str(jc.LogLevel, &cfg.LogLevel)

	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RemoteRecipeTTL != nil {
		cfg.RemoteRecipeTTL = jc.RemoteRecipeTTL.Duration
	}
	if jc.PreferencesTTL != nil {
		cfg.PreferencesTTL = jc.PreferencesTTL.Duration
	}
	if jc.SearchTTL != nil {
		cfg.SearchTTL = jc.SearchTTL.Duration
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.SeedDemoUser != nil {
		cfg.SeedDemoUser = *jc.SeedDemoUser
	}
}
