// Package config loads runtime configuration for the gophrecipes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then process environment.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database DSN (file path for sqlite, URL for pgx)
//	-r string   redis address; also switches the cache backend to redis
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	SPOONACULAR_API_KEY      recipe provider key
//	RECIPES_DATABASE_DRIVER  sqlite or pgx
//	RECIPES_DATABASE_DSN
//	RECIPES_TOKEN_SECRET
//	RECIPES_CACHE_BACKEND    memory or redis
//	RECIPES_REDIS_ADDR
//	RECIPES_LOG_BACKEND      slog or zap
//	RECIPES_LOG_LEVEL
//
// # JSON schema
//
// Durations use timex.Duration, so "5m" and integer nanoseconds both work.
// Absent keys leave the current value untouched.
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "recipes.db",
//	  "token_format": "jwt",
//	  "token_ttl": "24h",
//	  "recipe_api_base_url": "https://api.spoonacular.com",
//	  "request_timeout": "10s",
//	  "remote_recipe_ttl": "1h",
//	  "preferences_ttl": "5m",
//	  "search_ttl": "5m",
//	  "cache_backend": "memory",
//	  "redis_addr": "127.0.0.1:6379",
//	  "cache_prefix": "gophrecipes:",
//	  "log_backend": "slog",
//	  "log_level": "warn",
//	  "page_size": 6,
//	  "seed_demo_user": true
//	}
package config
