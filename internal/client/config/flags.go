package config

import (
	"flag"

	"github.com/dmitrijs2005/gophrecipes/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   database DSN
//	-r string   redis address; a non-empty value selects the redis cache
//	-l string   log level
//
// args is filtered with flagx.FilterArgs first, so the config file flag and
// anything else on the command line are ignored here.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-d", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	redis := fs.String("r", "", "redis address (enables redis cache)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	if *redis != "" {
		cfg.RedisAddr = *redis
		cfg.CacheBackend = CacheRedis
	}
}
