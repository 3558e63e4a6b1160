package config

import (
	"flag"
	"os"
	"time"

	"github.com/k4jlpg/inventory/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote service
//	-k string   static service key for bootstrap calls
//	-d string   path of the local cache database
//	-s string   path of the settings database
//	-i int      online check interval in seconds
//	-t int      reachability probe timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are read from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-s", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the remote service")
	fs.StringVar(&cfg.ServiceKey, "k", cfg.ServiceKey, "service key")
	fs.StringVar(&cfg.CacheDBPath, "d", cfg.CacheDBPath, "local cache database path")
	fs.StringVar(&cfg.SettingsDBPath, "s", cfg.SettingsDBPath, "settings database path")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	probeTimeout := fs.Int("t", int(cfg.ProbeTimeout.Seconds()), "probe timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
		}
	})
}
