// Package config loads runtime configuration for the inventory client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed INVENTORY_ (see parseEnv), optionally
//     read from a dotenv file given with -env (default ./.env if present).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote service
//	-k string   service key
//	-d string   local cache database path
//	-s string   settings database path
//	-i int      online status check interval (seconds)
//	-t int      reachability probe timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "service_key": "anon-key",
//	  "cache_db_path": "k4j_cache.db",
//	  "settings_db_path": "/home/me/.k4j_lpg/settings.db",
//	  "probe_timeout": "2s",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "hash_credentials": false,
//	  "log_backend": "zap",
//	  "log_level": "debug"
//	}
//
// Invalid input in any source panics; LoadConfig is meant to run once at
// startup.
package config
