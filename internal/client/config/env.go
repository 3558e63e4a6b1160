package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/k4jlpg/inventory/internal/flagx"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "INVENTORY_"

const defaultEnvFile = ".env"

// parseEnv overlays Config with INVENTORY_* variables. Values come from the
// dotenv file named by -env (or ./.env when present) and from the process
// environment, which wins over the file. It panics on a malformed file or
// value.
func parseEnv(cfg *Config) {
	vars := readEnvFile()
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	applyEnv(cfg, vars)
}

func readEnvFile() map[string]string {
	path := flagx.EnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}
		}
		panic(err)
	}
	return vars
}

func applyEnv(cfg *Config, vars map[string]string) {
	get := func(name string) (string, bool) {
		v, ok := vars[EnvPrefix+name]
		return v, ok && v != ""
	}

	if v, ok := get("API_BASE_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := get("SERVICE_KEY"); ok {
		cfg.ServiceKey = v
	}
	if v, ok := get("CACHE_DB_PATH"); ok {
		cfg.CacheDBPath = v
	}
	if v, ok := get("SETTINGS_DB_PATH"); ok {
		cfg.SettingsDBPath = v
	}
	if v, ok := get("PROBE_TIMEOUT"); ok {
		cfg.ProbeTimeout = mustDuration(v)
	}
	if v, ok := get("REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := get("ONLINE_CHECK_INTERVAL"); ok {
		cfg.OnlineCheckInterval = mustDuration(v)
	}
	if v, ok := get("HASH_CREDENTIALS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.HashCredentials = b
	}
	if v, ok := get("LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
