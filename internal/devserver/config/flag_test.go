package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-s", "secret", "-k", "anon", "-t", "5", "-r", "10", "-l", "warn",
		}, expectPanic: false,
			expected: &Config{
				ListenAddr:                  "127.0.0.1:9090",
				SecretKey:                   "secret",
				ServiceKey:                  "anon",
				AccessTokenValidityDuration: 5 * time.Minute,
				RequestsPerMinute:           10,
				LogLevel:                    "warn",
			}},
		{name: "unset duration keeps value", args: []string{"cmd", "-a", ":1"}, expectPanic: false,
			expected: &Config{ListenAddr: ":1", AccessTokenValidityDuration: 30 * time.Second}},
		{name: "bad rate", args: []string{"cmd", "-r", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{AccessTokenValidityDuration: 30 * time.Second}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
