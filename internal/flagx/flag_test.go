package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	configFlags := []string{"-c", "-config"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "config path among client flags",
			args:    []string{"-a", "http://127.0.0.1:8080", "-c", "inventory.json", "-d", "cache.db"},
			allowed: configFlags,
			want:    []string{"-c", "inventory.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=inventory.json", "-l", "debug"},
			allowed: configFlags,
			want:    []string{"-config=inventory.json"},
		},
		{
			name:    "env file next to config file",
			args:    []string{"-env", "dev.env", "-c", "inventory.json"},
			allowed: []string{"-env"},
			want:    []string{"-env", "dev.env"},
		},
		{
			name:    "value starting with dash is not consumed",
			args:    []string{"-c", "-i", "5"},
			allowed: configFlags,
			want:    []string{"-c"},
		},
		{
			name:    "dangling flag kept",
			args:    []string{"-k", "anon", "-c"},
			allowed: configFlags,
			want:    []string{"-c"},
		},
		{
			name:    "equals value may start with dash",
			args:    []string{"-c=-odd.json"},
			allowed: configFlags,
			want:    []string{"-c=-odd.json"},
		},
		{
			name:    "repeated flags keep their order",
			args:    []string{"-config=first.json", "-c", "second.json", "-r", "300"},
			allowed: configFlags,
			want:    []string{"-config=first.json", "-c", "second.json"},
		},
		{
			name:    "several allowed flags",
			args:    []string{"-a", ":9090", "-s", "secret", "-t", "60"},
			allowed: []string{"-a", "-t"},
			want:    []string{"-a", ":9090", "-t", "60"},
		},
		{
			name:    "positional and unknown flags dropped",
			args:    []string{"serve", "-x", "1", "-y=2"},
			allowed: configFlags,
			want:    []string{},
		},
		{
			name:    "no args",
			args:    []string{},
			allowed: configFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	cases := map[string]struct {
		args []string
		want string
	}{
		"short":       {[]string{"inventory", "-c", "/etc/k4j/client.json"}, "/etc/k4j/client.json"},
		"long":        {[]string{"inventory", "-config", "devserver.json", "-r", "0"}, "devserver.json"},
		"absent":      {[]string{"inventory", "-a", "http://x", "-l", "debug"}, ""},
		"last wins":   {[]string{"inventory", "-c", "a.json", "-config", "b.json"}, "b.json"},
		"equals form": {[]string{"inventory", "-c=c.json"}, "c.json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			os.Args = tc.args
			assert.Equal(t, tc.want, JsonConfigFlags())
		})
	}
}

func TestEnvFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", "http://x", "-env", "/path/.env"}
	assert.Equal(t, "/path/.env", EnvFileFlag())

	os.Args = []string{"testbin", "-env=prod.env"}
	assert.Equal(t, "prod.env", EnvFileFlag())

	os.Args = []string{"testbin", "-c", "conf.json"}
	assert.Empty(t, EnvFileFlag())
}
