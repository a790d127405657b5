package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Formats(t *testing.T) {
	want := func(cfg *Config) {
		t.Helper()
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "#", cfg.Prefix)
		assert.Equal(t, []string{"u1", "u2"}, cfg.Admins)
		assert.Equal(t, map[string]string{"hi": "!echo hello"}, cfg.Aliases)
		assert.Equal(t, StoreRedis, cfg.Store)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.Equal(t, 90*time.Minute, cfg.Redis.TTL)
		assert.Equal(t, 9090, cfg.HTTP.Port)
		// untouched defaults
		assert.Equal(t, "botcmd:session:", cfg.Redis.Prefix)
	}

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Parse([]byte(`
log_level: debug
prefix: "#"
admins: [u1, u2]
aliases:
  hi: "!echo hello"
store: redis
redis:
  addr: redis:6379
  db: 2
  ttl: 90m
http:
  port: 9090
`), ".yaml")
		require.NoError(t, err)
		want(cfg)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := Parse([]byte(`
log_level = "debug"
prefix = "#"
admins = ["u1", "u2"]
store = "redis"

[aliases]
hi = "!echo hello"

[redis]
addr = "redis:6379"
db = 2
ttl = "1h30m"

[http]
port = 9090
`), ".toml")
		require.NoError(t, err)
		want(cfg)
	})

	t.Run("json", func(t *testing.T) {
		cfg, err := Parse([]byte(`{
  "log_level": "debug",
  "prefix": "#",
  "admins": "u1,u2",
  "aliases": {"hi": "!echo hello"},
  "store": "redis",
  "redis": {"addr": "redis:6379", "db": 2, "ttl": "90m"},
  "http": {"port": 9090}
}`), ".json")
		require.NoError(t, err)
		want(cfg)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "colour: red", "colour"},
		{"bad store", "store: postgres", "unknown store"},
		{"long prefix", "prefix: '!!'", "single character"},
		{"bad port", "http: {port: 70000}", "invalid http port"},
		{"bad yaml", "store: [", "failed to parse yaml"},
		{"bad key", "security: {encryption_key: '%%%'}", "invalid encryption_key"},
		{"nameless tool", "tools: [{command: ls}]", "needs a name"},
		{"orphan fallback", "security: {fallback_keys: [YQ==]}", "require encryption_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), ".yaml")
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("{}"), ".ini")
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("defaults mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bot.yml")
		require.NoError(t, os.WriteFile(path, []byte("store: file\nsession_dir: /tmp/s\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, StoreFile, cfg.Store)
		assert.Equal(t, "/tmp/s", cfg.SessionDir)
		assert.Equal(t, path, cfg.Path)
	})
}

func TestPrefixRune(t *testing.T) {
	cfg := Default()
	assert.Equal(t, '!', cfg.PrefixRune())
	cfg.Prefix = ""
	assert.Equal(t, rune(0), cfg.PrefixRune())
}

func TestLoadAliases(t *testing.T) {
	cfg := Default()
	cfg.Aliases = map[string]string{"b": "!echo b", "a": "!echo a"}

	aliases, err := cfg.LoadAliases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Alias{
		{Name: "a", Command: "!echo a", Source: "config"},
		{Name: "b", Command: "!echo b", Source: "config"},
	}, aliases)
}

func TestSecurityKeys(t *testing.T) {
	active, fallback, err := SecurityConfig{}.Keys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)

	active, fallback, err = SecurityConfig{
		EncryptionKey: "YWJj",
		FallbackKeys:  []string{"ZGVm"},
	}.Keys()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), active)
	assert.Equal(t, [][]byte{[]byte("def")}, fallback)
}

func TestParse_Tools(t *testing.T) {
	cfg, err := Parse([]byte(`
tools:
  - name: uptime
    command: uptime
    admin: true
    timeout: 2s
tools_file: tools.yaml
`), ".yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, "uptime", cfg.Tools[0].Name)
	assert.True(t, cfg.Tools[0].Admin)
	assert.Equal(t, 2*time.Second, cfg.Tools[0].Timeout)
	assert.Equal(t, "tools.yaml", cfg.ToolsFile)
}
