// Package config loads the bot configuration from YAML, TOML or JSON files.
package config

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/botcmd/pkg/adapters/process"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// DefaultFiles are tried in order when no config path is given.
var DefaultFiles = []string{"botcmd.yaml", "botcmd.yml", "botcmd.toml", "botcmd.json"}

// Config is the bot configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// Prefix is the character that introduces a command.
	Prefix string `mapstructure:"prefix" json:"prefix"`
	// Admins lists the sender IDs that pass the admin check.
	Admins []string `mapstructure:"admins" json:"admins"`
	// Aliases maps alias names to command lines.
	Aliases map[string]string `mapstructure:"aliases" json:"aliases"`
	// AliasDir is a Loam repository of alias documents.
	AliasDir string `mapstructure:"alias_dir" json:"alias_dir"`

	// Tools are external programs registered as commands.
	Tools []process.ProcessConfig `mapstructure:"tools" json:"tools"`
	// ToolsFile is a YAML or JSON file of additional tools.
	ToolsFile string `mapstructure:"tools_file" json:"tools_file"`
	// ToolsDir is the working directory of tool processes.
	ToolsDir string `mapstructure:"tools_dir" json:"tools_dir"`

	Store      string      `mapstructure:"store" json:"store"`
	SessionDir string      `mapstructure:"session_dir" json:"session_dir"`
	Redis      RedisConfig `mapstructure:"redis" json:"redis"`
	HTTP       HTTPConfig  `mapstructure:"http" json:"http"`

	// Security configures how sessions are written to the store.
	Security SecurityConfig `mapstructure:"security" json:"security"`

	// Path is the file the config was read from, empty for defaults.
	Path string `mapstructure:"-" json:"-"`
}

// RedisConfig configures the redis session store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"password"`
	DB       int           `mapstructure:"db" json:"db"`
	Prefix   string        `mapstructure:"prefix" json:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Port int `mapstructure:"port" json:"port"`
}

// SecurityConfig configures session encryption and redaction.
type SecurityConfig struct {
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption.
	EncryptionKey string `mapstructure:"encryption_key" json:"encryption_key"`
	// FallbackKeys are older base64 keys still accepted when loading.
	FallbackKeys []string `mapstructure:"fallback_keys" json:"fallback_keys"`
	// RedactVariables are regular expressions; matching variable values are
	// masked before they are stored.
	RedactVariables []string `mapstructure:"redact_variables" json:"redact_variables"`
}

// Keys decodes the configured keys. It returns a nil active key when
// encryption is disabled.
func (s SecurityConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback_keys require encryption_key")
		}
		return nil, nil, nil
	}
	active, err = base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fallback key %d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Prefix:     "!",
		Aliases:    map[string]string{},
		Store:      StoreMemory,
		SessionDir: filepath.Join(".botcmd", "sessions"),
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "botcmd:session:",
		},
		HTTP: HTTPConfig{Port: 8080},
	}
}

// Load reads the config at path. An empty path tries DefaultFiles in the
// working directory. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".toml", ".json")
// on top of the defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	raw := map[string]any{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want memory, file or redis)", c.Store)
	}
	if utf8.RuneCountInString(c.Prefix) > 1 {
		return fmt.Errorf("prefix must be a single character, got %q", c.Prefix)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	for i, tool := range c.Tools {
		if tool.Name == "" || tool.Command == "" {
			return fmt.Errorf("tool %d needs a name and a command", i)
		}
	}
	if _, _, err := c.Security.Keys(); err != nil {
		return err
	}
	return nil
}

// PrefixRune returns the command prefix, or 0 when disabled.
func (c *Config) PrefixRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Prefix)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// LoadAliases returns the configured aliases sorted by name.
// It implements ports.AliasLoader.
func (c *Config) LoadAliases(ctx context.Context) ([]domain.Alias, error) {
	names := make([]string, 0, len(c.Aliases))
	for name := range c.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	source := "config"
	if c.Path != "" {
		source = "config:" + c.Path
	}
	aliases := make([]domain.Alias, 0, len(names))
	for _, name := range names {
		aliases = append(aliases, domain.Alias{
			Name:    name,
			Command: c.Aliases[name],
			Source:  source,
		})
	}
	return aliases, nil
}
