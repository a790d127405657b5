package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProcessConfig describes an external program exposed as a chat command.
type ProcessConfig struct {
	Name        string            `mapstructure:"name" yaml:"name" json:"name"`
	Command     string            `mapstructure:"command" yaml:"command" json:"command"`
	Args        []string          `mapstructure:"args" yaml:"args" json:"args"`
	Environment map[string]string `mapstructure:"env" yaml:"env" json:"env"`
	Description string            `mapstructure:"description" yaml:"description" json:"description"`
	// Admin restricts the command to callers passing the admin check.
	Admin bool `mapstructure:"admin" yaml:"admin" json:"admin"`
	// Timeout bounds one run. Zero uses the runner default.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// ConfigFile is the layout of a tools file.
type ConfigFile struct {
	Tools []ProcessConfig `yaml:"tools" json:"tools"`
}

// LoadTools reads a tools file (YAML or JSON). A missing file yields no tools.
func LoadTools(path string) ([]ProcessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tools config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	tools := make([]ProcessConfig, 0, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		if tool.Name == "" {
			continue
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
