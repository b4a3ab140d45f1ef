package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile overlays settings from a YAML config file onto an existing Config.
// Only fields present in the file override the base values; environment
// variables inside values are expanded.
func LoadFile(base *Config, configPath string) (*Config, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	merged := *base
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &merged); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &merged, nil
}
