package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHeist loads the heist configuration.
// Search order: customPath -> ~/.heist/configs/heist.yaml -> ./configs/heist.yaml -> embedded default.
// Files are overlaid on the defaults, so a partial file only overrides the keys it sets.
func LoadHeist(customPath string) (HeistConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HeistConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return HeistConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("heist.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "heist.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultHeistYAML)
	if err != nil {
		return DefaultHeistConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults and validates the result.
func Parse(data []byte) (HeistConfig, error) {
	cfg := DefaultHeistConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HeistConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return HeistConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a config back to YAML (used by `heist config`).
func Marshal(cfg HeistConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".heist", "configs", filename)
}
