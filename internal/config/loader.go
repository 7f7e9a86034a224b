package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSoundless loads the configuration for a mode.
// Search order: customPath -> ~/.soundless/configs/<mode>.yaml ->
// ./configs/<mode>.yaml -> embedded default -> hardcoded default.
//
// Files are layered over the defaults of the mode they declare, so a file
// only needs the keys it changes. The result is always normalized.
func LoadSoundless(customPath string, mode Mode) (SoundlessConfig, error) {
	if mode != ModeSwarm {
		mode = ModeStages
	}
	filename := string(mode) + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(mode), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data, mode)
		if err != nil {
			return Default(mode), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, mode); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := parse(data, mode); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(GetDefaultYAML(mode), mode)
	if err != nil {
		cfg = Default(mode) // Fallback to hardcoded if embed fails
		cfg.Normalize()
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults of the mode it declares,
// falling back to the given mode when the document names none.
func Parse(data []byte, mode Mode) (SoundlessConfig, error) {
	return parse(data, mode)
}

func parse(data []byte, mode Mode) (SoundlessConfig, error) {
	var header struct {
		Mode Mode `yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return SoundlessConfig{}, err
	}
	if header.Mode == ModeStages || header.Mode == ModeSwarm {
		mode = header.Mode
	}

	cfg := Default(mode)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SoundlessConfig{}, err
	}
	cfg.Mode = mode
	cfg.Normalize()
	return cfg, nil
}

// Marshal encodes a configuration back to YAML.
func Marshal(cfg SoundlessConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".soundless", "configs", filename)
}
