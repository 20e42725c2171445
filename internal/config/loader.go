package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "colordash.yaml"

// Load loads the Color Dash configuration.
// Search order: customPath -> ~/.colordash/configs/colordash.yaml -> ./configs/colordash.yaml -> embedded default
// Keys missing from a file keep their built-in values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Physics.ViewW <= 0 || c.Physics.ViewH <= 0:
		return fmt.Errorf("physics: view size must be positive")
	case c.Physics.GroundRatio <= 0 || c.Physics.GroundRatio > 1:
		return fmt.Errorf("physics: ground_ratio must be in (0, 1]")
	case c.Physics.CoyoteMS < 0:
		return fmt.Errorf("physics: coyote_ms must not be negative")
	case c.Runner.Size <= 0:
		return fmt.Errorf("runner: size must be positive")
	case c.Speed.Every <= 0:
		return fmt.Errorf("speed: every must be positive")
	case c.Particles.Burst < 0 || c.Particles.Max < 0:
		return fmt.Errorf("particles: burst and max must not be negative")
	case c.Preview.RunnerSize <= 0:
		return fmt.Errorf("preview: runner_size must be positive")
	case c.Preview.DefaultLength <= 0:
		return fmt.Errorf("preview: default_length must be positive")
	case c.Scheduler.MaxDeltaMS <= 0:
		return fmt.Errorf("scheduler: max_delta_ms must be positive")
	case c.Scheduler.FPS <= 0:
		return fmt.Errorf("scheduler: fps must be positive")
	}
	return nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colordash", "configs", filename)
}
