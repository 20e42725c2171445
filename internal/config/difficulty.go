package config

import "fmt"

// ParsePreset converts a flag value to a DifficultyPreset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	case "":
		return DifficultyNormal, nil
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q", s)
}

// ApplyPreset modifies the speed curve based on a difficulty preset.
// Normal leaves the configured curve untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base *= 0.85
		cfg.Speed.Step *= 0.5
	case DifficultyHard:
		cfg.Speed.Base *= 1.2
		cfg.Speed.Step *= 1.5
	case DifficultyFixed:
		cfg.Speed.Step = 0
	}
}
