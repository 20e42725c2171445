package config

import (
	_ "embed"
)

//go:embed defaults/colordash.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Physics: Physics{
			Gravity:     1800,
			JumpImpulse: -620,
			CoyoteMS:    120,
			ViewW:       960,
			ViewH:       540,
			GroundRatio: 0.78,
		},
		Runner: Runner{
			X:    140,
			Size: 56,
			Skin: "sunny",
		},
		Speed: Speed{
			Base:  360,
			Step:  12,
			Every: 1000,
		},
		Culling: Culling{
			Margin: 400,
		},
		Particles: Particles{
			Burst:   18,
			Gravity: 1200,
			MinVX:   -260,
			MaxVX:   260,
			MinVY:   -280,
			MaxVY:   -40,
			MinLife: 0.36,
			MaxLife: 0.9,
			MinSize: 2,
			MaxSize: 6,
			Max:     0,
		},
		Preview: Preview{
			GravityScale:  0.5,
			JumpImpulse:   -380,
			RunnerX:       60,
			RunnerSize:    40,
			SpeedRatio:    0.6,
			MinSpeed:      160,
			Lookahead:     160,
			DefaultLength: 2200,
		},
		Editor: Editor{
			MinX:        200,
			GapMinWidth: 40,
			Tool:        "block",
			Width:       120,
			Height:      80,
			Color:       "#ff6b6b",
		},
		Scheduler: Scheduler{
			FPS:        60,
			MaxDeltaMS: 32,
		},
		Skins: []Skin{
			{ID: "sunny", Name: "Sunny", Color: "#ffd166", Faces: []string{"happy", "wink", "cool"}},
			{ID: "rose", Name: "Rose", Color: "#ff6b6b", Faces: []string{"happy", "determined", "surprised"}},
			{ID: "mint", Name: "Mint", Color: "#7efc6a", Faces: []string{"happy", "cool"}},
			{ID: "violet", Name: "Violet", Color: "#9b8cff", Faces: []string{"determined", "wink"}},
			{ID: "classic", Name: "Classic", Color: "#4cc0ff", Faces: []string{"happy", "surprised", "wink", "cool"}},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
