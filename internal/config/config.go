// Package config provides YAML-based configuration loading and difficulty
// presets for Color Dash.
package config

import "math"

// Config contains all tunables of the game and the editor preview.
type Config struct {
	Physics   Physics   `yaml:"physics"`
	Runner    Runner    `yaml:"runner"`
	Speed     Speed     `yaml:"speed"`
	Culling   Culling   `yaml:"culling"`
	Particles Particles `yaml:"particles"`
	Preview   Preview   `yaml:"preview"`
	Editor    Editor    `yaml:"editor"`
	Scheduler Scheduler `yaml:"scheduler"`
	Skins     []Skin    `yaml:"skins"`
}

// Physics defines the world and vertical motion parameters.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // units/s²
	JumpImpulse float64 `yaml:"jump_impulse"` // units/s, negative is up
	CoyoteMS    int     `yaml:"coyote_ms"`    // grace window after leaving the ground
	ViewW       float64 `yaml:"view_w"`       // virtual viewport width in world units
	ViewH       float64 `yaml:"view_h"`       // virtual viewport height in world units
	GroundRatio float64 `yaml:"ground_ratio"` // ground line as a fraction of ViewH
}

// GroundY returns the ground line in world units.
func (p Physics) GroundY() float64 {
	return math.Round(p.ViewH * p.GroundRatio)
}

// CoyoteWindow returns the coyote window in seconds.
func (p Physics) CoyoteWindow() float64 {
	return float64(p.CoyoteMS) / 1000
}

// Runner defines the player entity.
type Runner struct {
	X    float64 `yaml:"x"`    // fixed screen-space x
	Size float64 `yaml:"size"` // square side
	Skin string  `yaml:"skin"` // skin id from the catalogue
}

// Speed defines the distance-scaled scroll speed:
// speed = Base + floor(distance / Every) * Step.
type Speed struct {
	Base  float64 `yaml:"base"`
	Step  float64 `yaml:"step"`
	Every float64 `yaml:"every"`
}

// Culling defines how far behind the camera obstacles are kept.
type Culling struct {
	Margin float64 `yaml:"margin"`
}

// Particles defines the cosmetic burst emitter.
type Particles struct {
	Burst   int     `yaml:"burst"`
	Gravity float64 `yaml:"gravity"`
	MinVX   float64 `yaml:"min_vx"`
	MaxVX   float64 `yaml:"max_vx"`
	MinVY   float64 `yaml:"min_vy"`
	MaxVY   float64 `yaml:"max_vy"`
	MinLife float64 `yaml:"min_life"`
	MaxLife float64 `yaml:"max_life"`
	MinSize float64 `yaml:"min_size"`
	MaxSize float64 `yaml:"max_size"`
	Max     int     `yaml:"max"` // hard cap on live particles, 0 = unbounded
}

// Preview defines the editor's autopilot rehearsal.
type Preview struct {
	GravityScale  float64 `yaml:"gravity_scale"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	RunnerX       float64 `yaml:"runner_x"`
	RunnerSize    float64 `yaml:"runner_size"`
	SpeedRatio    float64 `yaml:"speed_ratio"` // fraction of Speed.Base
	MinSpeed      float64 `yaml:"min_speed"`
	Lookahead     float64 `yaml:"lookahead"`
	DefaultLength float64 `yaml:"default_length"`
}

// Speed returns the fixed preview scroll speed.
func (p Preview) Speed(base float64) float64 {
	return math.Max(p.MinSpeed, base*p.SpeedRatio)
}

// Editor defines placement rules and the initial tool settings.
type Editor struct {
	MinX        float64 `yaml:"min_x"`         // reserved safe zone at level start
	GapMinWidth float64 `yaml:"gap_min_width"` // gaps narrower than this are widened
	Tool        string  `yaml:"tool"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Color       string  `yaml:"color"`
}

// Scheduler defines the frame driver.
type Scheduler struct {
	FPS        int `yaml:"fps"`
	MaxDeltaMS int `yaml:"max_delta_ms"`
}

// Skin is a cosmetic runner appearance.
type Skin struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Faces []string `yaml:"faces"`
}

// SkinByID looks up a skin, falling back to the first catalogue entry.
func (c Config) SkinByID(id string) Skin {
	for _, s := range c.Skins {
		if s.ID == id {
			return s
		}
	}
	if len(c.Skins) > 0 {
		return c.Skins[0]
	}
	return Skin{ID: "sunny", Name: "Sunny", Color: "#ffd166"}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
