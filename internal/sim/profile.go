package sim

import (
	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
)

// Profile parameterises a Simulation. Play and preview are two profiles of
// the same physics and collision model.
type Profile struct {
	Name string

	Gravity      float64 // base gravity, units/s²
	GravityScale float64
	JumpImpulse  float64
	Coyote       float64 // seconds, 0 disables the window

	RunnerX    float64
	RunnerSize float64
	Ground     float64
	ViewW      float64
	ViewH      float64

	Speed         SpeedCurve
	CullMargin    float64
	DefaultLength float64 // level length used when a level leaves it unset

	Collisions bool // evaluate hazards; a hit ends the run
	Loop       bool // rewind to 0 after the level length
	Cull       bool // drop obstacles far behind the camera
	Particles  bool // emit cosmetic bursts

	Emitter config.Particles

	SkinID    string
	SkinColor core.Color
	Faces     []string
}

// PlayProfile returns the profile used for real runs.
func PlayProfile(cfg config.Config) Profile {
	p := Profile{
		Name:         "play",
		Gravity:      cfg.Physics.Gravity,
		GravityScale: 1,
		JumpImpulse:  cfg.Physics.JumpImpulse,
		Coyote:       cfg.Physics.CoyoteWindow(),
		RunnerX:      cfg.Runner.X,
		RunnerSize:   cfg.Runner.Size,
		Ground:       cfg.Physics.GroundY(),
		ViewW:        cfg.Physics.ViewW,
		ViewH:        cfg.Physics.ViewH,
		Speed: SpeedCurve{
			Base:  cfg.Speed.Base,
			Step:  cfg.Speed.Step,
			Every: cfg.Speed.Every,
		},
		CullMargin:    cfg.Culling.Margin,
		DefaultLength: cfg.Preview.DefaultLength,
		Collisions:    true,
		Cull:       true,
		Particles:  true,
		Emitter:    cfg.Particles,
	}
	return p.WithSkin(cfg.SkinByID(cfg.Runner.Skin))
}

// PreviewProfile returns the profile used by the editor rehearsal: gentler
// gravity, a smaller runner, fixed speed, looping, no collisions.
func PreviewProfile(cfg config.Config) Profile {
	p := Profile{
		Name:         "preview",
		Gravity:      cfg.Physics.Gravity,
		GravityScale: cfg.Preview.GravityScale,
		JumpImpulse:  cfg.Preview.JumpImpulse,
		RunnerX:      cfg.Preview.RunnerX,
		RunnerSize:   cfg.Preview.RunnerSize,
		Ground:       cfg.Physics.GroundY(),
		ViewW:        cfg.Physics.ViewW,
		ViewH:        cfg.Physics.ViewH,
		Speed:         FixedSpeed(cfg.Preview.Speed(cfg.Speed.Base)),
		DefaultLength: cfg.Preview.DefaultLength,
		Loop:          true,
	}
	return p.WithSkin(cfg.SkinByID(cfg.Runner.Skin))
}

// WithSkin returns a copy of p using the given skin.
func (p Profile) WithSkin(s config.Skin) Profile {
	p.SkinID = s.ID
	p.SkinColor = core.ColorOr(s.Color, core.ColorObstacle)
	p.Faces = append([]string(nil), s.Faces...)
	return p
}

// newRunner builds a grounded runner from the profile.
func (p Profile) newRunner() Runner {
	r := Runner{
		X:           p.RunnerX,
		Size:        p.RunnerSize,
		Gravity:     p.Gravity * p.GravityScale,
		JumpImpulse: p.JumpImpulse,
		Coyote:      p.Coyote,
	}
	r.Reset(p.Ground)
	return r
}
