package sim

import (
	"math/rand"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
)

// ParticleKind selects the colour of a burst.
type ParticleKind int

const (
	ParticleBurst ParticleKind = iota // crash, white
	ParticleJump                      // jump, tinted with the skin colour
	ParticleLand                      // landing dust, white
)

// Particle is a short-lived cosmetic square in world space.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // seconds left
	Size   float64
	Color  core.Color
}

// Pool owns the live particles of one simulation.
type Pool struct {
	cfg   config.Particles
	rng   *rand.Rand
	tint  core.Color
	items []Particle
}

// NewPool creates an empty pool. tint is used for jump bursts.
func NewPool(cfg config.Particles, tint core.Color, rng *rand.Rand) *Pool {
	return &Pool{cfg: cfg, tint: tint, rng: rng}
}

func (p *Pool) between(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}

// Spawn emits one burst at (x, y).
func (p *Pool) Spawn(x, y float64, kind ParticleKind) {
	c := core.ColorWhite
	if kind == ParticleJump {
		c = p.tint
	}
	for i := 0; i < p.cfg.Burst; i++ {
		p.items = append(p.items, Particle{
			X:     x,
			Y:     y,
			VX:    p.between(p.cfg.MinVX, p.cfg.MaxVX),
			VY:    p.between(p.cfg.MinVY, p.cfg.MaxVY),
			Life:  p.between(p.cfg.MinLife, p.cfg.MaxLife),
			Size:  p.between(p.cfg.MinSize, p.cfg.MaxSize),
			Color: c,
		})
	}
	if p.cfg.Max > 0 && len(p.items) > p.cfg.Max {
		// Oldest particles go first.
		p.items = append(p.items[:0], p.items[len(p.items)-p.cfg.Max:]...)
	}
}

// Step ages and moves every particle, then drops the expired ones.
func (p *Pool) Step(dt float64) {
	live := p.items[:0]
	for _, pt := range p.items {
		pt.Life -= dt
		pt.X += pt.VX * dt
		pt.Y += pt.VY * dt
		pt.VY += p.cfg.Gravity * dt
		if pt.Life > 0 {
			live = append(live, pt)
		}
	}
	clear(p.items[len(live):])
	p.items = live
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return len(p.items)
}

// Particles returns a copy of the live particles.
func (p *Pool) Particles() []Particle {
	out := make([]Particle, len(p.items))
	copy(out, p.items)
	return out
}

// Clear drops every particle.
func (p *Pool) Clear() {
	p.items = p.items[:0]
}
