package sim

import "github.com/vovakirdan/color-dash/internal/core"

// Runner is the player-controlled square. X is a fixed screen-space offset
// from the camera; Y grows downward and is clamped to the ground line.
type Runner struct {
	X              float64 // screen-space x, constant for the life of a run
	Y              float64 // top edge
	VY             float64 // vertical velocity, negative is up
	Size           float64 // side length
	OnGround       bool    // resting on the ground line
	CoyoteDeadline float64 // frame-clock time until which a jump is still honoured

	Gravity     float64 // effective gravity (base gravity times profile scale)
	JumpImpulse float64 // VY applied on jump
	Coyote      float64 // coyote window in seconds
}

// Reset puts the runner back on the ground with no velocity.
func (r *Runner) Reset(ground float64) {
	r.Y = ground - r.Size
	r.VY = 0
	r.OnGround = true
	r.CoyoteDeadline = 0
}

// Step integrates one frame with semi-implicit Euler and clamps the runner
// to the ground. now is the simulation clock after this frame's dt was
// added. Reports whether the runner landed this frame.
func (r *Runner) Step(dt, now, ground float64) (landed bool) {
	if r.OnGround {
		r.CoyoteDeadline = now + r.Coyote
	}

	r.VY += r.Gravity * dt
	r.Y += r.VY * dt

	if r.Y+r.Size >= ground {
		landed = !r.OnGround
		r.Y = ground - r.Size
		r.VY = 0
		r.OnGround = true
		return landed
	}

	r.OnGround = false
	return false
}

// CanJump reports whether a jump issued at now would be honoured.
func (r *Runner) CanJump(now float64) bool {
	return r.OnGround || now < r.CoyoteDeadline
}

// Jump applies the jump impulse if the runner is grounded or still inside
// its coyote window. A successful jump consumes the window.
func (r *Runner) Jump(now float64) bool {
	if !r.CanJump(now) {
		return false
	}
	r.VY = r.JumpImpulse
	r.OnGround = false
	r.CoyoteDeadline = now
	return true
}

// Rect returns the runner bounds in screen space.
func (r *Runner) Rect() core.Rect {
	return core.NewRect(r.X, r.Y, r.Size, r.Size)
}

// WorldRect returns the runner bounds in world space for the given camera.
func (r *Runner) WorldRect(cameraX float64) core.Rect {
	return r.Rect().Translate(cameraX, 0)
}
