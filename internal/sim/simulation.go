// Package sim implements the Color Dash runtime: a deterministic per-frame
// physics, collision and scrolling model. The same Simulation type drives
// both real play and the editor's looping autopilot preview; the differences
// live in a Profile and a Controller.
//
// A Simulation is not safe for concurrent use. The front-end steps it from a
// single goroutine.
package sim

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
)

// ErrNoLevel is returned by Restart before any level was started.
var ErrNoLevel = errors.New("sim: no level loaded")

// Simulation is one independent game instance.
type Simulation struct {
	profile Profile
	ctrl    Controller
	rng     *rand.Rand

	level    level.Level
	hasLevel bool

	obstacles []Obstacle
	runner    Runner
	particles *Pool
	face      string

	cameraX  float64
	distance float64
	speed    float64
	clock    float64 // sum of stepped dt, used for the coyote window
	loops    int

	alive   bool
	running bool
}

// New creates an idle simulation. Call Start to load a level.
func New(p Profile, c Controller, seed int64) *Simulation {
	if c == nil {
		c = NewManual()
	}
	s := &Simulation{
		profile: p,
		ctrl:    c,
		rng:     rand.New(rand.NewSource(seed)),
	}
	if p.Particles {
		s.particles = NewPool(p.Emitter, p.SkinColor.Lighten(12), s.rng)
	}
	s.runner = p.newRunner()
	s.speed = p.Speed.At(0)
	s.alive = true
	return s
}

// Start clones l and begins a fresh run. Valid from any state.
func (s *Simulation) Start(l level.Level) {
	s.level = l.Clone()
	s.hasLevel = true
	s.reset()
	s.running = true
	s.alive = true
}

// Restart starts the current level again.
func (s *Simulation) Restart() error {
	if !s.hasLevel {
		return ErrNoLevel
	}
	s.Start(s.level)
	return nil
}

// Stop freezes the run without ending it.
func (s *Simulation) Stop() {
	s.running = false
}

func (s *Simulation) reset() {
	s.obstacles = newObstacles(s.level)
	s.runner = s.profile.newRunner()
	s.cameraX = 0
	s.distance = 0
	s.clock = 0
	s.loops = 0
	s.speed = s.profile.Speed.At(0)
	s.ctrl.Reset()
	if s.particles != nil {
		s.particles.Clear()
	}
	if len(s.profile.Faces) > 0 {
		s.face = s.profile.Faces[s.rng.Intn(len(s.profile.Faces))]
	}
}

// RequestJump forwards a jump signal to a manual controller. Signals that
// arrive while the run is not live are dropped.
func (s *Simulation) RequestJump() {
	if !s.running || !s.alive {
		return
	}
	if jr, ok := s.ctrl.(JumpRequester); ok {
		jr.RequestJump()
	}
}

// Step advances the simulation by dt seconds. When the run is not live only
// the particles move.
func (s *Simulation) Step(dt float64) StepResult {
	var res StepResult
	if dt < 0 {
		dt = 0
	}

	if !s.running || !s.alive {
		s.stepParticles(dt)
		return res
	}

	s.clock += dt

	if s.ctrl.Decide(s.view()) {
		s.jump(&res)
	}

	s.speed = s.profile.Speed.At(s.distance)
	dx := s.speed * dt
	s.cameraX += dx
	s.distance += dx

	if s.runner.Step(dt, s.clock, s.profile.Ground) {
		res.add(Event{Kind: EventLanded})
		s.spawn(s.runner.X+s.runner.Size/2, s.profile.Ground, ParticleLand)
	}

	s.markPassed(&res)

	if s.profile.Collisions {
		if hit, ok := s.collide(); ok {
			s.end(&res, hit)
		}
	}

	if s.profile.Loop && s.distance > s.Length() {
		s.loop(&res)
	}

	if s.profile.Cull {
		s.cull()
	}

	s.stepParticles(dt)
	return res
}

func (s *Simulation) view() View {
	return View{
		CameraX:   s.cameraX,
		Runner:    s.runner,
		Obstacles: s.obstacles,
	}
}

func (s *Simulation) jump(res *StepResult) {
	if !s.runner.Jump(s.clock) {
		return
	}
	res.add(Event{Kind: EventJumped})
	s.spawn(s.runner.X+s.runner.Size/2, s.runner.Y+s.runner.Size, ParticleJump)
}

// spawn emits a burst at a screen-space x.
func (s *Simulation) spawn(screenX, y float64, kind ParticleKind) {
	if s.particles == nil {
		return
	}
	s.particles.Spawn(s.cameraX+screenX, y, kind)
}

func (s *Simulation) stepParticles(dt float64) {
	if s.particles != nil {
		s.particles.Step(dt)
	}
}

func (s *Simulation) markPassed(res *StepResult) {
	left := s.cameraX + s.runner.X
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if !o.Passed && o.X+o.W < left {
			o.Passed = true
			res.add(Event{Kind: EventPassed, Obstacle: o.Type})
		}
	}
}

// collide returns the first obstacle, in list order, hit by the runner.
func (s *Simulation) collide() (Obstacle, bool) {
	rect := s.runner.WorldRect(s.cameraX)
	for _, o := range s.obstacles {
		if o.CollidesWith(rect, s.profile.Ground) {
			return o, true
		}
	}
	return Obstacle{}, false
}

func (s *Simulation) end(res *StepResult, hit Obstacle) {
	s.running = false
	s.alive = false
	cx, cy := s.runner.Rect().Center()
	s.spawn(cx, cy, ParticleBurst)
	res.add(Event{
		Kind:          EventCrashed,
		FinalDistance: s.FinalDistance(),
		Obstacle:      hit.Type,
	})
}

// loop rewinds the preview to the start of the level.
func (s *Simulation) loop(res *StepResult) {
	s.cameraX = 0
	s.distance = 0
	s.runner.Reset(s.profile.Ground)
	for i := range s.obstacles {
		s.obstacles[i].Passed = false
	}
	s.loops++
	res.add(Event{Kind: EventLooped})
}

// cull drops obstacles whose trailing edge is CullMargin or more behind the
// camera. Must run after the collision pass.
func (s *Simulation) cull() {
	limit := s.cameraX - s.profile.CullMargin
	live := s.obstacles[:0]
	for _, o := range s.obstacles {
		if !o.Behind(limit) {
			live = append(live, o)
		}
	}
	s.obstacles = live
}

// Alive reports whether the run has not crashed.
func (s *Simulation) Alive() bool {
	return s.alive
}

// Running reports whether physics is advancing.
func (s *Simulation) Running() bool {
	return s.running
}

// Ended reports whether the run ended in a crash.
func (s *Simulation) Ended() bool {
	return !s.alive
}

// HasLevel reports whether a level was ever started.
func (s *Simulation) HasLevel() bool {
	return s.hasLevel
}

// Level returns a copy of the current level.
func (s *Simulation) Level() level.Level {
	return s.level.Clone()
}

// Profile returns the profile the simulation was built with.
func (s *Simulation) Profile() Profile {
	return s.profile
}

// Distance returns the distance travelled in this run.
func (s *Simulation) Distance() float64 {
	return s.distance
}

// FinalDistance returns floor(distance).
func (s *Simulation) FinalDistance() int {
	return int(s.distance)
}

// Speed returns the scroll speed used by the last frame.
func (s *Simulation) Speed() float64 {
	return s.speed
}

// CameraX returns the world-to-screen offset.
func (s *Simulation) CameraX() float64 {
	return s.cameraX
}

// Length returns the effective length of the current level.
func (s *Simulation) Length() float64 {
	return s.level.LengthOr(s.profile.DefaultLength)
}

// Runner returns a copy of the runner state.
func (s *Simulation) Runner() Runner {
	return s.runner
}

// ObstacleCount returns the number of live obstacles.
func (s *Simulation) ObstacleCount() int {
	return len(s.obstacles)
}

// ParticleCount returns the number of live particles.
func (s *Simulation) ParticleCount() int {
	if s.particles == nil {
		return 0
	}
	return s.particles.Len()
}

// Snapshot returns a render copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Profile:   s.profile.Name,
		LevelID:   s.level.ID,
		LevelName: s.level.Title(),
		Length:    s.Length(),
		CameraX:   s.cameraX,
		Distance:  s.distance,
		Speed:     s.speed,
		Clock:     s.clock,
		Ground:    s.profile.Ground,
		ViewW:     s.profile.ViewW,
		ViewH:     s.profile.ViewH,
		Runner: RunnerView{
			Rect:     s.runner.Rect(),
			OnGround: s.runner.OnGround,
			SkinID:   s.profile.SkinID,
			Color:    s.profile.SkinColor,
			Face:     s.face,
		},
		Obstacles: make([]ObstacleView, len(s.obstacles)),
		Alive:     s.alive,
		Running:   s.running,
		Loops:     s.loops,
	}
	for i, o := range s.obstacles {
		snap.Obstacles[i] = ObstacleView{
			Type:   o.Type,
			Rect:   o.Rect(s.profile.Ground),
			Color:  core.ColorOr(o.Color, core.ColorObstacle),
			Passed: o.Passed,
		}
	}
	if s.particles != nil {
		snap.Particles = s.particles.Particles()
	}
	return snap
}
