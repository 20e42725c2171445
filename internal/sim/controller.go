package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/registry"
)

// ErrUnknownController is returned by NewController for unregistered names.
var ErrUnknownController = errors.New("sim: unknown controller")

// View is the read-only state a controller decides on.
type View struct {
	CameraX   float64
	Runner    Runner
	Obstacles []Obstacle
}

// Controller decides once per frame whether the runner should jump.
type Controller interface {
	Decide(v View) bool
	Reset()
}

// JumpRequester is implemented by controllers fed by external input.
type JumpRequester interface {
	RequestJump()
}

// Manual jumps when the player asked for it since the previous frame.
// Any number of requests within one frame collapse into a single jump.
type Manual struct {
	pending bool
}

// NewManual creates a manual controller.
func NewManual() *Manual {
	return &Manual{}
}

// RequestJump queues a jump for the next frame.
func (m *Manual) RequestJump() {
	m.pending = true
}

// Decide consumes the pending request.
func (m *Manual) Decide(View) bool {
	jump := m.pending
	m.pending = false
	return jump
}

// Reset drops any pending request.
func (m *Manual) Reset() {
	m.pending = false
}

// Autopilot jumps while grounded as soon as an obstacle's leading edge is
// strictly within Lookahead units ahead of the runner.
type Autopilot struct {
	Lookahead float64
}

// NewAutopilot creates an autopilot with the given lookahead.
func NewAutopilot(lookahead float64) *Autopilot {
	return &Autopilot{Lookahead: lookahead}
}

// Decide scans obstacles in order and stops at the first one in range.
func (a *Autopilot) Decide(v View) bool {
	if !v.Runner.OnGround {
		return false
	}
	for _, o := range v.Obstacles {
		rel := o.X - v.CameraX
		if rel > v.Runner.X && rel < v.Runner.X+a.Lookahead {
			return true
		}
	}
	return false
}

// Reset is a no-op; the autopilot is stateless.
func (a *Autopilot) Reset() {}

// ControllerFactory builds a controller from the game configuration.
type ControllerFactory func(cfg config.Config) Controller

var controllers = registry.New[ControllerFactory]("controller")

func init() {
	RegisterController("manual", "Keyboard", func(config.Config) Controller {
		return NewManual()
	})
	RegisterController("autopilot", "Autopilot", func(cfg config.Config) Controller {
		return NewAutopilot(cfg.Preview.Lookahead)
	})
}

// RegisterController adds a controller factory.
// Panics if a controller with the same id is already registered.
func RegisterController(id, title string, f ControllerFactory) {
	controllers.Register(id, title, f)
}

// NewController instantiates a registered controller by id.
func NewController(id string, cfg config.Config) (Controller, error) {
	f, err := controllers.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownController, id)
	}
	return f(cfg), nil
}

// Controllers lists the registered controllers, sorted by id.
func Controllers() []registry.Info {
	return controllers.List()
}
