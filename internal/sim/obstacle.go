package sim

import (
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
)

// Obstacle is a placed hazard owned by one simulation.
type Obstacle struct {
	level.ObstacleSpec
	Passed bool // the runner has fully cleared it
}

// newObstacles builds runtime obstacles from a level in list order.
func newObstacles(l level.Level) []Obstacle {
	out := make([]Obstacle, len(l.Obstacles))
	for i, spec := range l.Obstacles {
		out[i] = Obstacle{ObstacleSpec: spec.Normalize()}
	}
	return out
}

// Rect returns the obstacle bounds in world space. Blocks and spikes rest on
// the ground line; gaps have no height above it.
func (o Obstacle) Rect(ground float64) core.Rect {
	if o.Type == level.Gap {
		return core.NewRect(o.X, ground, o.W, 0)
	}
	return core.NewRect(o.X, ground-o.H, o.W, o.H)
}

// CollidesWith reports whether the runner's world rect hits this obstacle.
// Blocks and spikes use strict overlap so touching edges is safe. A gap is
// fatal when the runner is over it and at (or within 1 unit of) the ground.
func (o Obstacle) CollidesWith(runner core.Rect, ground float64) bool {
	if o.Type == level.Gap {
		if !o.Rect(ground).OverlapsSpan(runner.X, runner.Right()) {
			return false
		}
		return runner.Bottom() >= ground-1
	}
	return o.Rect(ground).Intersects(runner)
}

// Behind reports whether the obstacle's trailing edge is at or before x.
func (o Obstacle) Behind(x float64) bool {
	return o.X+o.W <= x
}
