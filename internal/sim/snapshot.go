package sim

import (
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
)

// RunnerView is the render state of the runner.
type RunnerView struct {
	Rect     core.Rect // screen space
	OnGround bool
	SkinID   string
	Color    core.Color
	Face     string
}

// ObstacleView is the render state of one live obstacle.
type ObstacleView struct {
	Type   level.ObstacleType
	Rect   core.Rect // world space
	Color  core.Color
	Passed bool
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	Profile   string
	LevelID   string
	LevelName string
	Length    float64

	CameraX  float64
	Distance float64
	Speed    float64
	Clock    float64
	Ground   float64
	ViewW    float64
	ViewH    float64

	Runner    RunnerView
	Obstacles []ObstacleView
	Particles []Particle

	Alive   bool
	Running bool
	Loops   int
}

// ToScreen converts a world x to a screen x.
func (s Snapshot) ToScreen(worldX float64) float64 {
	return worldX - s.CameraX
}

// FinalDistance returns the score shown to the player.
func (s Snapshot) FinalDistance() int {
	return int(s.Distance)
}
