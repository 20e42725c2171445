package level

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/color-dash/internal/core"
)

// Spawner generates random obstacles for endless runs.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with a deterministic seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// At returns a random obstacle placed at x.
// 18% spikes, 14% gaps, the rest blocks.
func (s *Spawner) At(x float64) ObstacleSpec {
	r := s.rng.Float64()
	switch {
	case r < 0.18:
		return ObstacleSpec{
			Type:  Spike,
			X:     x,
			W:     140 + s.rng.Float64()*80,
			H:     64,
			Color: core.RandomColor(s.rng).String(),
		}
	case r < 0.32:
		return ObstacleSpec{
			Type: Gap,
			X:    x,
			W:    80 + s.rng.Float64()*120,
			H:    DefaultHeight,
		}
	default:
		return ObstacleSpec{
			Type:  Block,
			X:     x,
			W:     60 + s.rng.Float64()*120,
			H:     60 + s.rng.Float64()*90,
			Color: core.RandomColor(s.rng).String(),
		}
	}
}

// Generate builds a level of the given length. Obstacles start at 600 and
// are separated by a random run-up of 320 to 620 units.
func (s *Spawner) Generate(id string, length float64) Level {
	if length <= 0 {
		length = DefaultLength
	}
	l := Level{
		ID:        id,
		Name:      fmt.Sprintf("Endless %s", id),
		Length:    length,
		Obstacles: []ObstacleSpec{},
	}
	x := 600.0
	for x < length {
		o := s.At(x)
		l.Obstacles = append(l.Obstacles, o)
		x += o.W + 320 + s.rng.Float64()*300
	}
	return l
}
