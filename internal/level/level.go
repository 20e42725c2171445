// Package level holds the static level model shared by the play and preview
// simulations, the editor, and the persistence adapters.
package level

import (
	"errors"
	"fmt"
	"slices"
)

// ObstacleType identifies the kind of hazard an obstacle represents.
type ObstacleType string

const (
	Block ObstacleType = "block"
	Spike ObstacleType = "spike"
	Gap   ObstacleType = "gap"
)

// Defaults applied by Normalize to incomplete level data.
const (
	DefaultLength = 2200.0
	DefaultWidth  = 120.0
	DefaultHeight = 80.0
	DefaultColor  = "#ff6b6b"
)

// ErrNotFound is returned when a level id is not present in a collection.
var ErrNotFound = errors.New("level: not found")

// Types lists the supported obstacle types in tool order.
func Types() []ObstacleType {
	return []ObstacleType{Block, Spike, Gap}
}

// ParseType maps a name to an ObstacleType. Unknown names become Block.
func ParseType(s string) ObstacleType {
	switch ObstacleType(s) {
	case Spike:
		return Spike
	case Gap:
		return Gap
	default:
		return Block
	}
}

// ObstacleSpec is one placed obstacle. Gaps ignore H.
type ObstacleSpec struct {
	Type  ObstacleType `json:"type" yaml:"type"`
	X     float64      `json:"x" yaml:"x"`
	W     float64      `json:"w,omitempty" yaml:"w,omitempty"`
	H     float64      `json:"h,omitempty" yaml:"h,omitempty"`
	Color string       `json:"color,omitempty" yaml:"color,omitempty"`
}

// Normalize fills missing dimensions and colour with defaults.
func (o ObstacleSpec) Normalize() ObstacleSpec {
	o.Type = ParseType(string(o.Type))
	if o.W <= 0 {
		o.W = DefaultWidth
	}
	if o.H <= 0 {
		o.H = DefaultHeight
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	return o
}

// ContainsX reports whether x lies in [X, X+W).
func (o ObstacleSpec) ContainsX(x float64) bool {
	return x >= o.X && x < o.X+o.W
}

// OverlapsX reports whether [X, X+W) intersects [lo, hi). An empty range
// falls back to ContainsX(lo).
func (o ObstacleSpec) OverlapsX(lo, hi float64) bool {
	if hi <= lo {
		return o.ContainsX(lo)
	}
	return o.X < hi && o.X+o.W > lo
}

// Level is a named, fixed-length course.
type Level struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Length    float64        `json:"length,omitempty" yaml:"length,omitempty"`
	Obstacles []ObstacleSpec `json:"obstacles" yaml:"obstacles"`
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	l.Obstacles = slices.Clone(l.Obstacles)
	if l.Obstacles == nil {
		l.Obstacles = []ObstacleSpec{}
	}
	return l
}

// EffectiveLength returns Length, or DefaultLength when it is unset.
func (l Level) EffectiveLength() float64 {
	return l.LengthOr(DefaultLength)
}

// LengthOr returns Length, or def when it is unset. A non-positive def
// falls back to DefaultLength.
func (l Level) LengthOr(def float64) float64 {
	if l.Length > 0 {
		return l.Length
	}
	if def > 0 {
		return def
	}
	return DefaultLength
}

// Normalize returns a copy with every obstacle normalized.
func (l Level) Normalize() Level {
	out := l.Clone()
	for i := range out.Obstacles {
		out.Obstacles[i] = out.Obstacles[i].Normalize()
	}
	return out
}

// Title returns the display name, falling back to the id.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// String implements fmt.Stringer.
func (l Level) String() string {
	return fmt.Sprintf("%s (%s, %d obstacles, length %.0f)", l.Title(), l.ID, len(l.Obstacles), l.EffectiveLength())
}

// Find returns the level with the given id.
func Find(levels []Level, id string) (Level, error) {
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Upsert replaces the level with the same id or appends it.
func Upsert(levels []Level, l Level) []Level {
	out := slices.Clone(levels)
	for i := range out {
		if out[i].ID == l.ID {
			out[i] = l.Clone()
			return out
		}
	}
	return append(out, l.Clone())
}
