// Package editor implements the level editor: a mutable working copy of a
// level, the obstacle placement tool, and the live autopilot preview that is
// rebuilt after every edit.
package editor

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
)

// ErrNoObstacle is returned by Remove when nothing covers the position.
var ErrNoObstacle = errors.New("editor: no obstacle at position")

// Tool holds the settings applied to newly placed obstacles.
type Tool struct {
	Type   level.ObstacleType
	Width  float64
	Height float64
	Color  string
}

// Editor owns the working copy of one level.
type Editor struct {
	cfg           config.Editor
	defaultLength float64
	store  level.Store
	logger *log.Logger

	working level.Level
	tool    Tool
	dirty   bool

	// OnChange receives a copy of the working level after every edit.
	OnChange func(level.Level)
}

// New creates an editor with a blank level loaded.
func New(cfg config.Config, store level.Store, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Editor{
		cfg:           cfg.Editor,
		defaultLength: cfg.Preview.DefaultLength,
		store:         store,
		logger: logger,
		tool: Tool{
			Type:   level.ParseType(cfg.Editor.Tool),
			Width:  cfg.Editor.Width,
			Height: cfg.Editor.Height,
			Color:  cfg.Editor.Color,
		},
	}
	e.working = Blank()
	e.working.Length = level.Level{}.LengthOr(e.defaultLength)
	return e
}

// Blank returns an empty level with a fresh id.
func Blank() level.Level {
	return level.Level{
		ID:        "custom-" + uuid.NewString()[:8],
		Name:      "New Level",
		Length:    level.DefaultLength,
		Obstacles: []level.ObstacleSpec{},
	}
}

// Load replaces the working copy with a clone of l.
func (e *Editor) Load(l level.Level) {
	e.working = l.Normalize()
	e.dirty = false
	e.logger.Debug("editing level", "id", e.working.ID, "obstacles", len(e.working.Obstacles))
	e.notify()
}

// LoadSample replaces the working copy with a built-in level.
func (e *Editor) LoadSample(id string) error {
	l, err := level.Sample(id)
	if err != nil {
		return fmt.Errorf("editor: load sample: %w", err)
	}
	e.Load(l)
	return nil
}

// Level returns a copy of the working level.
func (e *Editor) Level() level.Level {
	return e.working.Clone()
}

// Dirty reports whether there are unsaved edits.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Tool returns the current tool settings.
func (e *Editor) Tool() Tool {
	return e.tool
}

// SetTool selects the obstacle type to place.
func (e *Editor) SetTool(t level.ObstacleType) {
	e.tool.Type = level.ParseType(string(t))
}

// CycleTool advances to the next obstacle type.
func (e *Editor) CycleTool() level.ObstacleType {
	types := level.Types()
	for i, t := range types {
		if t == e.tool.Type {
			e.tool.Type = types[(i+1)%len(types)]
			return e.tool.Type
		}
	}
	e.tool.Type = types[0]
	return e.tool.Type
}

// SetSize sets the width and height of placed obstacles. Non-positive
// values are ignored.
func (e *Editor) SetSize(w, h float64) {
	if w > 0 {
		e.tool.Width = w
	}
	if h > 0 {
		e.tool.Height = h
	}
}

// SetColor sets the colour of placed obstacles.
func (e *Editor) SetColor(s string) error {
	c, ok := core.ParseColor(s)
	if !ok {
		return fmt.Errorf("editor: invalid colour %q", s)
	}
	e.tool.Color = c.String()
	return nil
}

// SetName renames the working level.
func (e *Editor) SetName(name string) {
	if name == "" || name == e.working.Name {
		return
	}
	e.working.Name = name
	e.changed()
}

// SetLength changes the level length. Non-positive values reset it to the default.
func (e *Editor) SetLength(length float64) {
	if length <= 0 {
		length = level.Level{}.LengthOr(e.defaultLength)
	}
	if length == e.working.Length {
		return
	}
	e.working.Length = length
	e.changed()
}

// Length returns the effective length of the working level.
func (e *Editor) Length() float64 {
	return e.working.LengthOr(e.defaultLength)
}

// PositionAt maps a timeline fraction in [0, 1] to a world x.
func (e *Editor) PositionAt(fraction float64) float64 {
	return core.ClampF(fraction, 0, 1) * e.Length()
}

// Place appends an obstacle built from the tool at the given timeline
// fraction. Positions inside the start safe zone are pushed to its edge.
func (e *Editor) Place(fraction float64) level.ObstacleSpec {
	x := math.Max(e.cfg.MinX, math.Round(e.PositionAt(fraction)))

	spec := level.ObstacleSpec{
		Type:  e.tool.Type,
		X:     x,
		W:     e.tool.Width,
		H:     e.tool.Height,
		Color: e.tool.Color,
	}
	if spec.Type == level.Gap {
		spec.W = math.Max(e.cfg.GapMinWidth, spec.W)
	}
	spec = spec.Normalize()

	e.working.Obstacles = append(e.working.Obstacles, spec)
	e.logger.Debug("placed obstacle", "type", spec.Type, "x", spec.X, "w", spec.W)
	e.changed()
	return spec
}

// Remove deletes the first obstacle whose [x, x+w) covers the position at
// the given timeline fraction.
func (e *Editor) Remove(fraction float64) (level.ObstacleSpec, error) {
	return e.RemoveIn(fraction, fraction)
}

// RemoveIn deletes the first obstacle overlapping the timeline range
// [from, to). An empty range removes at the point from.
func (e *Editor) RemoveIn(from, to float64) (level.ObstacleSpec, error) {
	lo, hi := e.PositionAt(from), e.PositionAt(to)
	for i, o := range e.working.Obstacles {
		if o.OverlapsX(lo, hi) {
			e.working.Obstacles = append(e.working.Obstacles[:i], e.working.Obstacles[i+1:]...)
			e.logger.Debug("removed obstacle", "type", o.Type, "x", o.X)
			e.changed()
			return o, nil
		}
	}
	return level.ObstacleSpec{}, fmt.Errorf("%w %.0f", ErrNoObstacle, lo)
}

// Save upserts the working level into the store by id.
func (e *Editor) Save() error {
	if e.store == nil {
		return fmt.Errorf("editor: no level store configured")
	}
	if err := level.SaveLevel(e.store, e.working); err != nil {
		return fmt.Errorf("editor: save %s: %w", e.working.ID, err)
	}
	e.dirty = false
	e.logger.Info("saved level", "id", e.working.ID, "name", e.working.Name)
	return nil
}

// Export writes the working level as JSON.
func (e *Editor) Export(w io.Writer) error {
	data, err := level.EncodeJSON([]level.Level{e.working})
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	return nil
}

func (e *Editor) changed() {
	e.dirty = true
	e.notify()
}

func (e *Editor) notify() {
	if e.OnChange != nil {
		e.OnChange(e.working.Clone())
	}
}
