package tui

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/sim"
)

// styleCache maps core.Color to lipgloss styles. SSH sessions render
// concurrently, so access is guarded.
type styleCache struct {
	mu     sync.Mutex
	styles map[core.Color]lipgloss.Style
}

var colorStyles = &styleCache{
	styles: map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	},
}

func (c *styleCache) get(col core.Color) lipgloss.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.styles[col]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(string(col)))
	c.styles[col] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(colorStyles.get(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport is a block of screen cells the virtual world view is scaled into.
type Viewport struct {
	X, Y, W, H int
}

// col maps a screen-space x in world units to a cell column.
func (v Viewport) col(x, viewW float64) int {
	return v.X + int(math.Floor(x*float64(v.W)/viewW))
}

// row maps a world y to a cell row.
func (v Viewport) row(y, viewH float64) int {
	return v.Y + int(math.Floor(y*float64(v.H)/viewH))
}

// fill paints the half-open cell box [x0,x1)x[y0,y1) clipped to the viewport.
func (v Viewport) fill(s *core.Screen, x0, y0, x1, y1 int, r rune, c core.Color) {
	x0 = max(x0, v.X)
	y0 = max(y0, v.Y)
	x1 = min(x1, v.X+v.W)
	y1 = min(y1, v.Y+v.H)
	s.FillRect(x0, y0, x1, y1, r, c)
}

// cellBox converts a screen-space rect to cells. Every non-empty rect covers
// at least one cell.
func (v Viewport) cellBox(r core.Rect, viewW, viewH float64) (x0, y0, x1, y1 int) {
	x0 = v.col(r.X, viewW)
	x1 = v.col(r.Right(), viewW)
	y0 = v.row(r.Y, viewH)
	y1 = v.row(r.Bottom(), viewH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// DrawSnapshot paints one simulation frame into vp.
func DrawSnapshot(s *core.Screen, vp Viewport, snap sim.Snapshot) {
	if vp.W <= 0 || vp.H <= 0 || snap.ViewW <= 0 || snap.ViewH <= 0 {
		return
	}

	vp.fill(s, vp.X, vp.Y, vp.X+vp.W, vp.Y+vp.H, ' ', core.ColorDefault)

	groundRow := vp.row(snap.Ground, snap.ViewH)
	vp.fill(s, vp.X, groundRow, vp.X+vp.W, vp.Y+vp.H, '█', core.ColorGround)
	vp.fill(s, vp.X, groundRow, vp.X+vp.W, groundRow+1, '▀', core.ColorHorizon)

	for _, o := range snap.Obstacles {
		screenRect := o.Rect.Translate(-snap.CameraX, 0)
		c := o.Color
		if o.Passed {
			c = c.Lighten(-60)
		}
		switch o.Type {
		case level.Gap:
			x0 := vp.col(screenRect.X, snap.ViewW)
			x1 := max(vp.col(screenRect.Right(), snap.ViewW), x0+1)
			vp.fill(s, x0, groundRow, x1, vp.Y+vp.H, ' ', core.ColorDefault)
			vp.fill(s, x0, groundRow, x0+1, vp.Y+vp.H, '▏', core.ColorGapEdge)
		case level.Spike:
			x0, y0, x1, y1 := vp.cellBox(screenRect, snap.ViewW, snap.ViewH)
			vp.fill(s, x0, y0+1, x1, y1, '█', c)
			vp.fill(s, x0, y0, x1, y0+1, '▲', c)
		default:
			x0, y0, x1, y1 := vp.cellBox(screenRect, snap.ViewW, snap.ViewH)
			vp.fill(s, x0, y0, x1, y1, '█', c)
		}
	}

	for _, p := range snap.Particles {
		x := vp.col(snap.ToScreen(p.X), snap.ViewW)
		y := vp.row(p.Y, snap.ViewH)
		vp.fill(s, x, y, x+1, y+1, '•', p.Color)
	}

	x0, y0, x1, y1 := vp.cellBox(snap.Runner.Rect, snap.ViewW, snap.ViewH)
	runnerColor := snap.Runner.Color
	if !snap.Alive {
		runnerColor = runnerColor.Lighten(-80)
	}
	vp.fill(s, x0, y0, x1, y1, '█', runnerColor)
}

// hudLine formats the one-line status shown above the play field.
func hudLine(snap sim.Snapshot, best int) string {
	face := snap.Runner.Face
	if face != "" {
		face = " " + face
	}
	return fmt.Sprintf(" %s%s  |  dist %d  |  speed %.0f  |  best %d",
		snap.LevelName, face, snap.FinalDistance(), snap.Speed, best)
}
