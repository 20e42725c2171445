package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/sim"
)

// A 96x54 viewport maps the 960x540 world at exactly one cell per ten units.
func renderedFrame(t *testing.T, l level.Level) *core.Screen {
	t.Helper()
	s := sim.New(sim.PlayProfile(config.DefaultConfig()), nil, 1)
	s.Start(l)

	scr := core.NewScreen(96, 54)
	DrawSnapshot(scr, Viewport{X: 0, Y: 0, W: 96, H: 54}, s.Snapshot())
	return scr
}

func TestDrawSnapshot(t *testing.T) {
	scr := renderedFrame(t, level.Level{
		ID:     "render",
		Length: 2000,
		Obstacles: []level.ObstacleSpec{
			{Type: level.Block, X: 400, W: 120, H: 80, Color: "#00ff00"},
			{Type: level.Spike, X: 560, W: 40, H: 60},
			{Type: level.Gap, X: 700, W: 100},
		},
	})

	tests := []struct {
		name  string
		x, y  int
		rune  rune
		color core.Color
	}{
		{"sky", 5, 5, ' ', core.ColorDefault},
		{"horizon", 2, 42, '▀', core.ColorHorizon},
		{"ground", 2, 50, '█', core.ColorGround},
		{"runner", 15, 38, '█', core.Color("#ffd166")},
		{"block", 45, 38, '█', core.Color("#00ff00")},
		{"spike tip", 57, 36, '▲', core.ColorObstacle},
		{"gap edge", 70, 45, '▏', core.ColorGapEdge},
		{"gap", 75, 45, ' ', core.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := scr.GetCell(tt.x, tt.y)
			if cell.Rune != tt.rune || cell.Color != tt.color {
				t.Errorf("cell(%d,%d) = (%q, %q), want (%q, %q)",
					tt.x, tt.y, cell.Rune, cell.Color, tt.rune, tt.color)
			}
		})
	}
}

func TestDrawSnapshotClipsToViewport(t *testing.T) {
	s := sim.New(sim.PlayProfile(config.DefaultConfig()), nil, 1)
	s.Start(level.Level{ID: "clip", Length: 2000})

	scr := core.NewScreen(20, 10)
	scr.Fill('x', core.ColorDefault)
	DrawSnapshot(scr, Viewport{X: 0, Y: 2, W: 20, H: 5}, s.Snapshot())

	for _, y := range []int{0, 1, 7, 8, 9} {
		if got := scr.Row(y); got != strings.Repeat("x", 20) {
			t.Errorf("row %d was drawn over: %q", y, got)
		}
	}
}

func TestDrawSnapshotIgnoresEmptyViewport(t *testing.T) {
	scr := core.NewScreen(10, 4)
	scr.Fill('x', core.ColorDefault)
	DrawSnapshot(scr, Viewport{W: 0, H: 4}, sim.Snapshot{ViewW: 960, ViewH: 540})

	if scr.Row(0) != "xxxxxxxxxx" {
		t.Errorf("empty viewport changed the screen: %q", scr.Row(0))
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(12, 2)
	scr.DrawTextColor(0, 0, "dash", core.ColorHUD)
	scr.DrawTextColor(5, 1, "run", core.ColorObstacle)

	out := RenderScreen(scr)
	if !strings.Contains(out, "dash") || !strings.Contains(out, "run") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("rendered output has %d newlines, want 1", strings.Count(out, "\n"))
	}
}

func TestHUDLine(t *testing.T) {
	snap := sim.Snapshot{LevelName: "Sunny Start", Distance: 123.9, Speed: 360}
	got := hudLine(snap, 456)

	for _, want := range []string{"Sunny Start", "dist 123", "speed 360", "best 456"} {
		if !strings.Contains(got, want) {
			t.Errorf("hudLine() = %q, missing %q", got, want)
		}
	}
}
