package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
)

func menuKeys(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuResult(t *testing.T) {
	levels := level.Samples()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuResult
	}{
		{
			name: "first level",
			keys: []tea.KeyMsg{enter},
			want: MenuResult{LevelID: levels[0].ID},
		},
		{
			name: "endless",
			keys: []tea.KeyMsg{down, down, down, enter},
			want: MenuResult{LevelID: EndlessLevelID, Endless: true},
		},
		{
			name: "new level",
			keys: []tea.KeyMsg{down, down, down, down, enter},
			want: MenuResult{NewLevel: true, Edit: true},
		},
		{
			name: "edit second level",
			keys: []tea.KeyMsg{down, runeKey("e")},
			want: MenuResult{LevelID: levels[1].ID, Edit: true},
		},
		{
			name: "endless cannot be edited",
			keys: []tea.KeyMsg{down, down, down, runeKey("e"), runeKey("q")},
			want: MenuResult{Quit: true},
		},
		{
			name: "scoreboard",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}},
			want: MenuResult{WantsScoreboard: true},
		},
		{
			name: "quit",
			keys: []tea.KeyMsg{runeKey("q")},
			want: MenuResult{Quit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := menuKeys(NewMenuModel(levels, nil, cfg, true), tt.keys...)
			got := m.Result()
			got.Config = core.RuntimeConfig{}
			if got != tt.want {
				t.Errorf("Result() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(level.Samples(), nil, core.RuntimeConfig{ScreenW: 80}, false)
	m = menuKeys(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving up from the top", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = menuKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want last item %d", m.cursor, len(m.items)-1)
	}
	if m.items[m.cursor].Kind != MenuItemEndless {
		t.Error("without editing the last entry should be endless mode")
	}
}

func TestMenuShowsBestDistance(t *testing.T) {
	store := openTestStore(t)
	levels := level.Samples()
	if _, err := store.SaveScore(levels[0].ID, 777); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	m := NewMenuModel(levels, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, false)
	if m.items[0].Best != 777 {
		t.Errorf("best = %d, want 777", m.items[0].Best)
	}
}

func TestEndlessLevel(t *testing.T) {
	a := EndlessLevel(42)
	b := EndlessLevel(42)

	if a.ID != EndlessLevelID || a.Length != EndlessLength {
		t.Errorf("endless level = %s/%v", a.ID, a.Length)
	}
	if len(a.Obstacles) == 0 || len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("obstacle counts %d vs %d", len(a.Obstacles), len(b.Obstacles))
	}
	if a.Obstacles[3] != b.Obstacles[3] {
		t.Error("same seed should generate the same course")
	}
}

func TestMenuViewDescribesSelection(t *testing.T) {
	levels := []level.Level{{
		ID:        "two",
		Name:      "Two Blocks",
		Length:    1500,
		Obstacles: []level.ObstacleSpec{{Type: level.Block, X: 300}, {Type: level.Spike, X: 800}},
	}}
	m := NewMenuModel(levels, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, true)

	if !strings.Contains(m.View(), "2 obstacles  ·  length 1500") {
		t.Errorf("view should describe the selected level:\n%s", m.View())
	}

	m = menuKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "generated course") {
		t.Error("view should describe endless mode")
	}
}
