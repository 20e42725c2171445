package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
)

func sessionKeys(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(config.DefaultConfig(), nil, cfg, "alice", testLogger())

	if len(m.levels) != 3 {
		t.Fatalf("session without a database should offer the samples, got %d levels", len(m.levels))
	}

	m = sessionKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.play == nil {
		t.Fatal("enter should start a run")
	}
	if got := m.play.Simulation().Level().ID; got != m.levels[0].ID {
		t.Errorf("playing %q, want %q", got, m.levels[0].ID)
	}

	m = sessionKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.play != nil {
		t.Fatal("esc should return to the menu")
	}
	if m.quitting {
		t.Error("leaving a run must not end the session")
	}

	m = sessionKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	m = sessionKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scoreboard != nil || m.quitting {
		t.Error("esc should close the scoreboard and keep the session")
	}

	m = sessionKeys(m, runeKey("q"))
	if !m.quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	a := NewSessionModel(config.DefaultConfig(), nil, cfg, "a", testLogger())
	b := NewSessionModel(config.DefaultConfig(), nil, cfg, "b", testLogger())

	a = sessionKeys(a, tea.KeyMsg{Type: tea.KeyEnter})
	b = sessionKeys(b, tea.KeyMsg{Type: tea.KeyEnter})

	if a.play.Simulation() == b.play.Simulation() {
		t.Error("sessions share a simulation")
	}
}
