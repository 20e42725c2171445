package scheduler

import (
	"testing"
	"time"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/sim"
)

func TestDeltaClamp(t *testing.T) {
	s := New(32 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"first tick", t0, 0},
		{"normal frame", t0.Add(16 * time.Millisecond), 0.016},
		{"long stall clamps", t0.Add(2 * time.Second), 0.032},
		{"clock goes backwards", t0, 0},
	}

	for _, tt := range tests {
		if got := s.Delta(tt.at); got != tt.want {
			t.Errorf("%s: Delta() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultMaxDelta(t *testing.T) {
	s := New(0)
	t0 := time.Unix(0, 0)
	s.Delta(t0)
	if got := s.Delta(t0.Add(time.Second)); got != 0.032 {
		t.Errorf("Delta() = %v, want 0.032", got)
	}
}

func TestTickStepsPlayThenPreview(t *testing.T) {
	cfg := config.DefaultConfig()
	l := level.Level{ID: "flat", Length: 5000}

	play := sim.New(sim.PlayProfile(cfg), sim.NewManual(), 1)
	play.Start(l)
	preview := sim.New(sim.PreviewProfile(cfg), sim.NewAutopilot(160), 1)
	preview.Start(l)

	s := New(DefaultMaxDelta)
	s.SetPlay(play)
	s.StartPreview(preview)

	t0 := time.Unix(0, 0)
	s.Tick(t0)
	f := s.Tick(t0.Add(20 * time.Millisecond))

	if f.Dt != 0.02 {
		t.Fatalf("Dt = %v, want 0.02", f.Dt)
	}
	if play.Distance() == 0 || preview.Distance() == 0 {
		t.Error("both simulations should advance")
	}
	if play.Distance() <= preview.Distance() {
		t.Error("play should scroll faster than preview")
	}
}

func TestStopPreviewClearsAndDetaches(t *testing.T) {
	cfg := config.DefaultConfig()
	preview := sim.New(sim.PreviewProfile(cfg), sim.NewAutopilot(160), 1)
	preview.Start(level.Level{ID: "p"})

	s := New(DefaultMaxDelta)
	cleared := 0
	s.OnPreviewStopped = func() { cleared++ }
	s.StartPreview(preview)

	s.StopPreview()
	s.StopPreview()
	if cleared != 1 {
		t.Errorf("OnPreviewStopped called %d times, want 1", cleared)
	}
	if s.Preview() != nil {
		t.Error("preview still attached")
	}

	t0 := time.Unix(0, 0)
	s.Tick(t0)
	s.Tick(t0.Add(16 * time.Millisecond))
	if preview.Distance() != 0 {
		t.Error("stopped preview was stepped")
	}
}

func TestStopPlayKeepsTicking(t *testing.T) {
	cfg := config.DefaultConfig()
	play := sim.New(sim.PlayProfile(cfg), sim.NewManual(), 1)
	play.Start(level.Level{ID: "flat"})

	s := New(DefaultMaxDelta)
	s.SetPlay(play)
	s.StopPlay()

	t0 := time.Unix(0, 0)
	s.Tick(t0)
	f := s.Tick(t0.Add(16 * time.Millisecond))
	if f.Dt == 0 {
		t.Error("scheduler should still tick")
	}
	if play.Running() || play.Distance() != 0 {
		t.Error("stopped play should not advance")
	}
}
