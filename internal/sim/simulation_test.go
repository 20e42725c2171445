package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/level"
)

const frame = 1.0 / 60

func newPlay(t *testing.T, l level.Level) *Simulation {
	t.Helper()
	s := New(PlayProfile(config.DefaultConfig()), NewManual(), 1)
	s.Start(l)
	return s
}

func gapLevel() level.Level {
	return level.Level{
		ID:     "gap",
		Length: 1000,
		Obstacles: []level.ObstacleSpec{
			{Type: level.Gap, X: 500, W: 100},
		},
	}
}

func TestNewIsIdle(t *testing.T) {
	s := New(PlayProfile(config.DefaultConfig()), nil, 1)
	if s.Running() || s.HasLevel() {
		t.Error("new simulation should be idle")
	}
	if err := s.Restart(); !errors.Is(err, ErrNoLevel) {
		t.Errorf("Restart() error = %v, want ErrNoLevel", err)
	}

	s.RequestJump()
	s.Step(frame)
	if s.CameraX() != 0 || s.Distance() != 0 {
		t.Errorf("idle simulation moved: camera=%v", s.CameraX())
	}
}

func TestGapWithoutInputIsFatal(t *testing.T) {
	s := newPlay(t, gapLevel())

	var crash Event
	for i := 0; i < 300 && s.Alive(); i++ {
		res := s.Step(frame)
		if e, ok := res.Find(EventCrashed); ok {
			crash = e
		}
	}

	if s.Alive() || s.Running() {
		t.Fatal("runner survived the gap without jumping")
	}
	if crash.Kind != EventCrashed || crash.Obstacle != level.Gap {
		t.Fatalf("crash event = %+v", crash)
	}
	// The runner's leading edge enters the gap once the camera passes 304.
	if crash.FinalDistance < 304 || crash.FinalDistance > 312 {
		t.Errorf("FinalDistance = %d, want about 306", crash.FinalDistance)
	}
	if crash.FinalDistance != s.FinalDistance() {
		t.Errorf("event distance %d != FinalDistance() %d", crash.FinalDistance, s.FinalDistance())
	}
}

func TestTimedJumpClearsGap(t *testing.T) {
	s := newPlay(t, gapLevel())

	for s.CameraX() < 260 {
		s.Step(frame)
		if !s.Alive() {
			t.Fatal("died before the jump")
		}
	}

	s.RequestJump()
	jumped := false
	for i := 0; i < 600 && s.Distance() <= 700; i++ {
		res := s.Step(frame)
		if res.Has(EventJumped) {
			jumped = true
		}
		if !s.Alive() {
			t.Fatalf("died at distance %v", s.Distance())
		}
	}

	if !jumped {
		t.Error("no jump event")
	}
	if s.Distance() <= 700 {
		t.Errorf("distance = %v, want > 700", s.Distance())
	}
	if !s.Runner().OnGround {
		t.Error("runner should have landed after the gap")
	}
}

func TestBlockIsFatal(t *testing.T) {
	s := newPlay(t, level.Level{
		ID:        "block",
		Obstacles: []level.ObstacleSpec{{Type: level.Block, X: 400, W: 60, H: 60}},
	})

	for i := 0; i < 120 && s.Alive(); i++ {
		s.Step(frame)
	}
	if s.Alive() {
		t.Fatal("runner walked through a block")
	}
	if s.CameraX() < 204 || s.CameraX() > 212 {
		t.Errorf("crashed at camera %v, want about 204", s.CameraX())
	}
}

func TestCrashFreezesPhysicsButNotParticles(t *testing.T) {
	s := newPlay(t, gapLevel())
	for i := 0; i < 300 && s.Alive(); i++ {
		s.Step(frame)
	}
	if s.Alive() {
		t.Fatal("expected crash")
	}

	camera := s.CameraX()
	if s.ParticleCount() == 0 {
		t.Fatal("no crash burst")
	}

	s.RequestJump()
	for i := 0; i < 30; i++ {
		if res := s.Step(frame); res.Has(EventJumped) {
			t.Fatal("jump accepted after crash")
		}
	}
	if s.CameraX() != camera {
		t.Errorf("camera moved after crash: %v -> %v", camera, s.CameraX())
	}

	for i := 0; i < 60; i++ {
		s.Step(frame)
	}
	if s.ParticleCount() != 0 {
		t.Errorf("particles still alive after 1.5s: %d", s.ParticleCount())
	}
}

func TestSpeedResetsOnRestart(t *testing.T) {
	s := newPlay(t, level.Level{ID: "empty", Length: 5000})

	prev := s.Speed()
	for i := 0; i < 240; i++ {
		s.Step(frame)
		if s.Speed() < prev {
			t.Fatalf("speed decreased: %v -> %v", prev, s.Speed())
		}
		prev = s.Speed()
	}
	if s.Speed() <= 360 {
		t.Fatalf("speed = %v after %v distance, want > 360", s.Speed(), s.Distance())
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Speed() != 360 || s.Distance() != 0 || s.CameraX() != 0 {
		t.Errorf("after restart speed=%v distance=%v camera=%v", s.Speed(), s.Distance(), s.CameraX())
	}
	if !s.Alive() || !s.Running() {
		t.Error("restart should leave the run live")
	}
}

func TestRestartAfterCrash(t *testing.T) {
	s := newPlay(t, gapLevel())
	for i := 0; i < 300 && s.Alive(); i++ {
		s.Step(frame)
	}
	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if !s.Alive() || s.ObstacleCount() != 1 || s.ParticleCount() != 0 {
		t.Errorf("restart state alive=%v obstacles=%d particles=%d", s.Alive(), s.ObstacleCount(), s.ParticleCount())
	}
}

func TestStartClonesLevel(t *testing.T) {
	l := gapLevel()
	s := newPlay(t, l)
	l.Obstacles[0].X = 0

	if got := s.Level().Obstacles[0].X; got != 500 {
		t.Errorf("simulation level mutated: X = %v", got)
	}
}

func TestCullThreshold(t *testing.T) {
	s := newPlay(t, level.Level{
		ID: "cull",
		Obstacles: []level.ObstacleSpec{
			{Type: level.Block, X: 0, W: 100, H: 10},
			{Type: level.Block, X: 1, W: 100, H: 10},
		},
	})

	s.cameraX = 500
	s.cull()
	if s.ObstacleCount() != 1 {
		t.Fatalf("ObstacleCount() = %d, want 1", s.ObstacleCount())
	}
	if s.obstacles[0].X != 1 {
		t.Errorf("wrong obstacle culled: kept X=%v", s.obstacles[0].X)
	}
}

func TestCullKeepsObstaclesWithinMargin(t *testing.T) {
	s := newPlay(t, level.Level{
		ID:        "behind",
		Obstacles: []level.ObstacleSpec{{Type: level.Block, X: 0, W: 100, H: 10}},
	})

	for s.CameraX() < 600 {
		s.Step(frame)
		want := 1
		if s.CameraX() >= 500 {
			want = 0
		}
		if s.ObstacleCount() != want {
			t.Fatalf("camera %v: ObstacleCount() = %d, want %d", s.CameraX(), s.ObstacleCount(), want)
		}
	}
}

func TestPassedEmittedOnce(t *testing.T) {
	s := newPlay(t, level.Level{
		ID:        "passed",
		Obstacles: []level.ObstacleSpec{{Type: level.Block, X: 0, W: 100, H: 10}},
	})

	if res := s.Step(frame); !res.Has(EventPassed) {
		t.Error("expected EventPassed on first frame")
	}
	if res := s.Step(frame); res.Has(EventPassed) {
		t.Error("EventPassed emitted twice")
	}
	if !s.Snapshot().Obstacles[0].Passed {
		t.Error("snapshot should report passed")
	}
}

func TestJumpAndLandEvents(t *testing.T) {
	s := newPlay(t, level.Level{ID: "flat", Length: 5000})

	s.RequestJump()
	s.RequestJump()
	res := s.Step(frame)
	jumps := 0
	for _, e := range res.Events {
		if e.Kind == EventJumped {
			jumps++
		}
	}
	if jumps != 1 {
		t.Fatalf("jumps = %d, want 1", jumps)
	}
	if s.ParticleCount() != 18 {
		t.Errorf("jump burst = %d, want 18", s.ParticleCount())
	}

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		landed = s.Step(frame).Has(EventLanded)
	}
	if !landed {
		t.Error("no landing event")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		s := New(PlayProfile(config.DefaultConfig()), NewManual(), 99)
		s.Start(level.Level{ID: "flat", Length: 5000})
		for i := 0; i < 90; i++ {
			if i%30 == 0 {
				s.RequestJump()
			}
			s.Step(frame)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Distance != b.Distance || a.Runner != b.Runner || len(a.Particles) != len(b.Particles) {
		t.Fatal("same seed produced different runs")
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatalf("particle %d differs", i)
		}
	}
}

func TestSnapshot(t *testing.T) {
	s := newPlay(t, gapLevel())
	for i := 0; i < 10; i++ {
		s.Step(frame)
	}

	snap := s.Snapshot()
	if snap.Profile != "play" || snap.LevelID != "gap" || snap.Length != 1000 {
		t.Errorf("snapshot header = %+v", snap)
	}
	if snap.Ground != 421 || snap.Runner.Rect.X != 140 || snap.Runner.SkinID != "sunny" {
		t.Errorf("runner view = %+v ground=%v", snap.Runner, snap.Ground)
	}
	if len(snap.Obstacles) != 1 || snap.Obstacles[0].Type != level.Gap {
		t.Errorf("obstacles = %+v", snap.Obstacles)
	}
	if got := snap.ToScreen(500); got != 500-snap.CameraX {
		t.Errorf("ToScreen(500) = %v", got)
	}
}
