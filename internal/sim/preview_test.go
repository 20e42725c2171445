package sim

import (
	"testing"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/level"
)

func newPreview(t *testing.T, l level.Level) *Simulation {
	t.Helper()
	cfg := config.DefaultConfig()
	s := New(PreviewProfile(cfg), NewAutopilot(cfg.Preview.Lookahead), 1)
	s.Start(l)
	return s
}

func TestPreviewProfile(t *testing.T) {
	p := PreviewProfile(config.DefaultConfig())
	if p.Collisions || p.Cull || p.Particles || !p.Loop {
		t.Errorf("preview flags = %+v", p)
	}
	if p.Speed.At(0) != 216 || p.Speed.At(100000) != 216 {
		t.Errorf("preview speed = %v", p.Speed.At(0))
	}
	if p.RunnerX != 60 || p.RunnerSize != 40 || p.JumpImpulse != -380 || p.GravityScale != 0.5 {
		t.Errorf("preview runner = %+v", p)
	}
}

func TestPreviewNeverEnds(t *testing.T) {
	l, err := level.Sample("level-3")
	if err != nil {
		t.Fatal(err)
	}
	s := newPreview(t, l)

	jumps := 0
	for i := 0; i < 2000; i++ {
		res := s.Step(frame)
		if res.Has(EventCrashed) {
			t.Fatal("preview emitted a crash")
		}
		if res.Has(EventJumped) {
			jumps++
		}
		if !s.Alive() || !s.Running() {
			t.Fatal("preview stopped")
		}
		if s.ObstacleCount() != len(l.Obstacles) {
			t.Fatal("preview culled obstacles")
		}
		if s.ParticleCount() != 0 {
			t.Fatal("preview spawned particles")
		}
	}
	if jumps == 0 {
		t.Error("autopilot never jumped")
	}
}

// loopTrace is the runner trajectory over one pass of a looping preview.
type loopTrace struct {
	ys    []float64
	jumps []int // frame indices within the pass
}

func TestPreviewLoopIdempotent(t *testing.T) {
	l, err := level.Sample("level-1")
	if err != nil {
		t.Fatal(err)
	}
	s := newPreview(t, l)

	// passes[0] runs from Start to the first loop; later passes run between loops.
	passes := []loopTrace{{}}
	for i := 0; i < 6000 && len(passes) < 5; i++ {
		res := s.Step(frame)
		if res.Has(EventLooped) {
			snap := s.Snapshot()
			if snap.CameraX != 0 || snap.Distance != 0 || !snap.Runner.OnGround {
				t.Fatalf("loop %d did not rewind: %+v", len(passes), snap.Runner)
			}
			passes = append(passes, loopTrace{})
			continue
		}
		cur := &passes[len(passes)-1]
		if res.Has(EventJumped) {
			cur.jumps = append(cur.jumps, len(cur.ys))
		}
		cur.ys = append(cur.ys, s.Runner().Y)
	}
	if len(passes) < 5 {
		t.Fatalf("only %d loops", len(passes)-1)
	}

	// The last pass is still in progress.
	first := passes[1]
	if len(first.jumps) == 0 {
		t.Fatal("autopilot never jumped on level-1")
	}
	for n, p := range passes[2 : len(passes)-1] {
		loop := n + 2
		if len(p.ys) != len(first.ys) {
			t.Fatalf("loop %d: %d frames, want %d", loop, len(p.ys), len(first.ys))
		}
		for f := range p.ys {
			if p.ys[f] != first.ys[f] {
				t.Fatalf("loop %d frame %d: runner y = %v, want %v", loop, f, p.ys[f], first.ys[f])
			}
		}
		if len(p.jumps) != len(first.jumps) {
			t.Fatalf("loop %d: %d jumps, want %d", loop, len(p.jumps), len(first.jumps))
		}
		for k := range p.jumps {
			if p.jumps[k] != first.jumps[k] {
				t.Errorf("loop %d jump %d at frame %d, want %d", loop, k, p.jumps[k], first.jumps[k])
			}
		}
	}
	if s.Snapshot().Loops != len(passes)-1 {
		t.Errorf("Loops = %d, want %d", s.Snapshot().Loops, len(passes)-1)
	}
}

func TestPreviewConfiguredDefaultLength(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preview.DefaultLength = 1080
	s := New(PreviewProfile(cfg), NewAutopilot(cfg.Preview.Lookahead), 1)
	s.Start(level.Level{ID: "blank"})

	if got := s.Length(); got != 1080 {
		t.Fatalf("Length() = %v, want 1080", got)
	}
	frames := 0
	for frames < 2000 {
		frames++
		if s.Step(frame).Has(EventLooped) {
			break
		}
	}
	// 1080 units at 216 units/s is 300 frames.
	if frames < 298 || frames > 304 {
		t.Errorf("looped after %d frames, want about 300", frames)
	}
}

func TestPreviewDefaultLength(t *testing.T) {
	s := newPreview(t, level.Level{ID: "blank"})

	frames := 0
	for frames < 2000 {
		frames++
		if s.Step(frame).Has(EventLooped) {
			break
		}
	}
	// 2200 units at 216 units/s is about 611 frames.
	if frames < 605 || frames > 615 {
		t.Errorf("looped after %d frames, want about 611", frames)
	}
}
