package editor

import (
	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/scheduler"
	"github.com/vovakirdan/color-dash/internal/sim"
)

// Preview owns the editor's looping autopilot simulation.
type Preview struct {
	cfg   config.Config
	sched *scheduler.Scheduler
	seed  int64
}

// NewPreview creates a preview bound to a scheduler.
func NewPreview(cfg config.Config, sched *scheduler.Scheduler, seed int64) *Preview {
	return &Preview{cfg: cfg, sched: sched, seed: seed}
}

// Reinitialize discards the running preview and starts a fresh one for l.
func (p *Preview) Reinitialize(l level.Level) *sim.Simulation {
	ctrl, err := sim.NewController("autopilot", p.cfg)
	if err != nil {
		ctrl = sim.NewAutopilot(p.cfg.Preview.Lookahead)
	}
	s := sim.New(sim.PreviewProfile(p.cfg), ctrl, p.seed)
	s.Start(l)
	p.sched.StartPreview(s)
	return s
}

// Stop detaches the preview from the scheduler.
func (p *Preview) Stop() {
	p.sched.StopPreview()
}

// Attach wires e so that every edit rebuilds the preview, and builds the
// first preview for the current working level.
func (p *Preview) Attach(e *Editor) *sim.Simulation {
	e.OnChange = func(l level.Level) {
		p.Reinitialize(l)
	}
	return p.Reinitialize(e.Level())
}
