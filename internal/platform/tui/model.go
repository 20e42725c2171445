package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/scheduler"
	"github.com/vovakirdan/color-dash/internal/sim"
	"github.com/vovakirdan/color-dash/internal/storage"
)

// PlayOptions configures a play session.
type PlayOptions struct {
	Config     config.Config
	Runtime    core.RuntimeConfig
	Level      level.Level
	Controller string // controller id, "" means manual
	Store      *storage.Store
	Logger     *log.Logger
}

// Model is the Bubble Tea model for one run of a level.
type Model struct {
	cfg        config.Config
	runtime    core.RuntimeConfig
	level      level.Level
	sched      *scheduler.Scheduler
	play       *sim.Simulation
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame

	best       int  // best distance for this level
	lastScore  int  // distance of the last finished run
	newBest    bool // last run beat the stored best
	quitting   bool
	backToMenu bool
	standalone bool // quit the program on back instead of returning to a menu
}

// NewModel creates a play model and starts the level.
func NewModel(opts PlayOptions) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ctrlID := opts.Controller
	if ctrlID == "" {
		ctrlID = "manual"
	}
	ctrl, err := sim.NewController(ctrlID, opts.Config)
	if err != nil {
		opts.Logger.Warn("falling back to manual controller", "controller", ctrlID, "error", err)
		ctrl = sim.NewManual()
	}

	play := sim.New(sim.PlayProfile(opts.Config), ctrl, opts.Runtime.Seed)
	play.Start(opts.Level)

	sched := scheduler.New(time.Duration(opts.Config.Scheduler.MaxDeltaMS) * time.Millisecond)
	sched.SetPlay(play)

	m := Model{
		cfg:        opts.Config,
		runtime:    opts.Runtime,
		level:      opts.Level,
		sched:      sched,
		play:       play,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		store:      opts.Store,
		logger:     opts.Logger,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if m.store != nil {
		if best, err := m.store.HighScore(opts.Level.ID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.sched.StopPlay()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick applies the frame's input and advances the scheduler.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	switch {
	case m.inputFrame.Has(core.ActionRestart),
		m.inputFrame.Has(core.ActionJump) && m.play.Ended():
		m.restart()
	case m.inputFrame.Has(core.ActionJump):
		m.play.RequestJump()
	}

	frame := m.sched.Tick(now)
	if ev, ok := frame.Play.Find(sim.EventCrashed); ok {
		m.recordRun(ev)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.runtime.TickRate)
}

// restart begins a fresh run of the same level.
func (m *Model) restart() {
	if err := m.play.Restart(); err != nil {
		m.logger.Error("restart failed", "error", err)
		return
	}
	m.newBest = false
	m.logger.Debug("run restarted", "level", m.level.ID)
}

// recordRun stores the distance of a finished run, once per crash.
func (m *Model) recordRun(ev sim.Event) {
	m.lastScore = ev.FinalDistance
	m.newBest = ev.FinalDistance > m.best
	if m.newBest {
		m.best = ev.FinalDistance
	}
	m.logger.Info("run ended",
		"level", m.level.ID,
		"distance", ev.FinalDistance,
		"obstacle", ev.Obstacle,
		"best", m.best,
	)

	if m.store != nil && ev.FinalDistance > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.level.ID, ev.FinalDistance)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".colordash", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.level.ID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// draw paints the HUD and the play field into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	snap := m.play.Snapshot()

	m.screen.DrawTextColor(0, 0, hudLine(snap, m.best), core.ColorHUD)
	DrawSnapshot(m.screen, Viewport{X: 0, Y: 1, W: m.screen.Width(), H: m.screen.Height() - 1}, snap)

	if m.play.Ended() {
		mid := m.screen.Height() / 2
		m.screen.DrawTextCentered(mid-1, " CRASHED ", core.ColorObstacle)
		result := fmt.Sprintf(" distance %d ", m.lastScore)
		if m.newBest {
			result = fmt.Sprintf(" new best %d ", m.lastScore)
		}
		m.screen.DrawTextCentered(mid, result, core.ColorHUD)
		m.screen.DrawTextCentered(mid+1, " space: retry  |  esc: menu  |  q: quit ", core.ColorHUD)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Best returns the best distance known for the level.
func (m Model) Best() int {
	return m.best
}

// Simulation exposes the play simulation.
func (m Model) Simulation() *sim.Simulation {
	return m.play
}

// Run starts a standalone play program. Back quits it.
func Run(opts PlayOptions) error {
	model := NewModel(opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
