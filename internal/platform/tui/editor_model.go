package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/color-dash/internal/config"
	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/editor"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/scheduler"
)

// Editor layout: title, timeline, cursor, tool and status rows around the preview.
const editorChromeRows = 5

// editorPalette is cycled by the colour key.
var editorPalette = []string{"#ff6b6b", "#ffd166", "#06d6a0", "#4cc9f0", "#9b5de5", "#f15bb5", "#ffffff"}

// Size steps for the tool and the level length, in world units.
const (
	toolSizeStep    = 20
	levelLengthStep = 200
)

// EditorOptions configures the editor screen.
type EditorOptions struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Level   level.Level // empty ID starts a blank level
	Store   level.Store
	// WatchDir, when set, reloads the edited level whenever its file changes.
	WatchDir  string
	ExportDir string
	Logger    *log.Logger
}

// levelFileMsg reports a changed level file.
type levelFileMsg struct{ path string }

// watchErrMsg reports a watcher failure.
type watchErrMsg struct{ err error }

// watchClosedMsg is sent once the watcher channels are drained.
type watchClosedMsg struct{}

// waitForLevelFile blocks on the watcher and turns the next event into a message.
func waitForLevelFile(w *level.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return watchClosedMsg{}
			}
			return levelFileMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return watchClosedMsg{}
			}
			return watchErrMsg{err: err}
		}
	}
}

// EditorModel is the Bubble Tea model of the level editor.
type EditorModel struct {
	runtime   core.RuntimeConfig
	ed        *editor.Editor
	preview   *editor.Preview
	sched     *scheduler.Scheduler
	screen    *core.Screen
	logger    *log.Logger
	files     *level.DirStore
	watcher   *level.Watcher
	exportDir string

	keys     EditorKeyMap
	help     help.Model
	name     textinput.Model
	renaming bool

	cursor     int // timeline column
	colorIndex int
	status     string

	quitting   bool
	backToMenu bool
	standalone bool
}

// NewEditorModel creates the editor, its preview and, when requested, the
// level-file watcher.
func NewEditorModel(opts EditorOptions) EditorModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	sched := scheduler.New(time.Duration(opts.Config.Scheduler.MaxDeltaMS) * time.Millisecond)
	logger := opts.Logger
	screen := core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	sched.OnPreviewStopped = func() {
		clearPreviewArea(screen)
		logger.Debug("preview stopped")
	}

	ed := editor.New(opts.Config, opts.Store, opts.Logger)
	if opts.Level.ID != "" {
		ed.Load(opts.Level)
	}
	preview := editor.NewPreview(opts.Config, sched, opts.Runtime.Seed)
	preview.Attach(ed)

	name := textinput.New()
	name.Placeholder = "level name"
	name.CharLimit = 40

	h := help.New()
	h.ShowAll = false

	m := EditorModel{
		runtime:   opts.Runtime,
		ed:        ed,
		preview:   preview,
		sched:     sched,
		screen:    screen,
		logger:    opts.Logger,
		exportDir: opts.ExportDir,
		keys:      DefaultEditorKeyMap(),
		help:      h,
		name:      name,
	}

	if opts.WatchDir != "" {
		m.files = level.NewDirStore(opts.WatchDir, opts.Logger)
		w, err := level.NewWatcher(opts.WatchDir)
		if err != nil {
			opts.Logger.Warn("level watcher disabled", "dir", opts.WatchDir, "error", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init starts the tick loop and the watcher.
func (m EditorModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForLevelFile(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.renaming {
			return m.handleRenameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.cursor = core.Clamp(m.cursor, 0, max(0, msg.Width-1))
		return m, nil

	case TickMsg:
		if m.backToMenu || m.quitting {
			return m, nil
		}
		m.sched.Tick(time.Time(msg))
		return m, tickCmd(m.runtime.TickRate)

	case levelFileMsg:
		m.reloadFromDisk(msg.path)
		return m, waitForLevelFile(m.watcher)

	case watchErrMsg:
		m.logger.Warn("level watcher error", "error", msg.err)
		return m, waitForLevelFile(m.watcher)

	case watchClosedMsg:
		return m, nil
	}

	if m.renaming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes editing keys.
func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.close()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.FarLeft):
		m.moveCursor(-10)
	case key.Matches(msg, m.keys.FarRight):
		m.moveCursor(10)

	case key.Matches(msg, m.keys.Place):
		spec := m.ed.Place(m.fraction())
		m.status = fmt.Sprintf("placed %s at x=%.0f", spec.Type, spec.X)

	case key.Matches(msg, m.keys.Remove):
		spec, err := m.ed.RemoveIn(m.columnSpan(m.cursor))
		if errors.Is(err, editor.ErrNoObstacle) {
			m.status = "nothing to remove here"
		} else {
			m.status = fmt.Sprintf("removed %s at x=%.0f", spec.Type, spec.X)
		}

	case key.Matches(msg, m.keys.Tool):
		m.status = fmt.Sprintf("tool: %s", m.ed.CycleTool())

	case key.Matches(msg, m.keys.Wider):
		t := m.ed.Tool()
		m.ed.SetSize(t.Width+toolSizeStep, 0)
	case key.Matches(msg, m.keys.Narrower):
		t := m.ed.Tool()
		m.ed.SetSize(t.Width-toolSizeStep, 0)
	case key.Matches(msg, m.keys.Taller):
		t := m.ed.Tool()
		m.ed.SetSize(0, t.Height+toolSizeStep)
	case key.Matches(msg, m.keys.Shorter):
		t := m.ed.Tool()
		m.ed.SetSize(0, t.Height-toolSizeStep)

	case key.Matches(msg, m.keys.Color):
		m.colorIndex = (m.colorIndex + 1) % len(editorPalette)
		if err := m.ed.SetColor(editorPalette[m.colorIndex]); err != nil {
			m.status = err.Error()
		}

	case key.Matches(msg, m.keys.Longer):
		m.ed.SetLength(m.ed.Length() + levelLengthStep)
	case key.Matches(msg, m.keys.Shorten):
		m.ed.SetLength(max(levelLengthStep, m.ed.Length()-levelLengthStep))

	case key.Matches(msg, m.keys.Rename):
		m.renaming = true
		m.name.SetValue(m.ed.Level().Name)
		m.name.CursorEnd()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Save):
		if err := m.ed.Save(); err != nil {
			m.logger.Error("save failed", "error", err)
			m.status = err.Error()
		} else {
			m.status = "saved"
		}

	case key.Matches(msg, m.keys.Export):
		m.status = m.export()

	case key.Matches(msg, m.keys.Sample):
		id := "level-" + msg.String()
		if err := m.ed.LoadSample(id); err != nil {
			m.status = err.Error()
		} else {
			m.status = "loaded sample " + id
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleRenameKey feeds the name input until it is confirmed or cancelled.
func (m EditorModel) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ed.SetName(strings.TrimSpace(m.name.Value()))
		m.renaming = false
		m.name.Blur()
		return m, nil
	case "esc":
		m.renaming = false
		m.name.Blur()
		return m, nil
	case "ctrl+c":
		m.close()
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// reloadFromDisk loads the edited level again after its file changed.
func (m *EditorModel) reloadFromDisk(path string) {
	if m.files == nil {
		return
	}
	levels, err := m.files.LoadFile(path)
	if err != nil {
		m.logger.Debug("ignoring level file", "path", path, "error", err)
		return
	}
	current := m.ed.Level()
	l, err := level.Find(levels, current.ID)
	if err != nil {
		return
	}
	if m.ed.Dirty() {
		m.status = "file changed on disk, unsaved edits kept"
		return
	}
	m.ed.Load(l)
	m.status = "reloaded " + filepath.Base(path)
	m.logger.Info("level reloaded", "id", l.ID, "path", path)
}

// export writes the working level to <exportDir>/<id>.json.
func (m EditorModel) export() string {
	l := m.ed.Level()
	path := filepath.Join(m.exportDir, l.ID+".json")
	f, err := os.Create(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := m.ed.Export(f); err != nil {
		return err.Error()
	}
	return "exported " + path
}

// close stops the preview and the watcher.
func (m EditorModel) close() {
	m.preview.Stop()
	if m.watcher != nil {
		//nolint:errcheck // Best-effort cleanup
		m.watcher.Close()
	}
}

func (m *EditorModel) moveCursor(delta int) {
	m.cursor = core.Clamp(m.cursor+delta, 0, max(0, m.runtime.ScreenW-1))
}

// clearPreviewArea blanks the rows the preview is drawn into.
func clearPreviewArea(s *core.Screen) {
	s.FillRect(0, 1, s.Width(), s.Height()-editorChromeRows+1, ' ', core.ColorDefault)
}

// columnSpan returns the timeline fractions [from, to) covered by a
// timeline column. The timeline and the placement tool share it.
func (m EditorModel) columnSpan(col int) (from, to float64) {
	w := float64(max(1, m.runtime.ScreenW))
	return float64(col) / w, float64(col+1) / w
}

// fraction maps the cursor column to the timeline fraction at its left edge.
func (m EditorModel) fraction() float64 {
	from, _ := m.columnSpan(m.cursor)
	return from
}

// drawTimeline paints the level overview with obstacles, the preview
// position and the cursor.
func (m EditorModel) drawTimeline(row int) {
	w := m.screen.Width()
	if w <= 0 {
		return
	}
	l := m.ed.Level()
	length := m.ed.Length()

	for col := 0; col < w; col++ {
		from, to := m.columnSpan(col)
		lo, hi := m.ed.PositionAt(from), m.ed.PositionAt(to)
		r, c := '─', core.ColorHorizon
		for _, o := range l.Obstacles {
			if !o.OverlapsX(lo, hi) {
				continue
			}
			c = core.ColorOr(o.Color, core.ColorObstacle)
			switch o.Type {
			case level.Spike:
				r = '▲'
			case level.Gap:
				r, c = '_', core.ColorGapEdge.Lighten(80)
			default:
				r = '█'
			}
		}
		m.screen.SetCell(col, row, r, c)
	}

	if p := m.sched.Preview(); p != nil {
		col := core.Clamp(int(p.Distance()/length*float64(w)), 0, w-1)
		m.screen.SetCell(col, row+1, '◆', p.Profile().SkinColor)
	}

	m.screen.SetCell(m.cursor, row+1, '^', core.ColorHUD)
	label := fmt.Sprintf(" x=%.0f", m.ed.PositionAt(m.fraction()))
	lx := m.cursor + 1
	if lx+len(label) > w {
		lx = m.cursor - len(label)
	}
	m.screen.DrawTextColor(lx, row+1, label, core.ColorHUD)
}

// View renders the editor.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	rows := max(editorChromeRows+1, m.runtime.ScreenH-lipgloss.Height(helpView))
	m.screen.Resize(m.runtime.ScreenW, rows)
	m.screen.Clear()

	l := m.ed.Level()
	dirty := ""
	if m.ed.Dirty() {
		dirty = " *"
	}
	m.screen.DrawTextColor(0, 0, fmt.Sprintf(" EDITOR  %s (%s)  length %.0f  obstacles %d%s",
		l.Title(), l.ID, m.ed.Length(), len(l.Obstacles), dirty), core.ColorHUD)

	previewRows := rows - editorChromeRows
	if p := m.sched.Preview(); p != nil {
		DrawSnapshot(m.screen, Viewport{X: 0, Y: 1, W: m.screen.Width(), H: previewRows}, p.Snapshot())
	}

	m.drawTimeline(1 + previewRows)

	t := m.ed.Tool()
	toolLabel := fmt.Sprintf(" tool %s  %.0fx%.0f  ", t.Type, t.Width, t.Height)
	m.screen.DrawTextColor(0, previewRows+3, toolLabel, core.ColorHUD)
	m.screen.DrawTextColor(len(toolLabel), previewRows+3, "■ "+t.Color, core.ColorOr(t.Color, core.ColorObstacle))
	m.screen.DrawTextColor(0, previewRows+4, " "+m.status, core.ColorHUD)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.renaming {
		b.WriteString(m.name.View())
	} else {
		b.WriteString(helpView)
	}
	return b.String()
}

// Level returns the working level.
func (m EditorModel) Level() level.Level {
	return m.ed.Level()
}

// IsQuitting returns true if user requested to quit entirely.
func (m EditorModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m EditorModel) BackToMenu() bool {
	return m.backToMenu
}

// RunEditor runs a standalone editor program. Back quits it.
func RunEditor(opts EditorOptions) error {
	model := NewEditorModel(opts)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
