package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/color-dash/internal/core"
	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/storage"
)

// EndlessLevelID is the score key of generated endless runs.
const EndlessLevelID = "endless"

// EndlessLength is the length of a generated endless level. Play does not
// loop, so it only has to outlast any realistic run.
const EndlessLength = 250000

// EndlessLevel generates the obstacle course of an endless run.
func EndlessLevel(seed int64) level.Level {
	l := level.NewSpawner(seed).Generate(EndlessLevelID, EndlessLength)
	l.Name = "Endless"
	return l
}

// MenuItemKind distinguishes level entries from the extra menu entries.
type MenuItemKind int

const (
	MenuItemLevel MenuItemKind = iota
	MenuItemEndless
	MenuItemNewLevel
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Kind      MenuItemKind
	LevelID   string
	Title     string
	Best      int
	Obstacles int
	Length    float64
}

// detail describes the item under the cursor.
func (it MenuItem) detail() string {
	switch it.Kind {
	case MenuItemEndless:
		return "generated course, speed keeps rising"
	case MenuItemNewLevel:
		return "open a blank level in the editor"
	}
	return fmt.Sprintf("%d obstacles  ·  length %.0f", it.Obstacles, it.Length)
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	allowEdit      bool
	quitting       bool
	selected       *MenuItem
	edit           bool // selected item should be opened in the editor
	openScoreboard bool
}

// NewMenuModel creates a menu listing levels plus endless mode and, when
// allowEdit is set, a "new level" entry.
func NewMenuModel(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig, allowEdit bool) MenuModel {
	items := make([]MenuItem, 0, len(levels)+2)
	for _, l := range levels {
		items = append(items, MenuItem{
			Kind:      MenuItemLevel,
			LevelID:   l.ID,
			Title:     l.Title(),
			Obstacles: len(l.Obstacles),
			Length:    l.EffectiveLength(),
		})
	}
	items = append(items, MenuItem{Kind: MenuItemEndless, LevelID: EndlessLevelID, Title: "Endless run"})
	if allowEdit {
		items = append(items, MenuItem{Kind: MenuItemNewLevel, Title: "New level..."})
	}

	if store != nil {
		for i := range items {
			if items[i].LevelID == "" {
				continue
			}
			if best, err := store.HighScore(items[i].LevelID); err == nil {
				items[i].Best = best
			}
		}
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		allowEdit: allowEdit,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.edit = selected.Kind == MenuItemNewLevel
			return m, tea.Quit
		}

	case MenuActionEdit:
		if m.allowEdit && len(m.items) > 0 && m.items[m.cursor].Kind != MenuItemEndless {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.edit = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  C O L O R   D A S H  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d)", item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		b.WriteString(dim.Render(centerText(m.items[m.cursor].detail(), m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	if m.allowEdit {
		controls = "Up/Down: Navigate  |  Enter: Play  |  E: Edit  |  Tab: Scores  |  Q: Quit"
	}
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// WantsEdit returns true if the selection should open the editor.
func (m MenuModel) WantsEdit() bool {
	return m.edit
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Endless         bool
	Edit            bool
	NewLevel        bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(levels, store, cfg, true)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result summarises the final menu state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		sel := m.Selected()
		result.LevelID = sel.LevelID
		result.Endless = sel.Kind == MenuItemEndless
		result.NewLevel = sel.Kind == MenuItemNewLevel
		result.Edit = m.WantsEdit()
	}
	return result
}
