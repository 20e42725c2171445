package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/color-dash/internal/level"
	"github.com/vovakirdan/color-dash/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower terminals get a one-line level switcher
	sidebarWidth       = 26
	maxRuns            = 100
)

var (
	boardAccent = lipgloss.Color("#ffd166")
	boardMuted  = lipgloss.Color("241")
	boardBorder = lipgloss.Color("240")
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextLevel: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardLevel is one entry of the level list with its aggregate stats.
type boardLevel struct {
	id    string
	title string
	stats storage.LevelStats
}

// ScoreboardModel lists the recorded runs of one level at a time.
type ScoreboardModel struct {
	levels   []boardLevel // endless last
	selected int
	store    *storage.Store
	runs     []storage.ScoreEntry
	overall  int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard over levels plus endless runs.
func NewScoreboardModel(levels []level.Level, store *storage.Store, width, height int) ScoreboardModel {
	entries := make([]boardLevel, 0, len(levels)+1)
	for _, l := range levels {
		entries = append(entries, boardLevel{id: l.ID, title: l.Title()})
	}
	entries = append(entries, boardLevel{id: EndlessLevelID, title: "Endless"})

	m := ScoreboardModel{
		levels: entries,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}

	if store != nil {
		if all, err := store.GetAllLevelStats(); err == nil {
			for i := range m.levels {
				if st, ok := all[m.levels[i].id]; ok {
					m.levels[i].stats = *st
				}
			}
		}
		if best, err := store.BestOverall(); err == nil {
			m.overall = best
		}
	}

	m.table = m.newTable()
	m.selectLevel(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// newTable sizes the run table to the space left beside the sidebar.
func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	dateW := min(max(avail-28, 12), 18)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Distance", Width: 10},
			{Title: "% best", Width: 8},
			{Title: "When", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(boardBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#1b1b1b")).
		Background(boardAccent).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectLevel switches to level i and reloads its runs.
func (m *ScoreboardModel) selectLevel(i int) {
	n := len(m.levels)
	m.selected = ((i % n) + n) % n
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.TopScores(m.levels[m.selected].id, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	best := 0
	if len(m.runs) > 0 {
		best = m.runs[0].Distance
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		pct := "-"
		if best > 0 {
			pct = fmt.Sprintf("%d%%", r.Distance*100/best)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Distance),
			pct,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.selectLevel(m.selected + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.selectLevel(m.selected - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	cur := m.levels[m.selected]
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(boardAccent)
	b.WriteString("\n")
	b.WriteString(title.Render(centerText("BEST DISTANCES", m.width)))
	b.WriteString("\n")
	if m.overall > 0 {
		b.WriteString(centerText(fmt.Sprintf("best overall %d", m.overall), m.width))
	}
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(boardBorder).
		Padding(0, 1)
	body := panel.Render(cur.title + "\n" + m.statsLine(cur) + "\n\n" + m.runsView())

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(fmt.Sprintf("◀ %s ▶  (%d/%d)", cur.title, m.selected+1, len(m.levels)), m.width))
		b.WriteString("\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(boardMuted).Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarises the runs of one level.
func (m ScoreboardModel) statsLine(l boardLevel) string {
	st := l.stats
	if st.Runs == 0 {
		return lipgloss.NewStyle().Foreground(boardMuted).Render("no runs yet")
	}
	return fmt.Sprintf("runs %d  |  best %d  |  avg %.0f  |  last %s",
		st.Runs, st.Best, st.Average, st.LastPlayed.Format("Jan 02"))
}

func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	for i, l := range m.levels {
		name := l.title
		if limit := sidebarWidth - 12; len(name) > limit {
			name = name[:limit-1] + "…"
		}
		line := fmt.Sprintf("  %-*s %6s", sidebarWidth-12, name, bestLabel(l.stats.Best))
		style := lipgloss.NewStyle()
		if i == m.selected {
			line = "›" + line[1:]
			style = style.Bold(true).Foreground(boardAccent)
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(boardBorder).
		Width(sidebarWidth).
		Render(sb.String())
}

func bestLabel(best int) string {
	if best <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", best)
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(boardMuted).
			Italic(true).
			Padding(1, 2).
			Render("Play this level to set a best distance!")
	}
	return m.table.View()
}

// Selected returns the id of the level being shown.
func (m ScoreboardModel) Selected() string {
	return m.levels[m.selected].id
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(levels []level.Level, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(levels, store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
