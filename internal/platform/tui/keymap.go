package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/color-dash/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a gameplay action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame turns a left click into a jump.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		frame.Set(core.ActionJump)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionEdit
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "e":
		return MenuActionEdit
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// EditorKeyMap defines the key bindings of the level editor.
type EditorKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	FarLeft  key.Binding
	FarRight key.Binding
	Place    key.Binding
	Remove   key.Binding
	Tool     key.Binding
	Wider    key.Binding
	Narrower key.Binding
	Taller   key.Binding
	Shorter  key.Binding
	Color    key.Binding
	Longer   key.Binding
	Shorten  key.Binding
	Rename   key.Binding
	Save     key.Binding
	Export   key.Binding
	Sample   key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Place, k.Remove, k.Tool, k.Save, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.FarLeft, k.FarRight},
		{k.Place, k.Remove, k.Tool, k.Color},
		{k.Wider, k.Narrower, k.Taller, k.Shorter},
		{k.Longer, k.Shorten, k.Rename, k.Sample},
		{k.Save, k.Export, k.Back, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "cursor right"),
		),
		FarLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("H", "jump left"),
		),
		FarRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("L", "jump right"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "remove"),
		),
		Tool: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next tool"),
		),
		Wider: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "wider"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "narrower"),
		),
		Taller: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "taller"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "lower"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next colour"),
		),
		Longer: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "longer level"),
		),
		Shorten: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "shorter level"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rename"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export json"),
		),
		Sample: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "load sample"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
