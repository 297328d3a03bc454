package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-arcade/internal/flow"
)

// KeyMap defines the navigation bindings shown in the help bar.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
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

// MenuAction represents a cursor action on a screen with buttons.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
)

// KeyMapper translates Bubble Tea key messages to controller events.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings for the help bar.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKeyToMenuAction returns the cursor action for a key on a button screen.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.keys.Up):
		return MenuActionUp
	case key.Matches(msg, km.keys.Down):
		return MenuActionDown
	case key.Matches(msg, km.keys.Select):
		return MenuActionSelect
	}
	return MenuActionNone
}

// MapKey translates a key to the event it produces on screen s.
// Returns false for keys that mean nothing.
//
// ctrl+c is the quit signal everywhere. Name entry takes letters raw, so
// q and b only quit or go back on the other screens.
func (km *KeyMapper) MapKey(s flow.State, msg tea.KeyMsg) (flow.Event, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return flow.Quit(), true
	case tea.KeyEsc:
		return flow.PressKey(flow.KeyEscape), true
	case tea.KeyEnter:
		return flow.PressKey(flow.KeyEnter), true
	case tea.KeyBackspace, tea.KeyDelete:
		return flow.PressKey(flow.KeyBackspace), true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Alt {
			return flow.Event{}, false
		}
		r := msg.Runes[0]
		if s != flow.StateNewHighScore {
			switch r {
			case 'q':
				return flow.Quit(), true
			case 'b':
				return flow.Back(), true
			}
		}
		return flow.Press(r), true
	case tea.KeySpace:
		return flow.Press(' '), true
	}
	return flow.Event{}, false
}
