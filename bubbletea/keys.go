package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the preview key bindings. It implements help.KeyMap.
type KeyMap struct {
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next fixture")),
		Prev:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous fixture")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Prev, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
