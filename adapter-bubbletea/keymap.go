package bubble_adapter

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the code block and document key bindings.
type KeyMap struct {
	Copy, ToggleWrap           key.Binding
	ScrollLeft, ScrollRight    key.Binding
	NextBlock, PreviousBlock   key.Binding
	Up, Down, PageUp, PageDown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy:       key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		ToggleWrap: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wrap")),

		ScrollLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),

		NextBlock:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next block")),
		PreviousBlock: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous block")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	}
}
