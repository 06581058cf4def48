package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the widget.
type keyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding
	Tap  key.Binding

	// Swipe equivalents; these stay active in lock mode.
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding

	// Controls
	Category key.Binding
	Lock     key.Binding
	Share    key.Binding
	Favorite key.Binding
	Pinned   key.Binding

	// Style panel
	Font      key.Binding
	Bigger    key.Binding
	Smaller   key.Binding
	NextColor key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Tap (twice to unlock)"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next category"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Previous category"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "down", "j"),
			key.WithHelp("r/↓", "Refresh"),
		),
		Category: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Pick category"),
		),
		Lock: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Lock mode"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Share"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Favorite"),
		),
		Pinned: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Next favorite"),
		),
		Font: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle font"),
		),
		Bigger: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "Text size"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Smaller text"),
		),
		NextColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next color"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Refresh, k.Share, k.Lock, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Refresh, k.Category},
		{k.Share, k.Favorite, k.Pinned, k.Lock, k.Tap},
		{k.Font, k.Bigger, k.NextColor},
		{k.Help, k.Quit},
	}
}
