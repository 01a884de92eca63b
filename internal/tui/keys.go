package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Refresh  key.Binding

	// Birth form
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	// Luck and timeline cursors
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Reading key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),

	NextField: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
	PrevField: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compute")),

	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),

	Reading: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reading")),
}
