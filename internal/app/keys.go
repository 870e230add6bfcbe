package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the stream screen's keyboard bindings.
type KeyMap struct {
	Fit        key.Binding
	Stretch    key.Binding
	Zoom       key.Binding
	CycleMode  key.Binding
	OnScreen   key.Binding
	Touchpad   key.Binding
	Reveal     key.Binding
	Info       key.Binding
	Events     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Suspend    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Fit: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "fit"),
		),
		Stretch: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "stretch"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "zoom"),
		),
		CycleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next mode"),
		),
		OnScreen: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "on-screen controls"),
		),
		Touchpad: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "touchpad only"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("tab", " "),
			key.WithHelp("tab", "show overlay"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "session info"),
		),
		Events: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "event log"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleMode, k.Reveal, k.Info, k.Events, k.Suspend, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fit, k.Stretch, k.Zoom, k.CycleMode},
		{k.OnScreen, k.Touchpad, k.Reveal},
		{k.Info, k.Events, k.ScrollUp, k.ScrollDown},
		{k.Suspend, k.Quit},
	}
}
