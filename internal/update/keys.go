package update

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the decoder surface.
type KeyMap struct {
	Decode         key.Binding
	Up             key.Binding
	Down           key.Binding
	Clear          key.Binding
	ToggleAdvanced key.Binding
	ToggleTheme    key.Binding
	SwitchView     key.Binding
	Quit           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Decode: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "decode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev frame"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next frame"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear frames"),
		),
		ToggleAdvanced: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "advanced"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "about"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decode, k.Up, k.Down, k.Clear, k.ToggleAdvanced, k.ToggleTheme, k.SwitchView, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Decode, k.Up, k.Down, k.Clear},
		{k.ToggleAdvanced, k.ToggleTheme, k.SwitchView, k.Quit},
	}
}
