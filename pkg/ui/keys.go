package ui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeys are the bindings active once signed in. The login view
// leaves keys to the huh form, except ctrl+c.
type dashboardKeys struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Jump     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Logout   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() dashboardKeys {
	return dashboardKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Logout, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Jump},
		{k.PageUp, k.PageDown, k.Copy},
		{k.Logout, k.Help, k.Quit},
	}
}
