// ABOUTME: Key bindings for the terminal dashboard, exposed to bubbles/help for the help line.
// ABOUTME: Site selection, payload range adjustment, reset, and quit.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the dashboard responds to.
type KeyMap struct {
	PrevSite  key.Binding
	NextSite  key.Binding
	LowDown   key.Binding
	LowUp     key.Binding
	HighDown  key.Binding
	HighUp    key.Binding
	Reset     key.Binding
	ToggleAll key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevSite: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev site"),
		),
		NextSite: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next site"),
		),
		LowDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "low -1000"),
		),
		LowUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "low +1000"),
		),
		HighDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "high -1000"),
		),
		HighUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "high +1000"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		ToggleAll: key.NewBinding(
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
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevSite, k.NextSite, k.Reset, k.ToggleAll, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevSite, k.NextSite},
		{k.LowDown, k.LowUp, k.HighDown, k.HighUp},
		{k.Reset, k.ToggleAll, k.Quit},
	}
}
