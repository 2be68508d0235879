package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the explorer.
type KeyMap struct {
	Quit      key.Binding
	Rerun     key.Binding
	TermsUp   key.Binding
	TermsDown key.Binding
	Details   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "re-run"),
		),
		TermsUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "terms ×10"),
		),
		TermsDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "terms ÷10"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle details"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.TermsUp, k.TermsDown, k.Details, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
