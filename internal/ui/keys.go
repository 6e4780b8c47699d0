package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Login form
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	// Users screen
	Search       key.Binding
	SortName     key.Binding
	SortEmail    key.Binding
	SortCity     key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	CyclePerPage key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search by name"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort by name"),
		),
		SortEmail: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort by email"),
		),
		SortCity: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sort by city"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("h/left", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("l/right", "Next page"),
		),
		CyclePerPage: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rows per page"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Escape},
		{k.SortName, k.SortEmail, k.SortCity},
		{k.PrevPage, k.NextPage, k.CyclePerPage},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
