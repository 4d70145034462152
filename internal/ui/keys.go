package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit         key.Binding
	Help         key.Binding
	CycleTheme   key.Binding
	Activity     key.Binding
	DismissToast key.Binding
	Add          key.Binding
	Tab          key.Binding
	ShiftTab     key.Binding
	Escape       key.Binding

	// Form fields
	Submit key.Binding
	Prev   key.Binding
	Next   key.Binding
	Toggle key.Binding

	// Results table
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Reveal key.Binding

	// Edit modal
	Save          key.Binding
	Delete        key.Binding
	ConfirmYes    key.Binding
	ConfirmNo     key.Binding
	ActivateField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Activity: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Activity log"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Dismiss notification"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Add restaurant"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		// Form fields
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous value"),
		),
		Next: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next value"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),

		// Results table
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Show review/notes"),
		),

		// Edit modal
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Create/Update"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Delete"),
		),
		ConfirmYes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		ConfirmNo: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
		ActivateField: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Press button"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Add, k.Tab, k.Reveal, k.Activity, k.Help, k.Quit}
}

// modalHelp returns key bindings for the command bar while the modal is open.
func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Save, k.Delete, k.Escape}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Prev, k.Next, k.Toggle, k.Submit},
		{k.Up, k.Down, k.Open, k.Reveal},
		{k.Add, k.Save, k.Delete, k.Escape},
		{k.Activity, k.DismissToast, k.CycleTheme, k.Help, k.Quit},
	}
}
