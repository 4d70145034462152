package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

var (
	_ Modal = (*EditModal)(nil)
	_ Modal = confirmDialog{}
)

// confirmedMsg carries the answer of a confirmDialog back to its owner.
type confirmedMsg struct {
	action string
	ok     bool
}

// confirmDialog asks a yes/no question before a destructive action.
type confirmDialog struct {
	action string
	prompt string
}

func newConfirmDialog(action, prompt string) confirmDialog {
	return confirmDialog{action: action, prompt: prompt}
}

// Update closes on y/n/esc and reports the answer as a confirmedMsg.
func (d confirmDialog) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(k, keys.ConfirmYes):
		return d, answer(d.action, true), true
	case key.Matches(k, keys.ConfirmNo):
		return d, answer(d.action, false), true
	}
	return d, nil, false
}

func answer(action string, ok bool) tea.Cmd {
	return func() tea.Msg { return confirmedMsg{action: action, ok: ok} }
}

// View renders the prompt as a single bordered line.
func (d confirmDialog) View(theme Theme, width, _ int) string {
	styles := theme.Styles()
	body := styles.WarningText.Bold(true).Render(d.prompt) + "  " +
		styles.AccentText.Render("y") + styles.MutedText.Render(" Yes  ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(" No")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(0, 1).
		MaxWidth(width).
		Render(body)
}
