package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// Notification copy.
const (
	toastCreated    = "Restaurant created"
	toastUpdated    = "Restaurant updated"
	toastDeleted    = "Restaurant deleted"
	toastSavedBody  = "You can find the restaurant using the search form"
	toastErrorTitle = "Error"
	toastErrorBody  = "An error occurred. Please, contact the administrator."
)

// toast is a transient notification shown under the command bar.
type toast struct {
	kind  toastKind
	title string
	body  string
	seq   int
}

// toastExpiredMsg dismisses the toast with the matching sequence number. Later
// toasts have higher numbers, so a stale timer never hides a newer toast.
type toastExpiredMsg struct {
	seq int
}

// showToast replaces the current toast and schedules its dismissal.
func (m *Model) showToast(kind toastKind, title, body string) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{kind: kind, title: title, body: body, seq: m.toastSeq}
	seq := m.toastSeq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) expireToast(seq int) {
	if m.toast != nil && m.toast.seq == seq {
		m.toast = nil
	}
}

func (m *Model) dismissToast() {
	m.toast = nil
}

// renderToast draws the toast as a full-width band.
func renderToast(theme Theme, t *toast, width int) string {
	if t == nil {
		return ""
	}
	accent := theme.Success
	icon := "✓"
	if t.kind == toastError {
		accent = theme.Danger
		icon = "✗"
	}
	bg := NewBgStyle(theme.SurfaceAlt)
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	iconStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)

	content := bg.Render(icon, iconStyle) + bg.Space() +
		bg.Render(t.title, styles.Text.Bold(true)) + bg.Spaces(2) +
		bg.Render(t.body, styles.MutedText)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(theme.SurfaceAlt)).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color(accent)).
		BorderBackground(lipgloss.Color(theme.SurfaceAlt)).
		Width(max(width-1, 1)).
		MaxHeight(1).
		Render(content)
}
