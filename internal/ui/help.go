package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpGroupTitles names the groups returned by keyMap.FullHelp, in order.
var helpGroupTitles = []string{"Search form", "Results", "Edit", "General"}

// renderHelp renders the f1 overlay. Groups sit side by side when the
// terminal is wide enough and stack otherwise.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var columns []string
	for i, group := range m.keys.FullHelp() {
		title := "More"
		if i < len(helpGroupTitles) {
			title = helpGroupTitles[i]
		}
		columns = append(columns, m.helpColumn(title, group))
	}

	gap := "   "
	body := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, gap)...)
	if lipgloss.Width(body)+8 > m.width {
		body = strings.Join(columns, "\n\n")
	}

	heading := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	rule := styles.FaintText.Render(strings.Repeat("─", max(lipgloss.Width(body), lipgloss.Width(heading))))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(heading + "\n" + rule + "\n\n" + body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func (m Model) helpColumn(title string, bindings []key.Binding) string {
	styles := m.theme.Styles()

	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, lipgloss.Width(b.Help().Key))
	}
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(keyWidth + 2)

	lines := []string{styles.AccentText.Bold(true).Render(title)}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		lines = append(lines, keyStyle.Render(h.Key)+styles.Text.Render(h.Desc))
	}
	return strings.Join(lines, "\n")
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
