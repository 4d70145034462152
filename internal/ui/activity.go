package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/platter/internal/logtail"
)

// activityMsg carries the tail of the log file for the activity overlay.
type activityMsg struct {
	lines []string
	err   error
}

// loadActivityCmd reads the tail of the configured log file.
func (m Model) loadActivityCmd() tea.Cmd {
	path := ""
	if m.config != nil {
		path = m.config.LogFile
	}
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLineLimit)
		return activityMsg{lines: lines, err: err}
	}
}

func (m *Model) setActivity(msg activityMsg) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.activity.Width == 0 {
		m.activity.Width = max(m.width-4, 10)
		m.activity.Height = max(m.height-6, 3)
	}
	m.activity.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	var content string
	switch {
	case msg.err != nil:
		content = bg.Render("Could not read log: "+msg.err.Error(), styles.DangerText)
	case len(msg.lines) == 0:
		content = bg.Render("No activity yet", styles.MutedText)
	default:
		rendered := make([]string, 0, len(msg.lines))
		for _, line := range msg.lines {
			rendered = append(rendered, colorizeEntry(logtail.Parse(line), styles, bg, m.activity.Width))
		}
		content = strings.Join(rendered, "\n")
	}
	m.activity.SetContent(content)
	m.activity.GotoBottom()
}

// colorizeEntry renders "HH:MM:SS LEVEL message k=v" with the level colored.
func colorizeEntry(e logtail.Entry, styles Styles, bg BgStyle, width int) string {
	if e.Level == "" {
		return bg.Render(truncate(e.Raw, width), styles.Text)
	}

	var b strings.Builder
	if ts := shortTime(e.Time); ts != "" {
		b.WriteString(bg.Render(ts, styles.FaintText))
		b.WriteString(bg.Space())
	}
	b.WriteString(bg.Render(padRight(e.Level, 5), levelStyle(e.Level, styles).Bold(true)))
	b.WriteString(bg.Space())
	b.WriteString(bg.Render(e.Message, styles.Text))
	for _, a := range e.Attrs {
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(a.Key+"=", styles.MutedText))
		b.WriteString(bg.Render(a.Value, styles.AccentText))
	}
	return b.String()
}

// shortTime keeps the clock part of an RFC 3339 timestamp.
func shortTime(ts string) string {
	_, clock, ok := strings.Cut(ts, "T")
	if !ok {
		return ts
	}
	if len(clock) >= 8 {
		return clock[:8]
	}
	return clock
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// renderActivity renders the activity overlay.
func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	box := renderTitledBox(m.theme, "Activity", m.activity.View(), m.width, max(m.height-3, 3), true)
	hint := styles.FaintText.Render(" esc close · ↑/↓ scroll")
	return m.renderHeader() + "\n" + box + "\n" + hint
}
