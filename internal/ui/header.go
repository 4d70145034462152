package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/platter/internal/state"
)

// renderHeader renders the status bar: logo, API health, search state and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("platter", styles.Logo)}
	parts = append(parts, m.healthParts(styles, bg)...)

	if m.baseURL != "" && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render(truncateMiddle(m.baseURL, 40), styles.FaintText))
	}

	if m.page.Searching() {
		parts = append(parts, bg.Render("Searching...", styles.WarningText))
	} else if items, ok := m.page.Results(); ok {
		parts = append(parts,
			bg.Render("Results:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(items)), styles.Text))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) healthParts(styles Styles, bg BgStyle) []string {
	h := m.health
	switch {
	case !h.Checked:
		return []string{bg.Render("Checking API...", styles.WarningText)}
	case h.IsOffline():
		last := h.LastChecked.Format("15:04:05")
		return []string{
			bg.Render("● API offline", styles.DangerText),
			bg.Render(classifyConnectionError(h.LastError), styles.DangerText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
			bg.Render(last, styles.MutedText),
		}
	default:
		return []string{
			bg.Render("● API online", styles.SuccessText),
			bg.Render(formatLatency(h), styles.FaintText),
		}
	}
}

func formatLatency(h state.Health) string {
	if h.Latency <= 0 {
		return ""
	}
	return h.Latency.Round(time.Millisecond).String()
}

// classifyConnectionError maps a probe error to a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status"):
		return "BAD STATUS"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints for the current context.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	h := m.help
	h.Styles = m.theme.HelpStyles()
	h.Width = max(m.width-20, 20)

	bindings := m.keys.ShortHelp()
	if m.modal != nil {
		bindings = m.keys.modalHelp()
	}
	hints := h.ShortHelpView(bindings)
	theme := bg.Render("ctrl+t", styles.AccentText) + bg.Render(":", styles.FaintText) + bg.Render(m.theme.Name, styles.FaintText)

	return styles.Header.Width(m.width).Render(hints + bg.Spaces(2) + theme)
}
