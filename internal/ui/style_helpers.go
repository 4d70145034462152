package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle provides helpers for rendering text with consistent background colors.
// This solves lipgloss's limitation where ANSI reset codes between styled segments
// cause gaps in background color. See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with a style, ensuring every character including spaces
// carries the background color.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	if !strings.Contains(text, " ") {
		return style.Background(b.bg).Render(text)
	}

	wordStyle := style.Background(b.bg)
	words := strings.Split(text, " ")
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, wordStyle.Render(w))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine pads rendered content to fill the specified width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// buttonState selects how a footer button is drawn.
type buttonState int

const (
	buttonIdle buttonState = iota
	buttonFocused
	buttonDisabled
	buttonBusy
)

// renderButton draws "[ Label ]" in the theme's colors for the given state.
func renderButton(theme Theme, label string, state buttonState, danger bool) string {
	fg := theme.Accent
	if danger {
		fg = theme.Danger
	}
	style := lipgloss.NewStyle().Padding(0, 1)
	switch state {
	case buttonFocused:
		style = style.Background(lipgloss.Color(fg)).Foreground(lipgloss.Color(theme.Background)).Bold(true)
	case buttonDisabled:
		style = style.Foreground(lipgloss.Color(theme.Faint)).Faint(true)
	case buttonBusy:
		style = style.Foreground(lipgloss.Color(theme.Warning))
		label += "…"
	default:
		style = style.Foreground(lipgloss.Color(fg)).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(lipgloss.Color(theme.Border))
	}
	return style.Render(label)
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐. A zero height sizes the box to its content.
func renderTitledBox(theme Theme, title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := theme.Border, theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = theme.BorderFocus, theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Text))

	innerWidth := max(width-2, 1)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2
	if height <= 0 {
		boxHeight = len(contentLines)
	}

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
