package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Every color is a hex string.
type Theme struct {
	Name string

	Background string // behind overlays
	Surface    string // header, command bar, modal body
	SurfaceAlt string // form and table panes
	FocusBg    string // focused field or pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains the lipgloss styles derived from a theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	surface := fg(t.Text).Background(lipgloss.Color(t.Surface))
	return Styles{
		Surface:     surface,
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),
		Header:      surface.Padding(0, 1),
		Logo:        fg(t.Warning).Bold(true),
		Selected:    fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),
	}
}

// WithBackground paints every text style onto bgColor so that styled runs
// inside a colored block do not punch holes through it. Selected keeps its
// own background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Surface, &out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

// TableStyles adapts the theme to the bubbles table. An unfocused table still
// marks the cursor row, just without the selection color.
func (t Theme) TableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(t.Accent))
	s.Cell = s.Cell.Foreground(lipgloss.Color(t.Text))

	rowFg, rowBg := t.Text, t.FocusBg
	if focused {
		rowFg, rowBg = t.SelectionText, t.SelectionBg
	}
	s.Selected = s.Selected.Foreground(lipgloss.Color(rowFg)).Background(lipgloss.Color(rowBg)).Bold(false)
	return s
}

// HelpStyles adapts the theme to the bubbles help view.
func (t Theme) HelpStyles() help.Styles {
	bg := lipgloss.Color(t.Surface)
	key := fg(t.Accent).Background(bg)
	desc := fg(t.Muted).Background(bg)
	sep := fg(t.Faint).Background(bg)
	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}

// builtinThemes is also the ctrl+t cycle order. The first entry is the
// fallback for unknown names.
var builtinThemes = []Theme{
	{
		// github.com/EdenEast/nightfox.nvim
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderMuted: "#212e3f", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
	},
	{
		// github.com/rebelot/kanagawa.nvim
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#363646",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderMuted: "#2A2A37", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
	},
	{
		// github.com/morhetz/gruvbox, dark medium
		Name:       "Gruvbox",
		Background: "#1d2021", Surface: "#282828", SurfaceAlt: "#32302f", FocusBg: "#3c3836",
		SelectionBg: "#504945", SelectionText: "#fbf1c7",
		Border: "#665c54", BorderMuted: "#3c3836", BorderFocus: "#fabd2f",
		Text: "#ebdbb2", Muted: "#a89984", Faint: "#7c6f64", Accent: "#83a598",
		Success: "#b8bb26", Warning: "#fabd2f", Danger: "#fb4934", Info: "#8ec07c",
	},
	{
		// Tailwind slate and sky
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderMuted: "#1e293b", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
	},
}

// GetTheme returns the theme called name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range builtinThemes {
		if t.Name == name {
			return t
		}
	}
	return builtinThemes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range builtinThemes {
		if t.Name == current {
			return builtinThemes[(i+1)%len(builtinThemes)].Name
		}
	}
	return builtinThemes[0].Name
}

// ThemeNames lists the built-in themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}
