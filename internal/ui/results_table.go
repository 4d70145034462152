package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/platter/internal/restaurant"
)

// Column headers in display order.
const (
	colName        = "Name"
	colCategories  = "Categories"
	colTriedBefore = "Tried before"
	colRating      = "Rating"
	colReview      = "Review"
	colNotes       = "Notes"
)

const (
	glyphTried    = "✓"
	glyphNotTried = "✗"
	revealLabel   = "Show"
	emptyLabel    = "No data"
)

// ResultsTable renders an optional result set. It has no opinion on where the
// records came from; the caller activates a row through Update.
type ResultsTable struct {
	table    table.Model
	items    []restaurant.Restaurant
	present  bool
	compact  bool
	revealed bool
	width    int
}

// NewResultsTable returns a table with no result set.
func NewResultsTable() ResultsTable {
	t := ResultsTable{width: LayoutCompactWidth}
	t.table = table.New(
		table.WithColumns(tableColumns(t.width, false)),
		table.WithHeight(8),
	)
	return t
}

// SetResults replaces the rendered records. present=false means no search
// result exists yet, which renders nothing at all.
func (t *ResultsTable) SetResults(items []restaurant.Restaurant, present bool) {
	t.items = restaurant.CloneAll(items)
	t.present = present
	t.revealed = false
	t.table.SetRows(buildRows(t.items, t.compact))
	t.table.SetCursor(0)
}

// SetSize adapts columns to the available width and the number of visible rows.
func (t *ResultsTable) SetSize(width, height int) {
	t.width = width
	compact := width < LayoutCompactWidth
	// Rows must match the column count before columns change.
	t.table.SetRows(nil)
	t.compact = compact
	t.table.SetColumns(tableColumns(width, compact))
	t.table.SetRows(buildRows(t.items, compact))
	t.table.SetHeight(max(height, 2))
	t.table.SetWidth(max(width-2, 10))
}

// Present reports whether a result set is shown.
func (t ResultsTable) Present() bool {
	return t.present
}

// Len returns the number of rows.
func (t ResultsTable) Len() int {
	return len(t.items)
}

// Focus gives the table keyboard focus.
func (t *ResultsTable) Focus() {
	t.table.Focus()
}

// Blur removes keyboard focus.
func (t *ResultsTable) Blur() {
	t.table.Blur()
}

// Selected returns the record under the cursor.
func (t ResultsTable) Selected() (restaurant.Restaurant, bool) {
	idx := t.table.Cursor()
	if !t.present || idx < 0 || idx >= len(t.items) {
		return restaurant.Restaurant{}, false
	}
	return t.items[idx].Clone(), true
}

// Headers returns the column titles currently displayed.
func (t ResultsTable) Headers() []string {
	cols := t.table.Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}

// Rows returns the display cells currently rendered.
func (t ResultsTable) Rows() [][]string {
	rows := t.table.Rows()
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Update handles a key press while the table is focused. A non-nil record
// means the selected row was activated.
func (t ResultsTable) Update(msg tea.KeyMsg, keys keyMap) (ResultsTable, tea.Cmd, *restaurant.Restaurant) {
	switch {
	case key.Matches(msg, keys.Open):
		if r, ok := t.Selected(); ok {
			return t, nil, &r
		}
		return t, nil, nil
	case key.Matches(msg, keys.Reveal):
		if _, ok := t.Selected(); ok {
			t.revealed = !t.revealed
		}
		return t, nil, nil
	}

	before := t.table.Cursor()
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	if t.table.Cursor() != before {
		t.revealed = false
	}
	return t, cmd, nil
}

// tableColumns lays out the columns. Compact mode keeps only Name and Rating.
func tableColumns(width int, compact bool) []table.Column {
	// Each cell carries one column of padding on both sides; the box adds two.
	if compact {
		ratingWidth := 6
		nameWidth := max(width-2-4-ratingWidth, 8)
		return []table.Column{
			{Title: colName, Width: nameWidth},
			{Title: colRating, Width: ratingWidth},
		}
	}
	fixed := []table.Column{
		{Title: colCategories, Width: 24},
		{Title: colTriedBefore, Width: 12},
		{Title: colRating, Width: 6},
		{Title: colReview, Width: 6},
		{Title: colNotes, Width: 5},
	}
	used := 2 + 2*(len(fixed)+1)
	for _, c := range fixed {
		used += c.Width
	}
	nameWidth := max(width-used, 16)
	return append([]table.Column{{Title: colName, Width: nameWidth}}, fixed...)
}

func buildRows(items []restaurant.Restaurant, compact bool) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, r := range items {
		rows = append(rows, tableRow(r, compact))
	}
	return rows
}

// tableRow derives the display cells for one record.
func tableRow(r restaurant.Restaurant, compact bool) table.Row {
	rating := ""
	if r.Rating != nil {
		rating = strconv.Itoa(*r.Rating)
	}
	if compact {
		return table.Row{r.Name, rating}
	}
	return table.Row{
		r.Name,
		restaurant.JoinLabels(r.Categories),
		ternary(r.TriedBefore, glyphTried, glyphNotTried),
		rating,
		ternary(r.HasReview(), revealLabel, ""),
		ternary(len(r.Notes) > 0, revealLabel, ""),
	}
}

// View renders the table, "No data" for an empty result set, or nothing when
// no result set exists.
func (t ResultsTable) View(theme Theme) string {
	if !t.present {
		return ""
	}
	styles := theme.Styles()
	tbl := t.table
	tbl.SetStyles(theme.TableStyles(tbl.Focused()))

	body := tbl.View()
	if len(t.items) == 0 {
		body = headerOnly(body) + "\n" + styles.MutedText.Render(emptyLabel)
	}
	if t.revealed {
		if r, ok := t.Selected(); ok {
			body += "\n" + renderReveal(theme, r)
		}
	}
	return renderTitledBox(theme, "Restaurants", body, t.width, 0, tbl.Focused())
}

// headerOnly keeps the header lines of a rendered table with no rows.
func headerOnly(rendered string) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) > 2 {
		lines = lines[:2]
	}
	return strings.Join(lines, "\n")
}

// renderReveal shows the review and a bulleted notes list for one record.
func renderReveal(theme Theme, r restaurant.Restaurant) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(r.Name))
	if r.HasReview() {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Review: "))
		b.WriteString(styles.Text.Render(*r.Review))
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Notes:"))
		for _, note := range r.Notes {
			b.WriteString("\n")
			b.WriteString(styles.Text.Render("  • " + note))
		}
	}
	if !r.HasReview() && len(r.Notes) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("No review or notes"))
	}
	return b.String()
}
