package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/platter/internal/restaurant"
)

// formField identifies a focus stop in the search form.
type formField int

const (
	fieldName formField = iota
	fieldCategory
	fieldRating
	fieldTried
	fieldSearch
	formFieldCount
)

// SearchForm collects filter criteria. It never talks to the API; Update
// reports a submit and the caller decides what to do with Criteria().
type SearchForm struct {
	name        textinput.Model
	categories  []restaurant.Category
	categoryIdx int // -1 means any category
	rating      int // 0 means any rating
	tried       bool
	focus       formField
	focused     bool
	resetSeen   int
}

// NewSearchForm returns a form with every field at its initial value.
func NewSearchForm() SearchForm {
	f := SearchForm{categories: restaurant.AllCategories()}
	f.Reset()
	return f
}

// Reset reverts every field to its initial value.
func (f *SearchForm) Reset() {
	in := textinput.New()
	in.Placeholder = "Name"
	in.Prompt = ""
	in.CharLimit = 120
	in.Width = 24
	if f.focused && f.focus == fieldName {
		in.Focus()
	}
	f.name = in
	f.categoryIdx = -1
	f.rating = 0
	f.tried = false
}

// SyncReset resets the form when the page's reset counter moved.
func (f *SearchForm) SyncReset(counter int) bool {
	if counter == f.resetSeen {
		return false
	}
	f.resetSeen = counter
	f.Reset()
	return true
}

// Criteria returns exactly the values currently entered.
func (f SearchForm) Criteria() restaurant.Criteria {
	c := restaurant.Criteria{
		NameBeginsWith: strings.TrimSpace(f.name.Value()),
		TriedBefore:    f.tried,
		RatingAtLeast:  f.rating,
	}
	if f.categoryIdx >= 0 && f.categoryIdx < len(f.categories) {
		c.Category = f.categories[f.categoryIdx]
	}
	return c
}

// Focus moves focus to field and returns the text input's cursor command.
func (f *SearchForm) Focus(field formField) tea.Cmd {
	f.focused = true
	f.focus = field
	if field == fieldName {
		return f.name.Focus()
	}
	f.name.Blur()
	return nil
}

// Blur removes focus from the whole form.
func (f *SearchForm) Blur() {
	f.focused = false
	f.name.Blur()
}

// FocusNext advances to the next field. It returns false when focus would
// leave the form past its last field.
func (f *SearchForm) FocusNext() (tea.Cmd, bool) {
	if f.focus+1 >= formFieldCount {
		return nil, false
	}
	return f.Focus(f.focus + 1), true
}

// FocusPrev moves to the previous field, returning false from the first one.
func (f *SearchForm) FocusPrev() (tea.Cmd, bool) {
	if f.focus <= fieldName {
		return nil, false
	}
	return f.Focus(f.focus - 1), true
}

// Update handles a key press. The bool result reports a submit.
func (f SearchForm) Update(msg tea.KeyMsg, keys keyMap) (SearchForm, tea.Cmd, bool) {
	if key.Matches(msg, keys.Submit) {
		return f, nil, true
	}

	switch f.focus {
	case fieldName:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return f, cmd, false

	case fieldCategory:
		switch {
		case key.Matches(msg, keys.Next):
			f.categoryIdx = cycle(f.categoryIdx+1, -1, len(f.categories)-1)
		case key.Matches(msg, keys.Prev):
			f.categoryIdx = cycle(f.categoryIdx-1, -1, len(f.categories)-1)
		}

	case fieldRating:
		switch {
		case key.Matches(msg, keys.Next):
			f.rating = cycle(f.rating+1, 0, restaurant.MaxRating)
		case key.Matches(msg, keys.Prev):
			f.rating = cycle(f.rating-1, 0, restaurant.MaxRating)
		}

	case fieldTried:
		if key.Matches(msg, keys.Toggle, keys.Next, keys.Prev) {
			f.tried = !f.tried
		}

	case fieldSearch:
		if key.Matches(msg, keys.Toggle) {
			return f, nil, true
		}
	}
	return f, nil, false
}

// cycle wraps v into [lo, hi].
func cycle(v, lo, hi int) int {
	if v > hi {
		return lo
	}
	if v < lo {
		return hi
	}
	return v
}

func (f SearchForm) categoryLabel() string {
	if f.categoryIdx < 0 || f.categoryIdx >= len(f.categories) {
		return "Category"
	}
	return f.categories[f.categoryIdx].Label()
}

func (f SearchForm) ratingLabel() string {
	if f.rating <= 0 {
		return "Rating at least"
	}
	return fmt.Sprintf("Rating at least %d", f.rating)
}

func triedLabel(tried bool) string {
	if tried {
		return "✓ Tried before"
	}
	return "✗ Not tried before"
}

// View renders the form as one row, or stacked when narrower than the
// compact threshold.
func (f SearchForm) View(theme Theme, width int) string {
	bgColor := ternary(f.focused, theme.FocusBg, theme.SurfaceAlt)
	styles := theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	field := func(id formField, text string, placeholder bool) string {
		style := styles.Text
		if placeholder {
			style = styles.FaintText
		}
		if f.focused && f.focus == id {
			style = styles.Selected
		}
		return bg.Render(text, style)
	}
	selectField := func(id formField, text string, placeholder bool) string {
		if f.focused && f.focus == id {
			return bg.Render("‹", styles.AccentText) + field(id, text, placeholder) + bg.Render("›", styles.AccentText)
		}
		return bg.Space() + field(id, text, placeholder) + bg.Space()
	}

	name := f.name
	name.TextStyle = styles.Text
	name.PlaceholderStyle = styles.FaintText
	name.Cursor.Style = styles.AccentText

	parts := []string{
		bg.Render("Name", styles.MutedText) + bg.Space() + name.View(),
		selectField(fieldCategory, f.categoryLabel(), f.categoryIdx < 0),
		selectField(fieldRating, f.ratingLabel(), f.rating <= 0),
		selectField(fieldTried, triedLabel(f.tried), false),
	}
	buttonState := buttonIdle
	if f.focused && f.focus == fieldSearch {
		buttonState = buttonFocused
	}
	parts = append(parts, renderButton(theme, "Search", buttonState, false))

	var content string
	if width < LayoutCompactWidth {
		lines := make([]string, len(parts))
		for i, p := range parts {
			lines[i] = bg.FillLine(p, max(width-2, 1))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, lines...)
	} else {
		content = bg.Join(parts, "  ")
	}
	return renderTitledBox(theme, "Search", content, width, 0, f.focused)
}
