package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/platter/internal/restaurant"
)

// modalField identifies a focus stop in the edit modal.
type modalField int

const (
	mfName modalField = iota
	mfCategories
	mfTried
	mfRating
	mfReview
	mfNotes
	mfCancel
	mfDelete
	mfSubmit
	modalFieldCount
)

const (
	newRestaurantTitle = "New restaurant"
	notesPlaceholder   = "Notes (separated with newlines)"
	deletePrompt       = "Are you sure?"
	actionDelete       = "delete"
)

// EditModal edits a single record and issues the create, update or delete
// call itself. Results come back to the root model as saveResultMsg.
type EditModal struct {
	api      apiRunner
	original restaurant.Restaurant

	name       textinput.Model
	categories []restaurant.Category
	selected   map[restaurant.Category]bool
	catCursor  int
	tried      bool
	rating     int // 0 means not set
	review     textarea.Model
	notes      textarea.Model

	focus   modalField
	loading bool
	confirm Modal
}

// NewEditModal opens the modal on r; an unnamed record creates a new entry.
func NewEditModal(api apiRunner, r restaurant.Restaurant) *EditModal {
	m := &EditModal{api: api, categories: restaurant.AllCategories()}
	m.load(r)
	return m
}

// SetRecord re-initialises the local state when a different record is supplied.
func (m *EditModal) SetRecord(r restaurant.Restaurant) {
	if r.Equal(m.original) {
		return
	}
	m.load(r)
}

func (m *EditModal) load(r restaurant.Restaurant) {
	m.original = r.Clone()

	m.name = textinput.New()
	m.name.Placeholder = "Name"
	m.name.Prompt = ""
	m.name.CharLimit = 120
	m.name.SetValue(r.Name)

	m.selected = make(map[restaurant.Category]bool, len(r.Categories))
	for _, c := range r.Categories {
		if !c.Valid() {
			slog.Warn("dropping unknown category", slog.String("name", r.Name), slog.String("category", string(c)))
			continue
		}
		m.selected[c] = true
	}
	m.catCursor = 0
	m.tried = r.TriedBefore
	m.rating = 0
	if r.Rating != nil && restaurant.ValidRating(*r.Rating) {
		m.rating = *r.Rating
	}

	m.review = newTextarea("Review", 3)
	if r.Review != nil {
		m.review.SetValue(*r.Review)
	}
	m.notes = newTextarea(notesPlaceholder, 4)
	m.notes.SetValue(joinLines(r.Notes))

	m.loading = false
	m.confirm = nil
	m.setFocus(mfName)
}

func newTextarea(placeholder string, height int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(height)
	ta.Blur()
	return ta
}

// Title is the record's original name, or "New restaurant".
func (m *EditModal) Title() string {
	if m.original.Exists() {
		return m.original.Name
	}
	return newRestaurantTitle
}

// Original returns the record the modal was opened on.
func (m *EditModal) Original() restaurant.Restaurant {
	return m.original.Clone()
}

// Loading reports whether a write is in flight.
func (m *EditModal) Loading() bool {
	return m.loading
}

// CanSubmit reports whether the entered name and categories allow a write.
// It is derived from the live inputs on every call.
func (m *EditModal) CanSubmit() bool {
	return strings.TrimSpace(m.name.Value()) != "" && len(m.selectedCategories()) > 0
}

// PrimaryEnabled is CanSubmit while no write is in flight.
func (m *EditModal) PrimaryEnabled() bool {
	return m.CanSubmit() && !m.loading
}

func (m *EditModal) primaryLabel() string {
	return ternary(m.original.Exists(), "Update", "Create")
}

func (m *EditModal) selectedCategories() []restaurant.Category {
	out := make([]restaurant.Category, 0, len(m.selected))
	for _, c := range m.categories {
		if m.selected[c] {
			out = append(out, c)
		}
	}
	return out
}

// Payload builds the write body from the current inputs. Rating and review
// are left out entirely unless the record is marked as tried.
func (m *EditModal) Payload() restaurant.Restaurant {
	data := restaurant.Restaurant{
		Name:        strings.TrimSpace(m.name.Value()),
		Categories:  m.selectedCategories(),
		TriedBefore: m.tried,
		Notes:       splitLines(m.notes.Value()),
	}
	if !m.tried {
		return data
	}
	if m.rating > 0 {
		data.Rating = restaurant.IntPtr(m.rating)
	}
	review := strings.TrimSpace(m.review.Value())
	if review != "" || m.original.HasReview() {
		data.Review = restaurant.StringPtr(review)
	}
	return data
}

// fieldEnabled reports whether f takes part in the focus order.
func (m *EditModal) fieldEnabled(f modalField) bool {
	switch f {
	case mfRating, mfReview:
		return m.tried
	case mfDelete:
		return m.original.Exists()
	}
	return true
}

func (m *EditModal) setFocus(f modalField) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.review.Blur()
	m.notes.Blur()
	switch f {
	case mfName:
		return m.name.Focus()
	case mfReview:
		return m.review.Focus()
	case mfNotes:
		return m.notes.Focus()
	}
	return nil
}

func (m *EditModal) moveFocus(step int) tea.Cmd {
	next := m.focus
	for i := 0; i < int(modalFieldCount); i++ {
		next = modalField((int(next) + step + int(modalFieldCount)) % int(modalFieldCount))
		if m.fieldEnabled(next) {
			return m.setFocus(next)
		}
	}
	return nil
}

// Update implements Modal.
func (m *EditModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case saveResultMsg:
		m.loading = false
		return m, nil, false

	case confirmedMsg:
		if msg.action == actionDelete && msg.ok {
			return m, m.deleteCmd(), false
		}
		return m, nil, false

	case tea.KeyMsg:
		if m.confirm != nil {
			var cmd tea.Cmd
			var closed bool
			m.confirm, cmd, closed = m.confirm.Update(msg, keys)
			if closed {
				m.confirm = nil
			}
			return m, cmd, false
		}
		return m.handleKey(msg, keys)
	}
	return m, nil, false
}

func (m *EditModal) handleKey(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Escape):
		return m, nil, true
	case key.Matches(msg, keys.Tab):
		return m, m.moveFocus(1), false
	case key.Matches(msg, keys.ShiftTab):
		return m, m.moveFocus(-1), false
	case key.Matches(msg, keys.Save):
		return m, m.submit(), false
	case key.Matches(msg, keys.Delete):
		m.askDelete()
		return m, nil, false
	}

	switch m.focus {
	case mfName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd, false

	case mfCategories:
		switch {
		case key.Matches(msg, keys.Next):
			m.catCursor = cycle(m.catCursor+1, 0, len(m.categories)-1)
		case key.Matches(msg, keys.Prev):
			m.catCursor = cycle(m.catCursor-1, 0, len(m.categories)-1)
		case key.Matches(msg, keys.Toggle, keys.ActivateField):
			c := m.categories[m.catCursor]
			if m.selected[c] {
				delete(m.selected, c)
			} else {
				m.selected[c] = true
			}
		}

	case mfTried:
		if key.Matches(msg, keys.Toggle, keys.ActivateField, keys.Next, keys.Prev) {
			m.tried = !m.tried
		}

	case mfRating:
		// Once chosen, a rating can be changed but not unset: an update
		// without a rating leaves the stored one in place.
		lo := 0
		if m.rating > 0 {
			lo = restaurant.MinRating
		}
		switch {
		case key.Matches(msg, keys.Next):
			m.rating = cycle(m.rating+1, lo, restaurant.MaxRating)
		case key.Matches(msg, keys.Prev):
			m.rating = cycle(m.rating-1, lo, restaurant.MaxRating)
		}

	case mfReview:
		var cmd tea.Cmd
		m.review, cmd = m.review.Update(msg)
		return m, cmd, false

	case mfNotes:
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd, false

	case mfCancel:
		if key.Matches(msg, keys.ActivateField, keys.Toggle) {
			return m, nil, true
		}

	case mfDelete:
		if key.Matches(msg, keys.ActivateField, keys.Toggle) {
			m.askDelete()
		}

	case mfSubmit:
		if key.Matches(msg, keys.ActivateField, keys.Toggle) {
			return m, m.submit(), false
		}
	}
	return m, nil, false
}

func (m *EditModal) askDelete() {
	if !m.original.Exists() || m.loading {
		return
	}
	m.confirm = newConfirmDialog(actionDelete, deletePrompt)
}

// submit issues update-by-name for an existing record, otherwise create.
func (m *EditModal) submit() tea.Cmd {
	if !m.PrimaryEnabled() {
		return nil
	}
	m.loading = true
	data := m.Payload()

	if m.original.Exists() {
		name := m.original.Name
		return m.api.run(func(ctx context.Context, client restaurant.API) tea.Msg {
			saved, err := client.Update(ctx, name, data)
			return saveResultMsg{op: opUpdate, name: name, record: saved, err: err}
		})
	}
	return m.api.run(func(ctx context.Context, client restaurant.API) tea.Msg {
		saved, err := client.Create(ctx, data)
		return saveResultMsg{op: opCreate, name: data.Name, record: saved, err: err}
	})
}

func (m *EditModal) deleteCmd() tea.Cmd {
	if !m.original.Exists() || m.loading {
		return nil
	}
	m.loading = true
	name := m.original.Name
	return m.api.run(func(ctx context.Context, client restaurant.API) tea.Msg {
		err := client.Delete(ctx, name)
		return saveResultMsg{op: opDelete, name: name, err: err}
	})
}

// View implements Modal.
func (m *EditModal) View(theme Theme, width, height int) string {
	boxWidth := min(ModalMaxWidth, max(width-4, 30))
	inner := boxWidth - 4
	styles := theme.Styles()

	label := func(f modalField, text string) string {
		style := styles.MutedText
		switch {
		case !m.fieldEnabled(f):
			style = styles.FaintText.Faint(true)
		case m.focus == f:
			style = styles.AccentText.Bold(true)
		}
		return style.Render(padRight(text, 14))
	}
	value := func(f modalField, text string) string {
		switch {
		case !m.fieldEnabled(f):
			return styles.FaintText.Faint(true).Render(text)
		case m.focus == f:
			return styles.Selected.Render(text)
		}
		return styles.Text.Render(text)
	}

	m.name.Width = inner - 15
	m.review.SetWidth(inner - 15)
	m.notes.SetWidth(inner - 15)

	rows := []string{
		label(mfName, "Name") + " " + m.name.View(),
		label(mfCategories, "Categories") + " " + m.categoriesView(theme, inner-15),
		label(mfTried, "Visited") + " " + value(mfTried, triedLabel(m.tried)),
		label(mfRating, "Rating") + " " + value(mfRating, ratingText(m.rating)),
		lipgloss.JoinHorizontal(lipgloss.Top, label(mfReview, "Review")+" ", m.textareaView(theme, m.review, m.tried)),
		lipgloss.JoinHorizontal(lipgloss.Top, label(mfNotes, "Notes")+" ", m.textareaView(theme, m.notes, true)),
		"",
		m.footerView(theme),
	}
	if m.confirm != nil {
		rows = append(rows, m.confirm.View(theme, inner, height))
	}

	title := styles.AccentText.Bold(true).Render(truncate(m.Title(), inner))
	body := title + "\n\n" + strings.Join(rows, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 1).
		Width(boxWidth).
		Render(body)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

func ratingText(rating int) string {
	if rating <= 0 {
		return "‹ Rating ›"
	}
	return fmt.Sprintf("‹ %d ›", rating)
}

func (m *EditModal) categoriesView(theme Theme, width int) string {
	styles := theme.Styles()
	chosen := m.selectedCategories()
	summary := styles.FaintText.Render("Categories")
	if len(chosen) > 0 {
		summary = styles.Text.Render(restaurant.JoinLabels(chosen))
	}
	if m.focus != mfCategories {
		return truncateStyled(summary, width)
	}
	c := m.categories[m.catCursor]
	mark := ternary(m.selected[c], "[x]", "[ ]")
	cursor := styles.Selected.Render(fmt.Sprintf("‹ %s %s ›", mark, c.Label()))
	return cursor + " " + truncateStyled(summary, max(width-lipgloss.Width(cursor)-1, 0))
}

func (m *EditModal) textareaView(theme Theme, ta textarea.Model, enabled bool) string {
	styles := theme.Styles()
	if !enabled {
		text := ta.Value()
		if text == "" {
			text = ta.Placeholder
		}
		return styles.FaintText.Faint(true).Render(truncate(strings.ReplaceAll(text, "\n", " "), ta.Width()))
	}
	ta.FocusedStyle.Base = lipgloss.NewStyle().Background(lipgloss.Color(theme.FocusBg))
	ta.BlurredStyle.Base = lipgloss.NewStyle().Background(lipgloss.Color(theme.SurfaceAlt))
	ta.FocusedStyle.Placeholder = styles.FaintText
	ta.BlurredStyle.Placeholder = styles.FaintText
	return ta.View()
}

func (m *EditModal) footerView(theme Theme) string {
	state := func(f modalField, enabled bool) buttonState {
		switch {
		case !enabled:
			return buttonDisabled
		case m.focus == f:
			return buttonFocused
		}
		return buttonIdle
	}

	primary := state(mfSubmit, m.CanSubmit())
	if m.loading {
		primary = buttonBusy
	}
	deleteState := state(mfDelete, m.original.Exists() && !m.loading)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		renderButton(theme, "Cancel", state(mfCancel, true), false), "  ",
		renderButton(theme, "Delete", deleteState, true), "  ",
		renderButton(theme, m.primaryLabel(), primary, false),
	)
}

// truncateStyled cuts a rendered string to width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
