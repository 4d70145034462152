package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/platter/internal/config"
	"github.com/five82/platter/internal/restaurant"
	"github.com/five82/platter/internal/state"
)

// pane identifies which part of the search page holds focus.
type pane int

const (
	paneForm pane = iota
	paneTable
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Client         restaurant.API
	Health         *state.Store
	Config         *config.Config
	ThemeName      string
	PrefsPath      string
	RequestTimeout time.Duration
	UITick         time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	api         apiRunner
	healthStore *state.Store
	config      *config.Config
	prefsPath   string
	baseURL     string
	uiTick      time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool
	focus  pane

	// Search page
	page  state.Page
	form  SearchForm
	table ResultsTable
	modal Modal

	// Notifications
	toast    *toast
	toastSeq int

	// Overlays
	showHelp     bool
	showActivity bool
	activity     viewport.Model

	health state.Health
}

// apiRunner issues API calls off the update loop, each bounded by a timeout.
type apiRunner struct {
	ctx     context.Context
	client  restaurant.API
	timeout time.Duration
}

// run executes fn in a command.
func (r apiRunner) run(fn func(ctx context.Context, client restaurant.API) tea.Msg) tea.Cmd {
	parent, client, timeout := r.ctx, r.client, r.timeout
	return func() tea.Msg {
		if parent == nil {
			parent = context.Background()
		}
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return fn(ctx, client)
	}
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick == 0 {
		uiTick = DefaultUIInterval
	}

	client := opts.Client
	if client == nil {
		client = (*restaurant.Client)(nil)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}

	var baseURL string
	if u, ok := client.(interface{ BaseURL() string }); ok {
		baseURL = u.BaseURL()
	}

	m := Model{
		api:         apiRunner{ctx: ctx, client: client, timeout: opts.RequestTimeout},
		healthStore: opts.Health,
		config:      opts.Config,
		prefsPath:   prefsPath,
		baseURL:     baseURL,
		uiTick:      uiTick,
		theme:       GetTheme(opts.ThemeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		form:        NewSearchForm(),
		table:       NewResultsTable(),
		activity:    viewport.New(0, 0),
	}
	m.form.Focus(fieldName)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.uiTick),
		textinput.Blink,
	}
	if m.healthStore != nil {
		cmds = append(cmds, fetchHealthCmd(m.healthStore))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.healthStore != nil {
			cmds = append(cmds, fetchHealthCmd(m.healthStore))
		}
		cmds = append(cmds, tickCmd(m.uiTick))
		return m, tea.Batch(cmds...)

	case healthMsg:
		m.health = state.Health(msg)
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case confirmedMsg:
		return m.updateModal(msg)

	case toastExpiredMsg:
		m.expireToast(msg.seq)
		return m, nil

	case activityMsg:
		m.setActivity(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showActivity {
		return m.renderActivity()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showActivity {
		if key.Matches(msg, m.keys.Escape, m.keys.Activity) {
			m.showActivity = false
			return m, nil
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := config.SavePrefs(m.prefsPath, config.Prefs{Theme: m.theme.Name}); err != nil {
			slog.Warn("save prefs failed", slog.String("path", m.prefsPath), slog.String("error", err.Error()))
		}
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.showActivity = true
		return m, m.loadActivityCmd()

	case key.Matches(msg, m.keys.DismissToast):
		m.dismissToast()
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		return m.openModal(restaurant.Restaurant{})

	case key.Matches(msg, m.keys.Tab):
		cmd := m.focusNext()
		return m, cmd

	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.focusPrev()
		return m, cmd
	}

	if m.focus == paneTable {
		var cmd tea.Cmd
		var activated *restaurant.Restaurant
		m.table, cmd, activated = m.table.Update(msg, m.keys)
		if activated != nil {
			return m.openModal(*activated)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	var submitted bool
	m.form, cmd, submitted = m.form.Update(msg, m.keys)
	if submitted {
		search := m.search()
		return m, tea.Batch(cmd, search)
	}
	return m, cmd
}

// focusNext moves focus through the form fields and then into the table.
func (m *Model) focusNext() tea.Cmd {
	if m.focus == paneForm {
		if cmd, ok := m.form.FocusNext(); ok {
			return cmd
		}
		if m.table.Present() && m.table.Len() > 0 {
			m.form.Blur()
			m.table.Focus()
			m.focus = paneTable
			return nil
		}
	}
	return m.focusForm(fieldName)
}

// focusPrev is focusNext in reverse.
func (m *Model) focusPrev() tea.Cmd {
	if m.focus == paneForm {
		if cmd, ok := m.form.FocusPrev(); ok {
			return cmd
		}
		if m.table.Present() && m.table.Len() > 0 {
			m.form.Blur()
			m.table.Focus()
			m.focus = paneTable
			return nil
		}
		return m.form.Focus(fieldSearch)
	}
	return m.focusForm(fieldSearch)
}

func (m *Model) focusForm(field formField) tea.Cmd {
	m.table.Blur()
	m.focus = paneForm
	return m.form.Focus(field)
}

// search replaces the snapshot with the result of a query for the current
// form values.
func (m *Model) search() tea.Cmd {
	criteria := m.form.Criteria()
	m.page.BeginSearch()
	m.table.SetResults(nil, false)
	slog.Debug("search submitted",
		slog.String("name", criteria.NameBeginsWith),
		slog.String("category", string(criteria.Category)),
		slog.Bool("tried_before", criteria.TriedBefore),
		slog.Int("rating_at_least", criteria.RatingAtLeast),
	)
	return searchCmd(m.api, criteria)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Error("search failed", slog.String("error", msg.err.Error()))
		m.page.SearchFailed()
		cmd := m.showToast(toastError, toastErrorTitle, toastErrorBody)
		return m, cmd
	}
	m.page.ApplyResults(msg.items)
	items, _ := m.page.Results()
	m.table.SetResults(items, true)
	slog.Debug("search completed", slog.Int("results", len(items)))
	return m, nil
}

// openModal opens the edit modal on r, or re-syncs an open one.
func (m Model) openModal(r restaurant.Restaurant) (tea.Model, tea.Cmd) {
	if r.Exists() {
		m.page.Open(r)
	} else {
		m.page.OpenNew()
	}
	record, _ := m.page.Modal()
	if edit, ok := m.modal.(*EditModal); ok {
		edit.SetRecord(record)
		return m, nil
	}
	edit := NewEditModal(m.api, record)
	m.modal = edit
	return m, edit.setFocus(mfName)
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal == nil {
		return m, nil
	}
	var cmd tea.Cmd
	var closed bool
	m.modal, cmd, closed = m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
		m.page.CloseModal()
	}
	return m, cmd
}

func (m Model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		attrs := []any{
			slog.String("op", msg.op.String()),
			slog.String("name", msg.name),
			slog.String("error", msg.err.Error()),
		}
		switch {
		case restaurant.IsConflict(msg.err):
			slog.Warn("save rejected: name already taken", attrs...)
		case restaurant.IsNotFound(msg.err):
			slog.Warn("save rejected: restaurant no longer exists", attrs...)
		default:
			slog.Error("save failed", attrs...)
		}
		next, _ := m.updateModal(msg)
		m = next.(Model)
		cmd := m.showToast(toastError, toastErrorTitle, toastErrorBody)
		return m, cmd
	}

	slog.Info("restaurant saved", slog.String("op", msg.op.String()), slog.String("name", msg.name))
	m.page.SaveSucceeded()
	m.modal = nil
	m.table.SetResults(nil, false)
	m.form.SyncReset(m.page.ResetCounter())
	cmd := m.focusForm(fieldName)

	title := toastUpdated
	switch msg.op {
	case opCreate:
		title = toastCreated
	case opDelete:
		title = toastDeleted
	}
	toastCmd := m.showToast(toastSuccess, title, toastSavedBody)
	return m, tea.Batch(cmd, toastCmd)
}

// resize lays out the table in the space left under the form.
func (m *Model) resize() {
	rows := m.height - m.chromeHeight() - lipgloss.Height(m.form.View(m.theme, m.width)) - 4
	m.table.SetSize(m.width, rows)
	m.activity.Width = max(m.width-4, 10)
	m.activity.Height = max(m.height-6, 3)
}

// chromeHeight is the number of lines above the page content.
func (m Model) chromeHeight() int {
	h := 2
	if m.toast != nil {
		h++
	}
	return h
}

// renderMain renders the header, command bar, notifications and page.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.toast != nil {
		b.WriteString(renderToast(m.theme, m.toast, m.width))
		b.WriteString("\n")
	}

	contentHeight := max(m.height-m.chromeHeight(), 1)
	if m.modal != nil {
		b.WriteString(m.modal.View(m.theme, m.width, contentHeight))
		return b.String()
	}

	content := m.form.View(m.theme, m.width)
	if table := m.table.View(m.theme); table != "" {
		content += "\n" + table
	} else if m.page.Searching() {
		content += "\n" + m.theme.Styles().MutedText.Render(" Searching...")
	}
	b.WriteString(lipgloss.NewStyle().MaxHeight(contentHeight).Render(content))
	return b.String()
}

// Messages

type tickMsg time.Time

type healthMsg state.Health

type searchResultMsg struct {
	items []restaurant.Restaurant
	err   error
}

// saveOp names the write a saveResultMsg reports on.
type saveOp int

const (
	opCreate saveOp = iota
	opUpdate
	opDelete
)

func (o saveOp) String() string {
	switch o {
	case opCreate:
		return "create"
	case opDelete:
		return "delete"
	default:
		return "update"
	}
}

type saveResultMsg struct {
	op     saveOp
	name   string
	record restaurant.Restaurant
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchHealthCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return healthMsg(store.Snapshot())
	}
}

func searchCmd(api apiRunner, criteria restaurant.Criteria) tea.Cmd {
	return api.run(func(ctx context.Context, client restaurant.API) tea.Msg {
		items, err := client.Query(ctx, criteria)
		return searchResultMsg{items: items, err: err}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
