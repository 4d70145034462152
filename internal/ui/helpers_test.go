package ui

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/platter/internal/restaurant"
)

// fakeAPI records every call and answers from canned values.
type fakeAPI struct {
	mu sync.Mutex

	queryResult []restaurant.Restaurant
	queryErr    error
	writeErr    error

	queries []restaurant.Criteria
	created []restaurant.Restaurant
	updated map[string]restaurant.Restaurant
	deleted []string
}

var _ restaurant.API = (*fakeAPI)(nil)

func (f *fakeAPI) Query(_ context.Context, c restaurant.Criteria) ([]restaurant.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, c)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return restaurant.CloneAll(f.queryResult), nil
}

func (f *fakeAPI) Create(_ context.Context, data restaurant.Restaurant) (restaurant.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return restaurant.Restaurant{}, f.writeErr
	}
	f.created = append(f.created, data.Clone())
	return data.Clone(), nil
}

func (f *fakeAPI) Update(_ context.Context, name string, data restaurant.Restaurant) (restaurant.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return restaurant.Restaurant{}, f.writeErr
	}
	if f.updated == nil {
		f.updated = make(map[string]restaurant.Restaurant)
	}
	f.updated[name] = data.Clone()
	return data.Clone(), nil
}

func (f *fakeAPI) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeAPI) Ping(context.Context) error { return nil }

func loadFixtures(t *testing.T) []restaurant.Restaurant {
	t.Helper()
	data, err := os.ReadFile("testdata/restaurants.json")
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}
	var items []restaurant.Restaurant
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	return items
}

// keyMsg builds the tea.KeyMsg bubbletea would deliver for a key name.
func keyMsg(name string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"tab":       tea.KeyTab,
		"shift+tab": tea.KeyShiftTab,
		"esc":       tea.KeyEsc,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		" ":         tea.KeySpace,
		"backspace": tea.KeyBackspace,
		"ctrl+n":    tea.KeyCtrlN,
		"ctrl+s":    tea.KeyCtrlS,
		"ctrl+d":    tea.KeyCtrlD,
		"ctrl+r":    tea.KeyCtrlR,
		"ctrl+a":    tea.KeyCtrlA,
		"ctrl+x":    tea.KeyCtrlX,
		"ctrl+l":    tea.KeyCtrlL,
		"ctrl+u":    tea.KeyCtrlU,
		"ctrl+t":    tea.KeyCtrlT,
		"f1":        tea.KeyF1,
	}
	if kt, ok := special[name]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// cmdTimeout bounds how long a command may run before it is treated as a
// timer (cursor blink, toast expiry, UI tick) and dropped.
const cmdTimeout = 300 * time.Millisecond

func execCmd(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, msg != nil
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// settle runs cmd and every command it produces, feeding messages back into
// the model until nothing is left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := execCmd(next)
		if !ok {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		if _, isQuit := msg.(tea.QuitMsg); isQuit {
			continue
		}
		updated, c := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, c)
	}
	return m
}

// press delivers keys one by one and settles the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = settle(t, updated.(Model), cmd)
	}
	return m
}

// newTestModel returns a sized model wired to api.
func newTestModel(t *testing.T, api restaurant.API) Model {
	t.Helper()
	m := New(Options{
		Client:         api,
		ThemeName:      "Slate",
		PrefsPath:      t.TempDir() + "/prefs.toml",
		RequestTimeout: 2 * time.Second,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(Model)
}

// payloadKeys returns the JSON keys a write body would carry.
func payloadKeys(t *testing.T, r restaurant.Restaurant) map[string]any {
	t.Helper()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return out
}
