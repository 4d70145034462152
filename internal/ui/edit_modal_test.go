package ui

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/platter/internal/restaurant"
)

func newTestModal(api restaurant.API, r restaurant.Restaurant) *EditModal {
	return NewEditModal(apiRunner{client: api}, r)
}

// modalPress feeds keys to the modal and returns the last command.
func modalPress(t *testing.T, m *EditModal, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next Modal
		var closed bool
		next, cmd, closed = m.Update(keyMsg(k), DefaultKeyMap())
		if closed {
			t.Fatalf("modal closed on %q", k)
		}
		if next != Modal(m) {
			t.Fatalf("modal replaced itself on %q", k)
		}
	}
	return cmd
}

// runModalCmd executes a write command and hands its result back to the modal.
func runModalCmd(t *testing.T, m *EditModal, cmd tea.Cmd) saveResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	res, ok := cmd().(saveResultMsg)
	if !ok {
		t.Fatalf("command returned %T, want saveResultMsg", cmd())
	}
	m.Update(res, DefaultKeyMap())
	return res
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func TestEditModal_NewRecordTitleAndLabel(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{})
	if m.Title() != "New restaurant" {
		t.Fatalf("Title = %q, want New restaurant", m.Title())
	}
	if m.primaryLabel() != "Create" {
		t.Fatalf("primaryLabel = %q, want Create", m.primaryLabel())
	}
	if m.fieldEnabled(mfDelete) {
		t.Fatalf("delete enabled for a new record")
	}

	existing := newTestModal(&fakeAPI{}, restaurant.Restaurant{Name: "Pho", Categories: []restaurant.Category{restaurant.Asian}})
	if existing.Title() != "Pho" || existing.primaryLabel() != "Update" {
		t.Fatalf("Title/label = %q/%q, want Pho/Update", existing.Title(), existing.primaryLabel())
	}
}

func TestEditModal_CanSubmitTracksInputs(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{})
	if m.CanSubmit() {
		t.Fatalf("CanSubmit = true on an empty form")
	}

	modalPress(t, m, "Trattoria")
	if m.CanSubmit() {
		t.Fatalf("CanSubmit = true without categories")
	}

	modalPress(t, m, "tab", " ")
	if !m.CanSubmit() {
		t.Fatalf("CanSubmit = false with a name and a category")
	}

	// Back to the name field and erase it.
	modalPress(t, m, "shift+tab", "ctrl+u")
	if m.CanSubmit() {
		t.Fatalf("CanSubmit = true after clearing the name")
	}
	if cmd := modalPress(t, m, "ctrl+s"); cmd != nil {
		t.Fatalf("ctrl+s issued a write while the primary action is disabled")
	}
}

func TestEditModal_NotTriedOmitsRatingAndReview(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModal(api, restaurant.Restaurant{
		Name:        "Sushi Go",
		Categories:  []restaurant.Category{restaurant.Sushi},
		TriedBefore: true,
		Rating:      restaurant.IntPtr(6),
		Review:      restaurant.StringPtr("ok"),
	})

	// name -> categories -> tried; toggle tried off.
	modalPress(t, m, "tab", "tab", " ")
	if m.fieldEnabled(mfRating) || m.fieldEnabled(mfReview) {
		t.Fatalf("rating/review stay enabled when not tried")
	}

	res := runModalCmd(t, m, modalPress(t, m, "ctrl+s"))
	if res.err != nil || res.op != opUpdate || res.name != "Sushi Go" {
		t.Fatalf("result = %+v, want successful update of Sushi Go", res)
	}

	body := payloadKeys(t, api.updated["Sushi Go"])
	if _, ok := body["rating"]; ok {
		t.Fatalf("body carries rating: %v", body)
	}
	if _, ok := body["review"]; ok {
		t.Fatalf("body carries review: %v", body)
	}
	if body["triedBefore"] != false {
		t.Fatalf("triedBefore = %v, want false", body["triedBefore"])
	}
}

func TestEditModal_TriedSendsExactlyEnteredFields(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModal(api, restaurant.Restaurant{
		Name:       "Big Kebab",
		Categories: []restaurant.Category{restaurant.Kebab},
		Notes:      []string{"Open late"},
	})

	// tried on, rating 7, then a review.
	modalPress(t, m, "tab", "tab", " ", "tab")
	for range 7 {
		modalPress(t, m, "right")
	}
	modalPress(t, m, "tab", "Great garlic sauce")

	res := runModalCmd(t, m, modalPress(t, m, "ctrl+s"))
	if res.err != nil {
		t.Fatalf("save failed: %v", res.err)
	}

	sent := api.updated["Big Kebab"]
	body := payloadKeys(t, sent)
	want := []string{"categories", "name", "notes", "rating", "review", "triedBefore"}
	if got := sortedKeys(body); !slices.Equal(got, want) {
		t.Fatalf("body keys = %v, want %v", got, want)
	}
	if sent.Rating == nil || *sent.Rating != 7 {
		t.Fatalf("rating = %v, want 7", sent.Rating)
	}
	if sent.Review == nil || *sent.Review != "Great garlic sauce" {
		t.Fatalf("review = %v, want Great garlic sauce", sent.Review)
	}
	if !slices.Equal(sent.Notes, []string{"Open late"}) {
		t.Fatalf("notes = %q, want [Open late]", sent.Notes)
	}
}

func TestEditModal_NotesRoundTrip(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{
		Name:       "Sushi Go",
		Categories: []restaurant.Category{restaurant.Sushi},
		Notes:      []string{"a", "b", "c"},
	})
	if got := m.notes.Value(); got != "a\nb\nc" {
		t.Fatalf("notes text = %q, want a\\nb\\nc", got)
	}
	if got := m.Payload().Notes; !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("Payload notes = %q, want [a b c]", got)
	}

	m.notes.SetValue("a\n\n  \nb")
	if got := m.Payload().Notes; !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("Payload notes = %q, want blank lines dropped", got)
	}
}

func TestEditModal_CreateUsesEnteredName(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModal(api, restaurant.Restaurant{})
	modalPress(t, m, "Trattoria Napoli", "tab")

	// Select pasta and pizza by walking the category cursor.
	all := restaurant.AllCategories()
	for i, c := range all {
		if c == restaurant.Pasta || c == restaurant.Pizza {
			modalPress(t, m, " ")
		}
		if i < len(all)-1 {
			modalPress(t, m, "right")
		}
	}

	cmd := modalPress(t, m, "ctrl+s")
	if !m.Loading() || m.PrimaryEnabled() {
		t.Fatalf("primary action not disabled while saving")
	}
	res := runModalCmd(t, m, cmd)
	if m.Loading() {
		t.Fatalf("still loading after the result arrived")
	}
	if res.op != opCreate || len(api.created) != 1 {
		t.Fatalf("result = %+v, created = %d", res, len(api.created))
	}
	got := api.created[0]
	if got.Name != "Trattoria Napoli" || restaurant.JoinLabels(got.Categories) != "Pasta, pizza" {
		t.Fatalf("created %+v", got)
	}
}

func TestEditModal_DeleteNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModal(api, restaurant.Restaurant{Name: "Pho", Categories: []restaurant.Category{restaurant.Asian}})

	modalPress(t, m, "ctrl+r")
	if m.confirm == nil {
		t.Fatalf("ctrl+r did not ask for confirmation")
	}
	if view := m.View(GetTheme("Slate"), 100, 40); !strings.Contains(view, "Are you sure?") {
		t.Fatalf("confirmation prompt missing from view")
	}

	// "n" answers no.
	answerCmd := modalPress(t, m, "n")
	if m.confirm != nil {
		t.Fatalf("confirmation still open after answering")
	}
	next, cmd, _ := m.Update(answerCmd(), DefaultKeyMap())
	if next != Modal(m) || cmd != nil {
		t.Fatalf("declining issued a command")
	}

	modalPress(t, m, "ctrl+r")
	answerCmd = modalPress(t, m, "y")
	_, cmd, _ = m.Update(answerCmd(), DefaultKeyMap())
	res := runModalCmd(t, m, cmd)
	if res.op != opDelete || !slices.Equal(api.deleted, []string{"Pho"}) {
		t.Fatalf("result = %+v, deleted = %v", res, api.deleted)
	}
}

func TestEditModal_FailedSaveKeepsModalOpen(t *testing.T) {
	api := &fakeAPI{writeErr: errors.New("boom")}
	m := newTestModal(api, restaurant.Restaurant{Name: "Pho", Categories: []restaurant.Category{restaurant.Asian}})

	res := runModalCmd(t, m, modalPress(t, m, "ctrl+s"))
	if res.err == nil {
		t.Fatalf("expected an error result")
	}
	if m.Loading() || !m.PrimaryEnabled() {
		t.Fatalf("primary action not re-enabled after a failure")
	}
}

func TestEditModal_SetRecordResyncsOnlyOnChange(t *testing.T) {
	r := restaurant.Restaurant{Name: "Pho", Categories: []restaurant.Category{restaurant.Asian}}
	m := newTestModal(&fakeAPI{}, r)
	modalPress(t, m, " edited")

	m.SetRecord(r)
	if got := m.name.Value(); got != "Pho edited" {
		t.Fatalf("name = %q, want local edits kept for the same record", got)
	}

	m.SetRecord(restaurant.Restaurant{Name: "Ramen Ya", Categories: []restaurant.Category{restaurant.Ramen}})
	if got := m.name.Value(); got != "Ramen Ya" {
		t.Fatalf("name = %q, want Ramen Ya", got)
	}
}

func TestEditModal_UnknownCategoriesAreDropped(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{
		Name:       "Mystery",
		Categories: []restaurant.Category{"TAPAS", restaurant.Other},
	})
	if got := m.selectedCategories(); !slices.Equal(got, []restaurant.Category{restaurant.Other}) {
		t.Fatalf("selected = %v, want [OTHER]", got)
	}
}

func TestEditModal_ChosenRatingCannotBeUnset(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModal(api, restaurant.Restaurant{
		Name:        "Rated",
		Categories:  []restaurant.Category{restaurant.Pizza},
		TriedBefore: true,
		Rating:      restaurant.IntPtr(7),
	})

	modalPress(t, m, "tab", "tab", "tab")
	if m.focus != mfRating {
		t.Fatalf("focus = %d, want rating", m.focus)
	}
	modalPress(t, m, "right", "right", "right", "right")
	if m.rating != 1 {
		t.Fatalf("rating = %d after wrapping up, want 1", m.rating)
	}
	modalPress(t, m, "left")
	if m.rating != 10 {
		t.Fatalf("rating = %d after wrapping down, want 10", m.rating)
	}

	cmd := modalPress(t, m, "ctrl+s")
	runModalCmd(t, m, cmd)
	sent := api.updated["Rated"]
	if sent.Rating == nil || *sent.Rating != 10 {
		t.Fatalf("sent rating = %v, want 10", sent.Rating)
	}
}

func TestEditModal_UnratedRecordStartsWithoutRating(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{
		Name:        "Fresh",
		Categories:  []restaurant.Category{restaurant.Pizza},
		TriedBefore: true,
	})
	if got := m.Payload().Rating; got != nil {
		t.Fatalf("Payload rating = %v, want none", *got)
	}
	modalPress(t, m, "tab", "tab", "tab", "left")
	if m.rating != restaurant.MaxRating {
		t.Fatalf("rating = %d, want %d", m.rating, restaurant.MaxRating)
	}
}

func TestEditModal_TextInputsKeepDeleteForward(t *testing.T) {
	m := newTestModal(&fakeAPI{}, restaurant.Restaurant{Name: "Pho", Categories: []restaurant.Category{restaurant.Asian}})

	modalPress(t, m, "ctrl+a", "ctrl+d")
	if m.confirm != nil {
		t.Fatalf("ctrl+d opened the delete confirmation")
	}
	if got := m.name.Value(); got != "ho" {
		t.Fatalf("name = %q, want ctrl+d to delete the next character", got)
	}
}
