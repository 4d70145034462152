package state

import (
	"testing"

	"github.com/five82/platter/internal/restaurant"
)

func TestPage_SnapshotAbsentUntilFirstSearch(t *testing.T) {
	var p Page
	if _, ok := p.Results(); ok {
		t.Fatal("Results present before any search")
	}

	p.BeginSearch()
	if !p.Searching() {
		t.Fatal("Searching = false after BeginSearch")
	}
	if _, ok := p.Results(); ok {
		t.Fatal("Results present while searching")
	}

	p.ApplyResults(nil)
	items, ok := p.Results()
	if !ok || items == nil || len(items) != 0 {
		t.Fatalf("Results = %#v,%v want empty present snapshot", items, ok)
	}
	if p.Searching() {
		t.Fatal("Searching = true after ApplyResults")
	}
}

func TestPage_BeginSearchClearsPreviousSnapshot(t *testing.T) {
	var p Page
	p.ApplyResults([]restaurant.Restaurant{{Name: "Pizza Place"}})
	p.BeginSearch()
	if _, ok := p.Results(); ok {
		t.Fatal("snapshot survived BeginSearch")
	}
	p.SearchFailed()
	if p.Searching() {
		t.Fatal("Searching = true after SearchFailed")
	}
	if _, ok := p.Results(); ok {
		t.Fatal("snapshot present after failed search")
	}
}

func TestPage_LastResponseWins(t *testing.T) {
	var p Page
	p.BeginSearch()
	p.BeginSearch()
	p.ApplyResults([]restaurant.Restaurant{{Name: "First"}})
	p.ApplyResults([]restaurant.Restaurant{{Name: "Second"}, {Name: "Third"}})

	items, _ := p.Results()
	if len(items) != 2 || items[0].Name != "Second" {
		t.Fatalf("Results = %#v, want the later response", items)
	}
}

func TestPage_ResultsAreCopies(t *testing.T) {
	var p Page
	p.ApplyResults([]restaurant.Restaurant{{Name: "Ramen Bar", Notes: []string{"cash"}}})

	items, _ := p.Results()
	items[0].Notes[0] = "card"
	again, _ := p.Results()
	if again[0].Notes[0] != "cash" {
		t.Fatalf("snapshot mutated through returned copy: %#v", again)
	}
}

func TestPage_ModalTransitions(t *testing.T) {
	var p Page
	if _, ok := p.Modal(); ok {
		t.Fatal("modal open on zero page")
	}

	p.OpenNew()
	r, ok := p.Modal()
	if !ok || r.Exists() {
		t.Fatalf("OpenNew modal = %#v,%v want empty record", r, ok)
	}

	p.ApplyResults([]restaurant.Restaurant{{Name: "Kebab Corner"}})
	p.Open(restaurant.Restaurant{Name: "Kebab Corner"})
	p.CloseModal()
	if _, ok := p.Modal(); ok {
		t.Fatal("modal still open after CloseModal")
	}
	if items, ok := p.Results(); !ok || len(items) != 1 {
		t.Fatal("CloseModal touched the snapshot")
	}
	if p.ResetCounter() != 0 {
		t.Fatal("CloseModal bumped the reset counter")
	}
}

func TestPage_SaveSucceededInvalidates(t *testing.T) {
	var p Page
	p.ApplyResults([]restaurant.Restaurant{{Name: "Kebab Corner"}})
	p.Open(restaurant.Restaurant{Name: "Kebab Corner"})

	p.SaveSucceeded()
	if _, ok := p.Modal(); ok {
		t.Fatal("modal open after save")
	}
	if _, ok := p.Results(); ok {
		t.Fatal("snapshot present after save")
	}
	if p.ResetCounter() != 1 {
		t.Fatalf("ResetCounter = %d, want 1", p.ResetCounter())
	}
	p.SaveSucceeded()
	if p.ResetCounter() != 2 {
		t.Fatalf("ResetCounter = %d, want 2", p.ResetCounter())
	}
}
