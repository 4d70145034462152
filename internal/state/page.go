package state

import "github.com/five82/platter/internal/restaurant"

// Page is the search page state: the fetched snapshot, the record open in the
// edit modal, and the counter that tells the search form to reset.
//
// Page is owned by the UI update loop and is not safe for concurrent use.
type Page struct {
	results      []restaurant.Restaurant
	loaded       bool
	open         *restaurant.Restaurant
	resetCounter int
	searching    bool
}

// BeginSearch drops the current snapshot ahead of a new query.
func (p *Page) BeginSearch() {
	p.results = nil
	p.loaded = false
	p.searching = true
}

// ApplyResults replaces the snapshot with a query response. Responses are not
// sequenced; whichever arrives last wins.
func (p *Page) ApplyResults(items []restaurant.Restaurant) {
	p.results = restaurant.CloneAll(items)
	if p.results == nil {
		p.results = []restaurant.Restaurant{}
	}
	p.loaded = true
	p.searching = false
}

// SearchFailed ends a search without a snapshot.
func (p *Page) SearchFailed() {
	p.searching = false
}

// Searching reports whether a query is outstanding.
func (p *Page) Searching() bool {
	return p.searching
}

// Results returns a copy of the snapshot and whether one is present. An absent
// snapshot is distinct from an empty one.
func (p *Page) Results() ([]restaurant.Restaurant, bool) {
	if !p.loaded {
		return nil, false
	}
	return restaurant.CloneAll(p.results), true
}

// OpenNew opens the modal on an empty record.
func (p *Page) OpenNew() {
	p.open = &restaurant.Restaurant{}
}

// Open opens the modal on a copy of r.
func (p *Page) Open(r restaurant.Restaurant) {
	dup := r.Clone()
	p.open = &dup
}

// Modal returns the open record, if any.
func (p *Page) Modal() (restaurant.Restaurant, bool) {
	if p.open == nil {
		return restaurant.Restaurant{}, false
	}
	return p.open.Clone(), true
}

// CloseModal clears the open record without touching the snapshot.
func (p *Page) CloseModal() {
	p.open = nil
}

// SaveSucceeded closes the modal, invalidates the snapshot and bumps the reset
// counter after a successful create, update or delete.
func (p *Page) SaveSucceeded() {
	p.open = nil
	p.results = nil
	p.loaded = false
	p.resetCounter++
}

// ResetCounter changes every time the search form must revert to its defaults.
func (p *Page) ResetCounter() int {
	return p.resetCounter
}
