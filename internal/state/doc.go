// Package state holds platter's mutable state outside the widgets.
//
// Page models the search page: an optional result snapshot (absent until the
// first search and again after every successful write), the record open in the
// edit modal, and a reset counter the search form watches. It lives on the
// Bubble Tea update loop and needs no locking.
//
// Store holds the API health written by the background probe and read by the
// header renderer. It is guarded by a sync.RWMutex and hands out copies:
//
//	store := &state.Store{}
//	store.Record(latency, err) // probe goroutine
//	h := store.Snapshot()      // UI
//	if h.IsOffline() { ... }
//
// A probe failure only marks the API offline after two consecutive failures.
package state
