package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the results table only shows
	// the Name and Rating columns.
	LayoutCompactWidth = 100

	// ModalMaxWidth caps the edit modal on wide terminals.
	ModalMaxWidth = 72
)

// Activity overlay limits.
const (
	// ActivityLineLimit is the number of log lines read for the overlay.
	ActivityLineLimit = 400
)

// Timing constants.
const (
	// ToastDuration is how long a notification stays on screen.
	ToastDuration = 2 * time.Second

	// DefaultUIInterval is how often the header re-reads the health store.
	DefaultUIInterval = time.Second

	// DefaultRequestTimeout bounds API calls issued from the UI.
	DefaultRequestTimeout = 5 * time.Second
)
