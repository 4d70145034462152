// Package app is platter's composition root.
//
// Run loads the TOML configuration, points log/slog at the log file (the
// terminal belongs to the UI), builds the restaurants API client, starts the
// health probe and hands control to the Bubble Tea program:
//
//	config.Load ─> logging.Setup ─> restaurant.NewClient ─> StartProbe ─> ui.Run
//
// The probe pings GET /health every probe_interval. After failures it backs
// off exponentially (doubling per consecutive failure, capped at 30s) and the
// header switches to "API offline" once two probes in a row have failed.
package app
