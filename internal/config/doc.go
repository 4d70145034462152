// Package config loads platter's TOML configuration and user preferences.
//
// # Configuration
//
// Load resolves the path in this order: an explicit path when given, otherwise
// ~/.config/platter/config.toml. A missing file is not an error; defaults are
// returned instead. Blank or non-positive values fall back to their defaults.
//
//	api_url         = "127.0.0.1:8080"                      # host:port or URL
//	log_file        = "~/.local/state/platter/platter.log"
//	log_level       = "info"                                # debug, info, warn, error
//	request_timeout = 5                                     # seconds
//	probe_interval  = 10                                    # seconds
//
// Paths starting with "~" are expanded against the user's home directory.
//
// # Preferences
//
// Preferences live in ~/.config/platter/prefs.toml and currently hold the
// selected theme. LoadPrefs degrades to defaults on any error; SavePrefs
// creates the parent directory.
package config
