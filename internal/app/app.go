package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/five82/platter/internal/config"
	"github.com/five82/platter/internal/logging"
	"github.com/five82/platter/internal/restaurant"
	"github.com/five82/platter/internal/state"
	"github.com/five82/platter/internal/ui"
)

// Options configure the platter application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/platter/prefs.toml
	APIURL     string // overrides api_url from the config file
	Theme      string // overrides the saved theme for this session
}

// Run boots the platter TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if api := strings.TrimSpace(opts.APIURL); api != "" {
		cfg.APIURL = api
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := logging.Setup(cfg.LogLevel, logFile)

	userPrefs := config.LoadPrefs(opts.PrefsPath)
	if name := strings.TrimSpace(opts.Theme); name != "" {
		if !slices.Contains(ui.ThemeNames(), name) {
			return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ui.ThemeNames(), ", "))
		}
		userPrefs.Theme = name
	}

	client, err := restaurant.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	logger.Info("platter starting", slog.String("api", client.BaseURL()), slog.String("theme", userPrefs.Theme))

	health := &state.Store{}
	StartProbe(ctx, health, client, cfg.ProbeInterval)

	uiOpts := ui.Options{
		Context:        ctx,
		Client:         client,
		Health:         health,
		Config:         &cfg,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		RequestTimeout: cfg.RequestTimeout,
	}
	err = ui.Run(uiOpts)
	logger.Info("platter stopped")
	return err
}
