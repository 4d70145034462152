package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings the platter TUI reads at startup.
type Config struct {
	APIURL         string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
	ProbeInterval  time.Duration
}

const (
	defaultConfigPath     = "~/.config/platter/config.toml"
	defaultAPIURL         = "127.0.0.1:8080"
	defaultLogFile        = "~/.local/state/platter/platter.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 5 * time.Second
	defaultProbeInterval  = 10 * time.Second
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
		ProbeInterval:  defaultProbeInterval,
	}
}

// Load locates and parses the platter config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		RequestTimeout int    `toml:"request_timeout"`
		ProbeInterval  int    `toml:"probe_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if raw.ProbeInterval > 0 {
		cfg.ProbeInterval = time.Duration(raw.ProbeInterval) * time.Second
	}
	return cfg, nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
