package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/spotdiff/internal/render"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // -config flag or compile-time override
	// Getenv is swapped in tests.
	Getenv func(string) string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		Getenv:       os.Getenv,
	}
}

// Load reads the first config file found, then applies SPOTDIFF_*
// environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	path := l.GetConfigPath()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		parsed, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg = parsed
		configLog.Debug().Str("path", path).Msg("loaded config")
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".spotdiffrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	if p := DefaultPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where `config save` writes when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spotdiff", "config.rc")
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(cfg.String()), 0o644)
}

func (l *Loader) applyEnv(cfg *Config) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := get("SPOTDIFF_IMAGE"); v != "" {
		cfg.Image = v
	}
	if v := get("SPOTDIFF_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := get("SPOTDIFF_MAX_MISTAKES"); v != "" {
		if err := setPositiveInt(&cfg.Game.MaxMistakes, "SPOTDIFF_MAX_MISTAKES", v); err != nil {
			return err
		}
	}
	if v := get("SPOTDIFF_AUDIO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SPOTDIFF_AUDIO: %w", err)
		}
		cfg.Audio.Enabled = b
	}
	if v := get("SPOTDIFF_VOLUME"); v != "" {
		if err := setAudioField(&cfg.Audio, "volume", v); err != nil {
			return fmt.Errorf("SPOTDIFF_VOLUME: %w", err)
		}
	}
	if v := get("SPOTDIFF_MARKER_COLOR"); v != "" {
		c, err := render.ParseColor(v)
		if err != nil {
			return fmt.Errorf("SPOTDIFF_MARKER_COLOR: %w", err)
		}
		cfg.Marker.Color = c
	}
	return nil
}
