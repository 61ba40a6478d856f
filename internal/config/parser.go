package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/spotdiff/internal/layout"
	"github.com/example/spotdiff/internal/render"
)

// Parse reads configuration from an io.Reader. Unknown sections and keys are
// ignored so older binaries accept newer files.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "game":
			err = setGameField(&cfg.Game, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "audio":
			err = setAudioField(&cfg.Audio, key, value)
		case "marker":
			err = setMarkerField(&cfg.Marker, key, value)
		}
		if err != nil {
			name := section
			if name == "" {
				name = "root"
			}
			return nil, fmt.Errorf("line %d in section [%s]: %w", lineNo, name, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "image":
		cfg.Image = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setGameField(g *Game, key, value string) error {
	switch key {
	case "max_mistakes":
		return setPositiveInt(&g.MaxMistakes, key, value)
	case "max_retries":
		return setPositiveInt(&g.MaxRetries, key, value)
	case "easter_egg_threshold":
		return setPositiveInt(&g.EasterEggThreshold, key, value)
	case "circle_tolerance":
		return setNonNegativeFloat(&g.CircleTolerance, key, value)
	case "box_padding":
		return setNonNegativeFloat(&g.BoxPadding, key, value)
	case "padding":
		return setNonNegativeFloat(&g.Padding, key, value)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	var dst *bool
	switch key {
	case "complete":
		dst = &n.Complete
	case "failed":
		dst = &n.Failed
	case "prank":
		dst = &n.Prank
	case "message":
		dst = &n.Message
	case "save":
		dst = &n.Save
	case "copy":
		dst = &n.Copy
	default:
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setAudioField(a *Audio, key, value string) error {
	switch key {
	case "enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		a.Enabled = b
	case "volume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("volume must be between 0 and 1, got %q", value)
		}
		a.Volume = v
	}
	return nil
}

func setMarkerField(m *Marker, key, value string) error {
	switch key {
	case "color":
		c, err := render.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		m.Color = c
	case "soft_from":
		t, err := layout.ParseTier(value)
		if err != nil {
			return err
		}
		m.SoftFrom = t
	case "soft_radius":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid radius %q", value)
		}
		m.SoftRadius = n
	}
	return nil
}

func setPositiveInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func setNonNegativeFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return fmt.Errorf("%s must be a non-negative number, got %q", key, value)
	}
	*dst = f
	return nil
}
