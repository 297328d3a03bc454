package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadShell loads the shell configuration.
// Search order: customPath -> ~/.arcade/configs/shell.yaml -> ./configs/shell.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it sets (lists such as layout.buttons are replaced whole).
// An explicit customPath that cannot be read or parsed is an error.
func LoadShell(customPath string) (ShellConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShellConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseShell(data)
		if err != nil {
			return ShellConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("shell.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseShell(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/shell.yaml"); err == nil {
		if cfg, err := parseShell(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseShell(defaultShellYAML)
	if err != nil {
		return DefaultShellConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseShell decodes data over the defaults and validates the result.
func parseShell(data []byte) (ShellConfig, error) {
	cfg := DefaultShellConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate checks the configuration for values the shell cannot run with.
func (c ShellConfig) Validate() error {
	var errs []error

	if c.Scores.Capacity < 1 {
		errs = append(errs, fmt.Errorf("scores.capacity must be at least 1, got %d", c.Scores.Capacity))
	}
	if c.Name.MaxLen < 1 {
		errs = append(errs, fmt.Errorf("name.max_len must be at least 1, got %d", c.Name.MaxLen))
	}
	if c.Session.StartLives < 1 {
		errs = append(errs, fmt.Errorf("session.start_lives must be at least 1, got %d", c.Session.StartLives))
	}
	if c.Session.SpeedBase <= 0 {
		errs = append(errs, fmt.Errorf("session.speed_base must be positive, got %g", c.Session.SpeedBase))
	}
	if c.Session.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("session.speed_step must not be negative, got %g", c.Session.SpeedStep))
	}
	if c.Session.Interstitial < 0 || c.Session.GameOverDwell < 0 {
		errs = append(errs, errors.New("session dwell times must not be negative"))
	}
	if c.Boards.Count < 1 {
		errs = append(errs, fmt.Errorf("boards.count must be at least 1, got %d", c.Boards.Count))
	}
	for i, idx := range c.Boards.Pinned {
		if idx < 0 || idx >= c.Boards.Count {
			errs = append(errs, fmt.Errorf("boards.pinned[%d] = %d is outside 0..%d", i, idx, c.Boards.Count-1))
		}
	}
	if c.Engine.ID == "" {
		errs = append(errs, errors.New("engine.id must be set"))
	}
	if c.Layout.Width < 1 || c.Layout.Height < 1 {
		errs = append(errs, fmt.Errorf("layout size %dx%d is invalid", c.Layout.Width, c.Layout.Height))
	}
	for i, b := range c.Layout.Buttons {
		if b.Rect.W < 1 || b.Rect.H < 1 {
			errs = append(errs, fmt.Errorf("layout.buttons[%d] (%s) has an empty rect", i, b.Label))
		}
		if len([]rune(b.Hotkey)) > 1 {
			errs = append(errs, fmt.Errorf("layout.buttons[%d] hotkey %q must be a single key", i, b.Hotkey))
		}
	}

	return errors.Join(errs...)
}
