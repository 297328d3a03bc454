// Package config provides YAML-based configuration loading for the arcade shell.
package config

import "time"

// ShellConfig contains all configuration for the arcade shell.
type ShellConfig struct {
	Scores  ScoresConfig  `yaml:"scores"`
	Name    NameConfig    `yaml:"name"`
	Session SessionConfig `yaml:"session"`
	Boards  BoardsConfig  `yaml:"boards"`
	Engine  EngineConfig  `yaml:"engine"`
	History HistoryConfig `yaml:"history"`
	Layout  LayoutConfig  `yaml:"layout"`
}

// ScoresConfig defines where the high-score board lives and how big it is.
type ScoresConfig struct {
	Path     string `yaml:"path"`
	Capacity int    `yaml:"capacity"`
}

// NameConfig defines name entry limits.
type NameConfig struct {
	MaxLen int `yaml:"max_len"` // Runes accepted in the name buffer
}

// SessionConfig defines per-run parameters for the level session runner.
type SessionConfig struct {
	StartLives    int           `yaml:"start_lives"`
	SpeedBase     float64       `yaml:"speed_base"`      // Multiplier at level 1
	SpeedStep     float64       `yaml:"speed_step"`      // Added per level after the first
	Interstitial  time.Duration `yaml:"interstitial"`    // "LEVEL N" dwell before levels 2+
	GameOverDwell time.Duration `yaml:"game_over_dwell"` // "GAME OVER" dwell, 0 disables
}

// BoardsConfig maps level numbers to maze layout indexes.
// Levels 1..len(Pinned) use the pinned index; later levels cycle (level-1) mod Count.
type BoardsConfig struct {
	Count  int      `yaml:"count"`
	Pinned []int    `yaml:"pinned"`
	Names  []string `yaml:"names"` // Display names, indexed by board
}

// EngineConfig selects the level engine.
type EngineConfig struct {
	ID     string `yaml:"id"`
	Script string `yaml:"script"` // Script path for the scripted engine
}

// HistoryConfig controls the optional SQLite run log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db"`
}

// LayoutConfig is the single table of clickable regions shared by the
// renderer and the input dispatcher. Coordinates are cells on a canvas
// of Width x Height that the renderer centers in the terminal.
type LayoutConfig struct {
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Buttons []ButtonConfig `yaml:"buttons"`
}

// ButtonConfig defines one clickable item.
type ButtonConfig struct {
	Screen string     `yaml:"screen"` // menu, level_select, instructions, high_scores, about
	Target string     `yaml:"target"` // start, levels, instructions, high_scores, about, exit, level, back
	Level  int        `yaml:"level"`  // Start level when Target is "level"
	Label  string     `yaml:"label"`
	Hotkey string     `yaml:"hotkey"` // Single key mirroring the click
	Rect   RectConfig `yaml:"rect"`
}

// RectConfig is a rectangle in canvas cells.
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}
