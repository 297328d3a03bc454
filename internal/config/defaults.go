package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shell.yaml
var defaultShellYAML []byte

// DefaultShellConfig returns the default shell configuration.
// It matches defaults/shell.yaml and is used if the embedded file fails to parse.
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		Scores: ScoresConfig{
			Path:     "~/.arcade/high_scores.json",
			Capacity: 5,
		},
		Name: NameConfig{
			MaxLen: 10,
		},
		Session: SessionConfig{
			StartLives:    3,
			SpeedBase:     1.0,
			SpeedStep:     0.15,
			Interstitial:  2 * time.Second,
			GameOverDwell: 2 * time.Second,
		},
		Boards: BoardsConfig{
			Count:  2,
			Pinned: []int{0, 1},
			Names:  []string{"Classic", "Open"},
		},
		Engine: EngineConfig{
			ID: "console",
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "~/.arcade/history.db",
		},
		Layout: DefaultLayout(),
	}
}

// DefaultLayout returns the default clickable regions for every screen.
func DefaultLayout() LayoutConfig {
	menu := func(target, label, hotkey string, y int) ButtonConfig {
		return ButtonConfig{
			Screen: "menu",
			Target: target,
			Label:  label,
			Hotkey: hotkey,
			Rect:   RectConfig{X: 15, Y: y, W: 30, H: 3},
		}
	}
	back := func(screen string, y int) ButtonConfig {
		return ButtonConfig{
			Screen: screen,
			Target: "back",
			Label:  "BACK",
			Rect:   RectConfig{X: 20, Y: y, W: 20, H: 3},
		}
	}

	return LayoutConfig{
		Width:  60,
		Height: 24,
		Buttons: []ButtonConfig{
			menu("start", "START GAME", "1", 4),
			menu("levels", "LEVELS", "2", 7),
			menu("instructions", "INSTRUCTIONS", "3", 10),
			menu("high_scores", "HIGH SCORES", "4", 13),
			menu("about", "ABOUT", "5", 16),
			menu("exit", "QUIT", "6", 19),
			{
				Screen: "level_select", Target: "level", Level: 1,
				Label: "LEVEL 1 (Classic)", Hotkey: "1",
				Rect: RectConfig{X: 14, Y: 6, W: 32, H: 3},
			},
			{
				Screen: "level_select", Target: "level", Level: 2,
				Label: "LEVEL 2 (Open)", Hotkey: "2",
				Rect: RectConfig{X: 14, Y: 11, W: 32, H: 3},
			},
			back("level_select", 19),
			back("instructions", 20),
			back("high_scores", 20),
			back("about", 20),
		},
	}
}
