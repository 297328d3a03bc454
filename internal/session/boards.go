package session

import (
	"fmt"

	"github.com/vovakirdan/maze-arcade/internal/config"
)

// BoardMapping decides which maze layout a level is played on.
// Levels 1..len(Pinned) use Pinned[level-1]; later levels cycle through
// (level-1) mod Count. An empty Pinned list gives pure cycling.
type BoardMapping struct {
	Count  int
	Pinned []int
}

// NewBoardMapping builds a mapping from configuration.
func NewBoardMapping(cfg config.BoardsConfig) (BoardMapping, error) {
	if cfg.Count < 1 {
		return BoardMapping{}, fmt.Errorf("session: board count must be at least 1, got %d", cfg.Count)
	}
	for i, idx := range cfg.Pinned {
		if idx < 0 || idx >= cfg.Count {
			return BoardMapping{}, fmt.Errorf("session: pinned board %d for level %d is outside 0..%d", idx, i+1, cfg.Count-1)
		}
	}
	pinned := make([]int, len(cfg.Pinned))
	copy(pinned, cfg.Pinned)
	return BoardMapping{Count: cfg.Count, Pinned: pinned}, nil
}

// Index returns the board index for level (1-based).
func (m BoardMapping) Index(level int) int {
	if level < 1 {
		level = 1
	}
	if level <= len(m.Pinned) {
		return m.Pinned[level-1]
	}
	if m.Count < 1 {
		return 0
	}
	return (level - 1) % m.Count
}

// Difficulty computes the linear speed ramp.
type Difficulty struct {
	Base float64 // Multiplier at level 1
	Step float64 // Added for each level after the first
}

// SpeedMultiplier returns Base + (level-1) * Step.
func (d Difficulty) SpeedMultiplier(level int) float64 {
	if level < 1 {
		level = 1
	}
	return d.Base + float64(level-1)*d.Step
}
