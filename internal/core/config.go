package core

// RuntimeConfig contains terminal parameters passed to screens and engines.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Animation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time in platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// Origin returns the top-left cell at which a canvas of w x h is centered
// on this screen. Negative offsets are clamped to zero.
func (c RuntimeConfig) Origin(w, h int) (int, int) {
	return Max(0, (c.ScreenW-w)/2), Max(0, (c.ScreenH-h)/2)
}
