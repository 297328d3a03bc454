package core

import (
	"strings"
	"unicode/utf8"
)

// Screen is a 2D character buffer for laying out a screen's canvas.
// Buttons are drawn from the same rects used for hit-testing, so what the
// player sees is exactly what a click resolves against.
type Screen struct {
	width  int
	height int
	cells  [][]rune
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(0, width),
		height: Max(0, height),
	}
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		s.cells[y] = make([]rune, s.width)
	}
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = ' '
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = r
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - utf8.RuneCountInString(text)) / 2
	s.DrawText(x, y, text)
}

// BoxStyle selects the border runes used by DrawBox.
type BoxStyle int

const (
	BoxLight BoxStyle = iota
	BoxHeavy
)

var boxRunes = map[BoxStyle][6]rune{
	// top-left, top-right, bottom-left, bottom-right, horizontal, vertical
	BoxLight: {'┌', '┐', '└', '┘', '─', '│'},
	BoxHeavy: {'┏', '┓', '┗', '┛', '━', '┃'},
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, style BoxStyle) {
	if r.W < 2 || r.H < 2 {
		return
	}
	b := boxRunes[style]

	// Corners
	s.Set(r.X, r.Y, b[0])
	s.Set(r.Right()-1, r.Y, b[1])
	s.Set(r.X, r.Bottom()-1, b[2])
	s.Set(r.Right()-1, r.Bottom()-1, b[3])

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, b[4])
		s.Set(x, r.Bottom()-1, b[4])
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, b[5])
		s.Set(r.Right()-1, y, b[5])
	}
}

// DrawButton draws a boxed button with its label centered inside r.
// Rects one row high get the label only, wrapped in brackets.
func (s *Screen) DrawButton(r Rect, label string, style BoxStyle) {
	n := utf8.RuneCountInString(label)
	cx := r.X + (r.W-n)/2
	cy := r.Y + r.H/2

	if r.H < 2 {
		s.DrawText(r.X, r.Y, "[")
		s.DrawText(r.Right()-1, r.Y, "]")
		s.DrawText(cx, cy, label)
		return
	}
	s.DrawBox(r, style)
	s.DrawText(cx, cy, label)
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height) // Pre-allocate for efficiency

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x])
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	return string(s.cells[y])
}
