package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(60, 24)

	if s.Width() != 60 {
		t.Errorf("Width() = %d, expected 60", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "XXXX")
	s.Clear()

	if s.Row(0) != "    " {
		t.Errorf("Row(0) after Clear = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "ÉTÉ")

	if got := s.Row(0); got != "    ÉTÉ    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), BoxLight)

	want := "┌───┐\n│   │\n└───┘"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 5, 3), BoxHeavy)
	if s.Get(0, 0) != '┏' || s.Get(2, 0) != '━' {
		t.Errorf("Heavy box not drawn: %q", s.Row(0))
	}
}

func TestScreenDrawButton(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawButton(NewRect(0, 0, 12, 3), "START", BoxLight)

	if got := s.Row(1); got != "│  START   │" {
		t.Errorf("Row(1) = %q", got)
	}

	flat := NewScreen(8, 1)
	flat.DrawButton(NewRect(0, 0, 8, 1), "OK", BoxLight)
	if got := flat.Row(0); !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") || !strings.Contains(got, "OK") {
		t.Errorf("Flat button = %q", got)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Out of range Row = %q", got)
	}
}
