package input

import (
	"strings"
	"testing"
)

func TestAppendFiltersAndUppercases(t *testing.T) {
	b := NewNameBuffer(10)

	b.Append('A')
	b.Append('B')

	if b.Append('!') {
		t.Error("Expected '!' to be rejected")
	}
	if b.String() != "AB" {
		t.Fatalf("Expected AB, got %q", b.String())
	}

	if !b.Append('c') {
		t.Error("Expected 'c' to be accepted")
	}
	if b.String() != "ABC" {
		t.Fatalf("Expected ABC, got %q", b.String())
	}

	b.Backspace()
	if b.String() != "AB" {
		t.Errorf("Expected AB after backspace, got %q", b.String())
	}
}

func TestAppendRejectsNonAlphanumeric(t *testing.T) {
	for _, r := range []rune{' ', '-', '_', '.', '\n', '\t', '@', '😀'} {
		b := NewNameBuffer(10)
		if b.Append(r) {
			t.Errorf("Expected %q to be rejected", r)
		}
		if b.String() != "" {
			t.Errorf("Buffer changed after %q: %q", r, b.String())
		}
	}
}

func TestAppendAcceptsDigitsAndUnicodeLetters(t *testing.T) {
	b := NewNameBuffer(10)
	for _, r := range "a1é" {
		if !b.Append(r) {
			t.Errorf("Expected %q to be accepted", r)
		}
	}
	if b.String() != "A1É" {
		t.Errorf("Expected A1É, got %q", b.String())
	}
}

func TestMaxLenBound(t *testing.T) {
	tests := []int{1, 3, 10}

	for _, maxLen := range tests {
		b := NewNameBuffer(maxLen)
		for i := 0; i < maxLen+5; i++ {
			b.Append('x')
		}
		if b.Commit() != strings.Repeat("X", maxLen) {
			t.Errorf("maxLen %d: unexpected contents %q", maxLen, b.Commit())
		}
	}
}

func TestBackspaceOnEmpty(t *testing.T) {
	b := NewNameBuffer(3)
	b.Backspace()

	if b.Commit() != "" {
		t.Errorf("Expected empty buffer, got %q", b.Commit())
	}
}

func TestResetAndDefaults(t *testing.T) {
	b := NewNameBuffer(0)
	if b.MaxLen() != DefaultMaxLen {
		t.Errorf("Expected default max length %d, got %d", DefaultMaxLen, b.MaxLen())
	}

	b.Append('q')
	b.Reset()
	if b.String() != "" {
		t.Errorf("Expected empty buffer after Reset, got %q", b.String())
	}
}

func TestCommitShortName(t *testing.T) {
	b := NewNameBuffer(10)
	b.Append('j')

	if got := b.Commit(); got != "J" {
		t.Errorf("Commit() = %q, want J", got)
	}
}
