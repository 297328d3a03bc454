// Package input collects bounded player-name text for high-score entry.
package input

import "unicode"

// DefaultMaxLen is the name length used when none is configured.
const DefaultMaxLen = 10

// NameBuffer accumulates an upper-cased alphanumeric name of at most maxLen runes.
// Rejected input is ignored without error.
type NameBuffer struct {
	runes  []rune
	maxLen int
}

// NewNameBuffer creates an empty buffer. maxLen < 1 falls back to DefaultMaxLen.
func NewNameBuffer(maxLen int) *NameBuffer {
	if maxLen < 1 {
		maxLen = DefaultMaxLen
	}
	return &NameBuffer{
		runes:  make([]rune, 0, maxLen),
		maxLen: maxLen,
	}
}

// Append adds r if there is room and r is a letter or digit.
// Returns true if the rune was stored.
func (b *NameBuffer) Append(r rune) bool {
	if len(b.runes) >= b.maxLen {
		return false
	}
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return false
	}
	b.runes = append(b.runes, unicode.ToUpper(r))
	return true
}

// Backspace removes the last rune. No-op when empty.
func (b *NameBuffer) Backspace() {
	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Commit returns the name as entered. It may be shorter than MaxLen or empty.
func (b *NameBuffer) Commit() string {
	return string(b.runes)
}

// Reset empties the buffer.
func (b *NameBuffer) Reset() {
	b.runes = b.runes[:0]
}

// MaxLen returns the configured capacity.
func (b *NameBuffer) MaxLen() int {
	return b.maxLen
}

// String returns the current contents.
func (b *NameBuffer) String() string {
	return string(b.runes)
}
