// Package scores implements the bounded high-score board and its JSON file store.
package scores

import "sort"

// DefaultCapacity is the number of entries kept on the board.
const DefaultCapacity = 5

// Entry is a single high-score record.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is a ranked list of entries, best first.
type Board []Entry

// Qualifies reports whether score earns a place on a board of the given capacity.
// A full board only admits scores strictly greater than its current minimum.
func Qualifies(b Board, capacity int, score int) bool {
	if len(b) < capacity {
		return true
	}
	return score > b.Min()
}

// Insert returns a new board with e added, sorted descending by score and
// truncated to capacity. Equal scores keep insertion order.
func Insert(b Board, capacity int, e Entry) Board {
	out := make(Board, 0, len(b)+1)
	out = append(out, b...)
	out = append(out, e)
	return normalize(out, capacity)
}

// normalize sorts in place (stable, descending) and truncates to capacity.
func normalize(b Board, capacity int) Board {
	sort.SliceStable(b, func(i, j int) bool {
		return b[i].Score > b[j].Score
	})
	if capacity >= 0 && len(b) > capacity {
		b = b[:capacity]
	}
	return b
}

// Min returns the lowest score on the board, or 0 if it is empty.
func (b Board) Min() int {
	if len(b) == 0 {
		return 0
	}
	low := b[0].Score
	for _, e := range b[1:] {
		if e.Score < low {
			low = e.Score
		}
	}
	return low
}

// Best returns the top entry and false if the board is empty.
func (b Board) Best() (Entry, bool) {
	if len(b) == 0 {
		return Entry{}, false
	}
	return b[0], true
}

// Rank returns the 1-based position score would take if inserted now.
// Ties rank after existing entries with the same score.
func (b Board) Rank(score int) int {
	for i, e := range b {
		if score > e.Score {
			return i + 1
		}
	}
	return len(b) + 1
}

// Clone returns a copy that shares no storage with b.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	copy(out, b)
	return out
}
