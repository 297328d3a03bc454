package scores

import (
	"math/rand"
	"testing"
)

func fullBoard() Board {
	return Board{
		{Name: "ANN", Score: 900},
		{Name: "BOB", Score: 700},
		{Name: "CAT", Score: 500},
		{Name: "DAN", Score: 300},
		{Name: "EVE", Score: 200},
	}
}

func TestInsertIntoEmptyBoard(t *testing.T) {
	board := Insert(Board{}, DefaultCapacity, Entry{Name: "AAA", Score: 100})

	if len(board) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(board))
	}
	if board[0].Name != "AAA" || board[0].Score != 100 {
		t.Errorf("Unexpected entry: %+v", board[0])
	}
	if !Qualifies(board, DefaultCapacity, 50) {
		t.Error("Expected 50 to qualify on a board with free slots")
	}
}

func TestQualifiesIsStrict(t *testing.T) {
	board := fullBoard()

	tests := []struct {
		score int
		want  bool
	}{
		{0, false},
		{199, false},
		{200, false},
		{201, true},
		{10000, true},
	}

	for _, tt := range tests {
		if got := Qualifies(board, DefaultCapacity, tt.score); got != tt.want {
			t.Errorf("Qualifies(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestQualifiesZeroOnEmptyBoard(t *testing.T) {
	if !Qualifies(nil, DefaultCapacity, 0) {
		t.Error("Expected any score to qualify on an empty board")
	}
}

func TestInsertTruncatesToCapacity(t *testing.T) {
	board := Insert(fullBoard(), DefaultCapacity, Entry{Name: "NEW", Score: 600})

	if len(board) != DefaultCapacity {
		t.Fatalf("Expected %d entries, got %d", DefaultCapacity, len(board))
	}
	if board[2].Name != "NEW" {
		t.Errorf("Expected NEW at rank 3, got %q", board[2].Name)
	}
	if board[len(board)-1].Name != "DAN" {
		t.Errorf("Expected EVE to drop off, last is %q", board[len(board)-1].Name)
	}
}

func TestInsertTiesKeepInsertionOrder(t *testing.T) {
	board := Board{{Name: "OLD", Score: 300}}
	board = Insert(board, DefaultCapacity, Entry{Name: "NEW", Score: 300})

	if board[0].Name != "OLD" || board[1].Name != "NEW" {
		t.Errorf("Expected OLD before NEW, got %v", board)
	}
}

func TestInsertDoesNotModifyInput(t *testing.T) {
	orig := fullBoard()
	_ = Insert(orig, DefaultCapacity, Entry{Name: "TOP", Score: 1000})

	if orig[0].Name != "ANN" || len(orig) != 5 {
		t.Errorf("Input board was modified: %v", orig)
	}
}

func TestInsertKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	board := Board{}

	for i := 0; i < 500; i++ {
		score := rng.Intn(1000)
		if !Qualifies(board, DefaultCapacity, score) {
			continue
		}
		board = Insert(board, DefaultCapacity, Entry{Name: "X", Score: score})

		if len(board) > DefaultCapacity {
			t.Fatalf("Board exceeded capacity: %d", len(board))
		}
		for j := 1; j < len(board); j++ {
			if board[j-1].Score < board[j].Score {
				t.Fatalf("Board not sorted after insert %d: %v", i, board)
			}
		}
	}
}

func TestBoardHelpers(t *testing.T) {
	board := fullBoard()

	if board.Min() != 200 {
		t.Errorf("Min() = %d, want 200", board.Min())
	}
	best, ok := board.Best()
	if !ok || best.Name != "ANN" {
		t.Errorf("Best() = %+v, %v", best, ok)
	}
	if r := board.Rank(700); r != 3 {
		t.Errorf("Rank(700) = %d, want 3", r)
	}
	if r := board.Rank(5000); r != 1 {
		t.Errorf("Rank(5000) = %d, want 1", r)
	}

	var empty Board
	if empty.Min() != 0 {
		t.Error("Expected Min() of empty board to be 0")
	}
	if _, ok := empty.Best(); ok {
		t.Error("Expected Best() of empty board to report false")
	}
}
