package scores

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// Store persists a Board as a JSON array of {"name","score"} records.
// Load never fails: a missing or malformed file reads as an empty board.
type Store struct {
	path     string
	capacity int
	logger   *log.Logger
	mu       sync.Mutex
}

// NewStore creates a store for the file at path. A leading ~ is expanded
// to the user's home directory.
func NewStore(path string, capacity int, logger *log.Logger) (*Store, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		path:     expanded,
		capacity: capacity,
		logger:   logger,
	}, nil
}

// Path returns the resolved file location.
func (s *Store) Path() string {
	return s.path
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Load reads the board from disk.
func (s *Store) Load() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Board {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("score file unreadable, starting empty", "path", s.path, "error", err)
		}
		return Board{}
	}

	board, ok := parseBoard(data)
	if !ok {
		s.logger.Debug("score file malformed, starting empty", "path", s.path)
		return Board{}
	}
	return normalize(board, s.capacity)
}

// parseBoard decodes the persisted array. Any record without a string name
// and a non-negative integer score makes the whole file invalid.
func parseBoard(data []byte) (Board, bool) {
	if !gjson.ValidBytes(data) {
		return nil, false
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, false
	}

	board := Board{}
	ok := true
	root.ForEach(func(_, rec gjson.Result) bool {
		name := rec.Get("name")
		score := rec.Get("score")
		if !rec.IsObject() || name.Type != gjson.String || score.Type != gjson.Number {
			ok = false
			return false
		}
		n := score.Int()
		if n < 0 || float64(n) != score.Float() {
			ok = false
			return false
		}
		board = append(board, Entry{Name: name.Str, Score: int(n)})
		return true
	})
	if !ok {
		return nil, false
	}
	return board, true
}

// Save overwrites the file with board. The write goes to a temporary file
// in the same directory which is then renamed over the target.
func (s *Store) Save(board Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(board)
}

// Update applies fn to the board on disk and writes the result back, all
// under the store lock, so entries committed by other sessions sharing the
// file are kept. It returns the board fn produced even if the write fails.
func (s *Store) Update(fn func(Board) Board) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := normalize(fn(s.load()), s.capacity)
	if err := s.save(board); err != nil {
		return board, err
	}
	return board.Clone(), nil
}

func (s *Store) save(board Board) error {
	if board == nil {
		board = Board{}
	}
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("scores: cannot encode board: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("scores: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".high_scores-*.json")
	if err != nil {
		return fmt.Errorf("scores: cannot create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("scores: cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("scores: cannot close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("scores: cannot replace %s: %w", s.path, err)
	}

	s.logger.Debug("score board saved", "path", s.path, "entries", len(board))
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("scores: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
