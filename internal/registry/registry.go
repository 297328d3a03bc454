// Package registry holds the level engines the shell can drive.
// Engines register themselves in init() functions, so the CLI picks one by
// ID without importing it directly.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/session"
)

// Env is what an engine factory gets to build an engine.
type Env struct {
	Runtime core.RuntimeConfig

	// Script is the engine-specific script path, if any.
	Script string

	// BoardNames are display names indexed by board index.
	BoardNames []string

	// Host runs the engine's own Bubble Tea programs on the player's
	// terminal. Nil means the local terminal.
	Host ProgramHost

	Logger *log.Logger
}

// ProgramHost is the terminal an engine draws on.
type ProgramHost interface {
	// ProgramOptions returns options binding a program to the terminal,
	// stopping it when ctx is cancelled.
	ProgramOptions(ctx context.Context) []tea.ProgramOption

	// Track routes resize events to p until the returned func is called.
	Track(p *tea.Program) func()
}

// EngineInfo contains metadata about a registered engine.
type EngineInfo struct {
	ID    string
	Title string
}

// Factory builds a level engine.
type Factory func(env Env) (session.Engine, error)

type entry struct {
	title   string
	factory Factory
}

var (
	engines = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds an engine factory to the registry.
// Panics if an engine with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := engines[id]; exists {
		panic(fmt.Sprintf("registry: engine %q already registered", id))
	}
	engines[id] = entry{title: title, factory: f}
}

// List returns all registered engines, sorted by ID.
func List() []EngineInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EngineInfo, 0, len(engines))
	for id, e := range engines {
		result = append(result, EngineInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds the engine registered under id.
func Create(id string, env Env) (session.Engine, error) {
	mu.RLock()
	e, ok := engines[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown engine %q", id)
	}

	eng, err := e.factory(env)
	if err != nil {
		return nil, fmt.Errorf("registry: creating engine %q: %w", id, err)
	}
	return eng, nil
}

// Exists checks if an engine with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := engines[id]
	return ok
}
