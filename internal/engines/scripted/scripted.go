// Package scripted provides a level engine that replays level results from
// a YAML script. It drives the shell end to end without a real maze game,
// for demos and tests.
package scripted

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/maze-arcade/internal/registry"
	"github.com/vovakirdan/maze-arcade/internal/session"
)

// ID is the registry ID of the scripted engine.
const ID = "scripted"

func init() {
	registry.Register(ID, "Scripted replay", func(env registry.Env) (session.Engine, error) {
		if env.Script == "" {
			return nil, errors.New("scripted: a script path is required (engine.script or --script)")
		}
		eng, err := Load(env.Script)
		if err != nil {
			return nil, err
		}
		if env.Logger != nil {
			eng.logger = env.Logger
		}
		return eng, nil
	})
}

// Step is one scripted level result. A nil Score or Lives keeps the value
// the level was started with.
type Step struct {
	Outcome string        `yaml:"outcome"`
	Score   *int          `yaml:"score,omitempty"`
	Lives   *int          `yaml:"lives,omitempty"`
	Delay   time.Duration `yaml:"delay,omitempty"` // Simulated play time
}

// Engine replays steps in order, one per PlayLevel call.
// Running past the last step reports a quit.
type Engine struct {
	mu     sync.Mutex
	steps  []Step
	next   int
	logger *log.Logger
}

// Load reads a script file.
func Load(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripted: reading %s: %w", path, err)
	}
	eng, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scripted: %s: %w", path, err)
	}
	return eng, nil
}

// Parse decodes a script: a YAML sequence of steps.
func Parse(data []byte) (*Engine, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("scripted: decoding script: %w", err)
	}
	return New(steps)
}

// New creates an engine from steps, validating each one.
func New(steps []Step) (*Engine, error) {
	for i, st := range steps {
		if _, ok := session.ParseLevelOutcome(st.Outcome); !ok {
			return nil, fmt.Errorf("scripted: step %d: unknown outcome %q", i+1, st.Outcome)
		}
		if st.Score != nil && *st.Score < 0 {
			return nil, fmt.Errorf("scripted: step %d: negative score", i+1)
		}
		if st.Lives != nil && *st.Lives < 0 {
			return nil, fmt.Errorf("scripted: step %d: negative lives", i+1)
		}
		if st.Delay < 0 {
			return nil, fmt.Errorf("scripted: step %d: negative delay", i+1)
		}
	}

	return &Engine{
		steps:  append([]Step(nil), steps...),
		logger: log.New(io.Discard),
	}, nil
}

// PlayLevel returns the next scripted result.
func (e *Engine) PlayLevel(ctx context.Context, p session.LevelParams) (session.LevelResult, error) {
	quit := session.LevelResult{Outcome: session.LevelQuit, Score: p.Score, Lives: p.Lives}

	e.mu.Lock()
	if e.next >= len(e.steps) {
		e.mu.Unlock()
		e.logger.Debug("script exhausted", "level", p.Level)
		return quit, nil
	}
	st := e.steps[e.next]
	e.next++
	e.mu.Unlock()

	if err := session.Wait(ctx, st.Delay); err != nil {
		return quit, nil
	}

	outcome, _ := session.ParseLevelOutcome(st.Outcome)
	res := session.LevelResult{Outcome: outcome, Score: p.Score, Lives: p.Lives}
	if st.Score != nil {
		res.Score = *st.Score
	}
	if st.Lives != nil {
		res.Lives = *st.Lives
	}

	e.logger.Debug("scripted level",
		"level", p.Level,
		"board", p.BoardIndex,
		"outcome", res.Outcome,
		"score", res.Score,
	)
	return res, nil
}
