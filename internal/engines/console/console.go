// Package console provides an operator-driven level engine. It shows the
// level parameters and lets the player report how the level went from the
// keyboard, which is enough to exercise the whole shell without a maze.
package console

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/registry"
	"github.com/vovakirdan/maze-arcade/internal/session"
)

// ID is the registry ID of the console engine.
const ID = "console"

// Points awarded by the scoring keys.
const (
	DotPoints    = 10
	PelletPoints = 50
)

// FruitValues are the bonus values a level's fruit can carry. The engine
// draws one per level from the runtime seed.
var FruitValues = []int{100, 300, 500, 700, 1000, 2000}

func init() {
	registry.Register(ID, "Console level harness", func(env registry.Env) (session.Engine, error) {
		return New(env), nil
	})
}

// rendererHost is a ProgramHost with its own color profile, such as an
// SSH session.
type rendererHost interface {
	Renderer() *lipgloss.Renderer
}

// Engine runs one Bubble Tea program per level.
type Engine struct {
	host   registry.ProgramHost
	styles styles
	rt     core.RuntimeConfig
	rng    *rand.Rand
	boards []string
	logger *log.Logger
}

// New creates a console engine.
func New(env registry.Env) *Engine {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := env.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	var r *lipgloss.Renderer
	if rh, ok := env.Host.(rendererHost); ok {
		r = rh.Renderer()
	}
	return &Engine{
		host:   env.Host,
		styles: newStyles(r),
		rt:     rt,
		rng:    rand.New(rand.NewSource(rt.Seed)),
		boards: env.BoardNames,
		logger: logger,
	}
}

// PlayLevel runs the level screen until the player reports an outcome.
func (e *Engine) PlayLevel(ctx context.Context, p session.LevelParams) (session.LevelResult, error) {
	m := newModel(p, e.boardName(p.BoardIndex), e.rt)
	m.styles = e.styles
	m.fruit = e.nextFruit()

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if e.host != nil {
		opts = e.host.ProgramOptions(ctx)
	}
	prog := tea.NewProgram(m, opts...)
	if e.host != nil {
		untrack := e.host.Track(prog)
		defer untrack()
	}

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return session.LevelResult{Outcome: session.LevelQuit, Score: p.Score, Lives: p.Lives}, nil
		}
		return session.LevelResult{}, fmt.Errorf("console: %w", err)
	}

	fm, ok := final.(model)
	if !ok {
		return session.LevelResult{}, fmt.Errorf("console: unexpected model %T", final)
	}
	e.rt = fm.rt
	e.logger.Debug("console level finished", "level", p.Level, "outcome", fm.outcome, "elapsed", fm.elapsed)
	return fm.result(), nil
}

// nextFruit draws the bonus value for the next level.
func (e *Engine) nextFruit() int {
	return FruitValues[e.rng.Intn(len(FruitValues))]
}

func (e *Engine) boardName(i int) string {
	if i >= 0 && i < len(e.boards) && e.boards[i] != "" {
		return e.boards[i]
	}
	return fmt.Sprintf("#%d", i)
}

// keyMap defines the level report keys.
type keyMap struct {
	Dot    key.Binding
	Pellet key.Binding
	Fruit  key.Binding
	Clear  key.Binding
	Die    key.Binding
	GiveUp key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dot, k.Pellet, k.Fruit, k.Clear, k.Die, k.GiveUp, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dot, k.Pellet, k.Fruit, k.Clear},
		{k.Die, k.GiveUp, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dot: key.NewBinding(
			key.WithKeys(" ", "."),
			key.WithHelp("space", fmt.Sprintf("dot +%d", DotPoints)),
		),
		Pellet: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", fmt.Sprintf("pellet +%d", PelletPoints)),
		),
		Fruit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "bonus fruit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "clear level"),
		),
		Die: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "lose a life"),
		),
		GiveUp: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "game over"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// clockMsg advances the level clock by one frame.
type clockMsg time.Time

// frameInterval is the clock period at tickRate frames per second.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

func clockCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// model is the level screen.
type model struct {
	params  session.LevelParams
	board   string
	score   int
	lives   int
	fruit   int // Bonus value still on the board; 0 once eaten
	outcome session.LevelOutcome
	elapsed time.Duration
	rt      core.RuntimeConfig
	keys    keyMap
	help    help.Model
	styles  styles
	done    bool
}

func newModel(p session.LevelParams, board string, rt core.RuntimeConfig) model {
	h := help.New()
	h.Width = rt.ScreenW
	return model{
		params: p,
		board:  board,
		score:  p.Score,
		lives:  p.Lives,
		rt:     rt,
		keys:   defaultKeyMap(),
		help:   h,
		styles: newStyles(nil),
	}
}

func (m model) Init() tea.Cmd {
	return clockCmd(m.rt.TickRate)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockMsg:
		if m.done {
			return m, nil
		}
		m.elapsed += frameInterval(m.rt.TickRate)
		return m, clockCmd(m.rt.TickRate)

	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish(session.LevelQuit)
	case key.Matches(msg, m.keys.Dot):
		m.score += DotPoints
	case key.Matches(msg, m.keys.Pellet):
		m.score += PelletPoints
	case key.Matches(msg, m.keys.Fruit):
		m.score += m.fruit
		m.fruit = 0
	case key.Matches(msg, m.keys.Clear):
		return m.finish(session.LevelVictory)
	case key.Matches(msg, m.keys.Die):
		if m.lives > 0 {
			m.lives--
		}
		if m.lives == 0 {
			return m.finish(session.LevelGameOver)
		}
	case key.Matches(msg, m.keys.GiveUp):
		m.lives = 0
		return m.finish(session.LevelGameOver)
	}
	return m, nil
}

func (m model) finish(o session.LevelOutcome) (tea.Model, tea.Cmd) {
	m.outcome = o
	m.done = true
	return m, tea.Quit
}

func (m model) result() session.LevelResult {
	outcome := m.outcome
	if outcome == 0 {
		outcome = session.LevelQuit
	}
	return session.LevelResult{Outcome: outcome, Score: m.score, Lives: m.lives}
}

type styles struct {
	title lipgloss.Style
	stat  lipgloss.Style
	lives lipgloss.Style
	box   lipgloss.Style
	help  lipgloss.Style
}

// newStyles builds the level screen palette on r; nil means the default
// renderer.
func newStyles(r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		stat:  r.NewStyle().Foreground(lipgloss.Color("252")),
		lives: r.NewStyle().Foreground(lipgloss.Color("9")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(1, 3),
		help: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}

	st := m.styles
	header := st.title.Render(fmt.Sprintf("LEVEL %d", m.params.Level))
	stats := st.stat.Render(fmt.Sprintf("BOARD %s   SPEED x%.2f", m.board, m.params.SpeedMultiplier))
	fruit := "FRUIT -"
	if m.fruit > 0 {
		fruit = fmt.Sprintf("FRUIT %d", m.fruit)
	}

	secs := int(m.elapsed / time.Second)
	hud := lipgloss.JoinHorizontal(lipgloss.Top,
		st.stat.Render(fmt.Sprintf("SCORE %-8d", m.score)),
		st.lives.Render(fmt.Sprintf("LIVES %-6s", strings.Repeat("♥", m.lives))),
		st.stat.Render(fmt.Sprintf("TIME %02d:%02d", secs/60, secs%60)),
	)

	body := st.box.Render(lipgloss.JoinVertical(lipgloss.Center, header, "", stats, st.stat.Render(fruit), "", hud))
	content := lipgloss.JoinVertical(lipgloss.Center, body, "", st.help.Render(m.help.View(m.keys)))

	return lipgloss.Place(m.rt.ScreenW, m.rt.ScreenH, lipgloss.Center, lipgloss.Center, content)
}
