package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/flow"
)

// ErrQuit is returned by the interstitials when the player sends the quit
// signal (ctrl+c) while one is showing.
var ErrQuit = errors.New("tui: quit requested")

// TerminalConfig configures a Terminal.
type TerminalConfig struct {
	Runtime core.RuntimeConfig
	Layout  flow.Layout

	// ProgramOptions are added to every program; SSH sessions bind input
	// and output here.
	ProgramOptions []tea.ProgramOption

	// Renderer builds the styles. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Terminal runs the shell's screens as a sequence of Bubble Tea programs.
// It implements flow.UI for the controller and session.Display for the
// level interstitials.
type Terminal struct {
	mu      sync.Mutex
	rt      core.RuntimeConfig
	current *tea.Program

	layout    flow.Layout
	opts      []tea.ProgramOption
	renderer  *lipgloss.Renderer
	keyMapper *KeyMapper
	styles    Styles
}

// NewTerminal creates a terminal front end.
func NewTerminal(cfg TerminalConfig) *Terminal {
	rt := cfg.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	return &Terminal{
		rt:        rt,
		layout:    cfg.Layout,
		opts:      cfg.ProgramOptions,
		renderer:  cfg.Renderer,
		keyMapper: NewKeyMapper(),
		styles:    NewStyles(cfg.Renderer),
	}
}

// Runtime returns the current terminal parameters.
func (t *Terminal) Runtime() core.RuntimeConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rt
}

// Renderer returns the renderer bound to the player's terminal, or nil for
// the local default.
func (t *Terminal) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// ProgramOptions returns the options for a program bound to this terminal
// that stops when ctx is cancelled.
func (t *Terminal) ProgramOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	return append(opts, t.opts...)
}

// Track makes p the program that receives resize events until the returned
// function is called.
func (t *Terminal) Track(p *tea.Program) func() {
	t.mu.Lock()
	t.current = p
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		if t.current == p {
			t.current = nil
		}
		t.mu.Unlock()
	}
}

// Resize records a new window size and forwards it to the running program.
// SSH sessions call this; local terminals get resizes from Bubble Tea.
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	t.rt.ScreenW, t.rt.ScreenH = width, height
	p := t.current
	t.mu.Unlock()

	if p != nil {
		p.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// sized is implemented by models that track the window size.
type sized interface {
	Runtime() core.RuntimeConfig
}

// run executes one program to completion.
func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, t.ProgramOptions(ctx)...)
	untrack := t.Track(p)
	defer untrack()

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return final, ctx.Err()
		}
		return final, fmt.Errorf("tui: %w", err)
	}

	if s, ok := final.(sized); ok {
		rt := s.Runtime()
		t.mu.Lock()
		t.rt.ScreenW, t.rt.ScreenH = rt.ScreenW, rt.ScreenH
		t.mu.Unlock()
	}
	return final, nil
}

// Present shows the controller's active screen until it closes.
func (t *Terminal) Present(ctx context.Context, scr flow.Screen) error {
	m := newScreenModel(scr, t.layout, t.Runtime(), t.keyMapper, t.styles)
	_, err := t.run(ctx, m)
	return err
}

// ShowLevel shows the "LEVEL N" interstitial for dwell.
func (t *Terminal) ShowLevel(ctx context.Context, level int, dwell time.Duration) error {
	return t.interstitial(ctx, dwell, []string{fmt.Sprintf("LEVEL %d", level)}, t.styles.Title)
}

// ShowGameOver shows the "GAME OVER" interstitial for dwell.
func (t *Terminal) ShowGameOver(ctx context.Context, score int, dwell time.Duration) error {
	return t.interstitial(ctx, dwell, []string{"GAME OVER", "", fmt.Sprintf("SCORE %d", score)}, t.styles.Alert)
}

func (t *Terminal) interstitial(ctx context.Context, dwell time.Duration, lines []string, style lipgloss.Style) error {
	if dwell <= 0 {
		return ctx.Err()
	}

	m := dwellModel{
		lines:  lines,
		style:  style,
		dwell:  dwell,
		rt:     t.Runtime(),
		width:  t.layout.Width,
		height: t.layout.Height,
	}
	final, err := t.run(ctx, m)
	if err != nil {
		return err
	}
	if dm, ok := final.(dwellModel); ok && dm.quit {
		return ErrQuit
	}
	return nil
}

// dwellModel shows centered text for a fixed time. Input is ignored
// except for the quit signal.
type dwellModel struct {
	lines  []string
	style  lipgloss.Style
	dwell  time.Duration
	rt     core.RuntimeConfig
	width  int
	height int
	quit   bool
	done   bool
}

func (m dwellModel) Init() tea.Cmd {
	return dwellCmd(m.dwell)
}

func (m dwellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dwellDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
	}
	return m, nil
}

func (m dwellModel) Runtime() core.RuntimeConfig {
	return m.rt
}

func (m dwellModel) View() string {
	if m.done {
		return ""
	}

	canvas := core.NewScreen(m.width, m.height)
	rows := make(map[int]lipgloss.Style)
	top := (canvas.Height() - len(m.lines)) / 2
	for i, line := range m.lines {
		canvas.DrawTextCentered(top+i, line)
		rows[top+i] = m.style
	}

	x, y := m.rt.Origin(canvas.Width(), canvas.Height())
	return place(x, y, RenderCanvas(canvas, rows, m.style))
}
