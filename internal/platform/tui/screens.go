package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/flow"
	"github.com/vovakirdan/maze-arcade/internal/scores"
)

// screenModel presents one controller screen until the controller reports
// that the screen is done.
type screenModel struct {
	scr       flow.Screen
	view      flow.View
	layout    flow.Layout
	rt        core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	styles    Styles
	cursor    int
	blink     bool // Caret phase in name entry
	frames    int  // Ticks since the caret last toggled
	done      bool
}

// blinkRate is the caret toggle rate in name entry, per second.
const blinkRate = 2

// blinkFrames is the number of ticks between caret toggles at tickRate.
func blinkFrames(tickRate int) int {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return max(1, tickRate/blinkRate)
}

func newScreenModel(scr flow.Screen, layout flow.Layout, rt core.RuntimeConfig, km *KeyMapper, styles Styles) screenModel {
	h := help.New()
	h.ShowAll = false
	h.Width = rt.ScreenW

	return screenModel{
		scr:       scr,
		view:      scr.View(),
		layout:    layout,
		rt:        rt,
		keyMapper: km,
		help:      h,
		styles:    styles,
	}
}

// Init initializes the screen.
func (m screenModel) Init() tea.Cmd {
	if m.view.State == flow.StateNewHighScore {
		return tickCmd(m.rt.TickRate)
	}
	return nil
}

// Update handles messages for the screen.
func (m screenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rt.ScreenW = msg.Width
		m.rt.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		if m.done || m.view.State != flow.StateNewHighScore {
			return m, nil
		}
		m.frames++
		if m.frames >= blinkFrames(m.rt.TickRate) {
			m.frames = 0
			m.blink = !m.blink
		}
		return m, tickCmd(m.rt.TickRate)
	}

	return m, nil
}

func (m screenModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.view.Buttons) > 0 {
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = (m.cursor - 1 + len(m.view.Buttons)) % len(m.view.Buttons)
			return m, nil
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % len(m.view.Buttons)
			return m, nil
		case MenuActionSelect:
			return m.dispatch(m.view.Buttons[m.cursor].Event())
		}
	}

	ev, ok := m.keyMapper.MapKey(m.view.State, msg)
	if !ok {
		return m, nil
	}
	return m.dispatch(ev)
}

func (m screenModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy := m.rt.Origin(m.view.Width, m.view.Height)
	b, ok := m.layout.HitTest(m.view.State, msg.X-ox, msg.Y-oy)
	if !ok {
		return m, nil
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		// Hover moves the highlight.
		for i, vb := range m.view.Buttons {
			if vb.Rect == b.Rect {
				m.cursor = i
			}
		}
		return m, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.dispatch(b.Event())
	}
	return m, nil
}

func (m screenModel) dispatch(ev flow.Event) (tea.Model, tea.Cmd) {
	if m.scr.Dispatch(ev) {
		m.done = true
		return m, tea.Quit
	}
	m.view = m.scr.View()
	if m.cursor >= len(m.view.Buttons) {
		m.cursor = 0
	}
	return m, nil
}

// Runtime returns the runtime config, including any resize seen.
func (m screenModel) Runtime() core.RuntimeConfig {
	return m.rt
}

// View renders the active screen on its canvas.
func (m screenModel) View() string {
	if m.done {
		return ""
	}

	canvas := core.NewScreen(m.view.Width, m.view.Height)
	rows := make(map[int]lipgloss.Style)

	switch m.view.State {
	case flow.StateMenu:
		drawMenu(canvas, rows, m.styles, m.view)
	case flow.StateLevelSelect:
		drawLevelSelect(canvas, rows, m.styles)
	case flow.StateInstructions:
		drawPage(canvas, rows, m.styles, instructionsPage)
	case flow.StateAbout:
		drawPage(canvas, rows, m.styles, aboutPage)
	case flow.StateHighScores:
		drawHighScores(canvas, rows, m.styles, m.view)
	case flow.StateNewHighScore:
		drawNameEntry(canvas, rows, m.styles, m.view, m.blink)
	}

	for i, b := range m.view.Buttons {
		style := core.BoxLight
		if i == m.cursor {
			style = core.BoxHeavy
			for y := b.Rect.Y; y < b.Rect.Bottom(); y++ {
				rows[y] = m.styles.Accent
			}
		}
		canvas.DrawButton(b.Rect, buttonLabel(b), style)
	}

	x, y := m.rt.Origin(m.view.Width, m.view.Height)
	out := place(x, y, RenderCanvas(canvas, rows, m.styles.Text))

	if len(m.view.Buttons) > 0 && y+m.view.Height < m.rt.ScreenH {
		out += "\n" + place(x, 0, m.styles.Help.Render(m.help.View(m.keyMapper.Keys())))
	}
	return out
}

func buttonLabel(b flow.Button) string {
	if b.Hotkey != 0 {
		return fmt.Sprintf("%c  %s", b.Hotkey, b.Label)
	}
	return b.Label
}

func drawMenu(s *core.Screen, rows map[int]lipgloss.Style, st Styles, v flow.View) {
	s.DrawTextCentered(1, "M A Z E   A R C A D E")
	rows[1] = st.Title
	s.DrawTextCentered(2, "classic edition")
	rows[2] = st.Accent

	if best, ok := v.Board.Best(); ok {
		y := s.Height() - 1
		s.DrawTextCentered(y, fmt.Sprintf("BEST  %s  %d", best.Name, best.Score))
		rows[y] = st.Dim
	}
}

func drawLevelSelect(s *core.Screen, rows map[int]lipgloss.Style, st Styles) {
	s.DrawTextCentered(2, "SELECT LEVEL")
	rows[2] = st.Title

	s.DrawTextCentered(15, "Practice from any level. Victories still")
	s.DrawTextCentered(16, "advance you, and your score can make the board.")
	rows[15] = st.Dim
	rows[16] = st.Dim
}

// page is a titled block of text sections.
type page struct {
	title    string
	sections []section
}

type section struct {
	heading string
	lines   []string
}

var instructionsPage = page{
	title: "HOW TO PLAY",
	sections: []section{
		{"OBJECTIVE", []string{
			"Clear every dot in the maze to finish a level.",
			"Touching a ghost costs a life.",
		}},
		{"CONTROLS", []string{
			"Arrow keys move. Esc leaves a screen.",
			"Click a button or press its number in menus.",
		}},
		{"LEVELS", []string{
			"Each level runs 15% faster than the last.",
			"Mazes change between levels.",
			"You start with 3 lives and keep what is left.",
		}},
	},
}

var aboutPage = page{
	title: "ABOUT",
	sections: []section{
		{"MAZE ARCADE", []string{
			"A terminal remake of the classic maze chase.",
			"Play locally or over SSH with arcade serve.",
		}},
		{"HIGH SCORES", []string{
			"The top five scores are kept between runs.",
			"Beat the lowest one to enter your name.",
		}},
	},
}

func drawPage(s *core.Screen, rows map[int]lipgloss.Style, st Styles, p page) {
	s.DrawTextCentered(1, p.title)
	rows[1] = st.Title

	y := 3
	for _, sec := range p.sections {
		s.DrawText(4, y, sec.heading)
		rows[y] = st.Accent
		y++
		for _, line := range sec.lines {
			s.DrawText(6, y, line)
			y++
		}
		y++
	}
}

func drawHighScores(s *core.Screen, rows map[int]lipgloss.Style, st Styles, v flow.View) {
	s.DrawTextCentered(1, "HIGH SCORES")
	rows[1] = st.Title

	if len(v.Board) == 0 {
		s.DrawTextCentered(8, "No high scores yet!")
		s.DrawTextCentered(10, "Finish a game to claim the first spot.")
		rows[8] = st.Accent
		rows[10] = st.Dim
		return
	}

	lines := strings.Split(boardTable(v.Board, v.Capacity).View(), "\n")
	width := 0
	for _, line := range lines {
		width = core.Max(width, utf8.RuneCountInString(line))
	}
	x := (s.Width() - width) / 2
	for i, line := range lines {
		s.DrawText(x, 4+i, strings.TrimRight(line, " "))
	}
	rows[4] = st.Accent
}

// boardTable lays the board out with bubbles/table. Styles carry no colors
// so the output can be copied cell by cell onto the canvas.
func boardTable(board scores.Board, capacity int) table.Model {
	columns := []table.Column{
		{Title: "RANK", Width: 5},
		{Title: "NAME", Width: 12},
		{Title: "SCORE", Width: 9},
	}

	tableRows := make([]table.Row, len(board))
	for i, e := range board {
		tableRows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(false),
		table.WithHeight(core.Max(capacity, len(board))+2),
	)
	t.SetStyles(table.Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Selected: lipgloss.NewStyle(),
	})
	return t
}

func drawNameEntry(s *core.Screen, rows map[int]lipgloss.Style, st Styles, v flow.View, caret bool) {
	s.DrawTextCentered(3, "NEW HIGH SCORE!")
	rows[3] = st.Title

	s.DrawTextCentered(6, fmt.Sprintf("SCORE  %d", v.Last.Score))
	s.DrawTextCentered(8, fmt.Sprintf("RANK  #%d", v.Board.Rank(v.Last.Score)))
	rows[8] = st.Accent

	s.DrawTextCentered(11, "ENTER YOUR NAME")

	n := utf8.RuneCountInString(v.Name)
	field := v.Name + strings.Repeat("_", core.Max(0, v.NameMaxLen-n))
	if caret && n < v.NameMaxLen {
		field = v.Name + "▌" + strings.Repeat("_", v.NameMaxLen-n-1)
	}
	w := utf8.RuneCountInString(field) + 4
	box := core.NewRect((s.Width()-w)/2, 13, w, 3)
	s.DrawButton(box, field, core.BoxHeavy)
	rows[14] = st.Title

	s.DrawTextCentered(18, "Letters and digits only")
	s.DrawTextCentered(19, "Enter saves  Backspace deletes")
	rows[18] = st.Dim
	rows[19] = st.Dim
}
