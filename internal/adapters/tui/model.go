package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/logger"
	"svw.info/minesweeper/internal/usecase"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenOver
)

// Screen layout, in terminal cells. Mouse events are mapped back through
// these offsets.
const (
	menuTop   = 2
	boardTop  = 2
	cellWidth = 2
)

var overItems = []string{"One more time", "Back to menu"}

type Model struct {
	keys       keyMap
	help       string
	newSession SessionFactory
	out        *sender
	log        *slog.Logger

	screen  screen
	menuIdx int
	overIdx int
	diff    domain.Difficulty
	sess    *usecase.Session
	cur     domain.CellCoord
	status  string
}

func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	m := Model{
		keys:       newKeyMap(opts.Keys),
		help:       helpLine(opts.Keys),
		newSession: opts.NewSession,
		out:        &sender{},
		log:        log,
		diff:       opts.Difficulty,
	}
	for i, d := range domain.Difficulties {
		if d == opts.Difficulty {
			m.menuIdx = i
		}
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.closeSession()
			return m, tea.Quit
		}
		a := m.keys.action(msg)
		switch m.screen {
		case screenGame:
			return m.updateGame(a)
		case screenOver:
			return m.updateOver(a)
		default:
			return m.updateMenu(a)
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		return m.updateMouse(msg)
	case tickMsg:
		// the status line reads the session clock directly
		return m, nil
	}
	return m, nil
}

func (m Model) updateMenu(a action) (tea.Model, tea.Cmd) {
	n := len(domain.Difficulties)
	switch a {
	case actUp:
		m.menuIdx = (m.menuIdx + n - 1) % n
	case actDown:
		m.menuIdx = (m.menuIdx + 1) % n
	case actMine:
		return m.startGame(domain.Difficulties[m.menuIdx])
	case actQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) startGame(d domain.Difficulty) (tea.Model, tea.Cmd) {
	if m.newSession == nil {
		m.status = "no game backend configured"
		return m, nil
	}
	m.closeSession()
	out := m.out
	s, err := m.newSession(domain.ConfigFor(d), func(n uint64) { out.post(tickMsg(n)) })
	if err != nil {
		m.log.Error("new session", "difficulty", d.String(), "err", err)
		m.status = err.Error()
		return m, nil
	}
	m.log.Debug("game screen", "difficulty", d.String(), "session", s.ID.String())
	m.sess = s
	m.diff = d
	m.screen = screenGame
	m.cur = domain.CellCoord{}
	m.status = "Dig anywhere to start"
	return m, nil
}

func (m Model) updateGame(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actUp:
		m.moveCursor(-1, 0)
	case actDown:
		m.moveCursor(1, 0)
	case actLeft:
		m.moveCursor(0, -1)
	case actRight:
		m.moveCursor(0, 1)
	case actMine:
		return m.reveal()
	case actFlag:
		return m.flag()
	case actHint:
		return m.showHint()
	case actQuit:
		m.closeSession()
		m.sess = nil
		m.screen = screenMenu
		m.status = "Game abandoned"
	}
	return m, nil
}

// moveCursor clamps to the board edges.
func (m *Model) moveCursor(dr, dc int) {
	cfg := m.sess.Config()
	m.cur.Row = clamp(m.cur.Row+dr, 0, cfg.Height-1)
	m.cur.Col = clamp(m.cur.Col+dc, 0, cfg.Width-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) reveal() (tea.Model, tea.Cmd) {
	out, err := m.sess.Reveal(m.cur.Row, m.cur.Col)
	if err != nil {
		m.log.Warn("reveal", "err", err)
		m.status = err.Error()
		return m, nil
	}
	switch out {
	case domain.BombHit:
		m.screen = screenOver
		m.overIdx = 0
		m.status = "Boom! That was a bomb."
	case domain.AllClear:
		m.screen = screenOver
		m.overIdx = 0
		m.status = fmt.Sprintf("All clear in %d seconds!", m.sess.Elapsed())
	default:
		m.status = ""
	}
	return m, nil
}

func (m Model) flag() (tea.Model, tea.Cmd) {
	changed, err := m.sess.ToggleFlag(m.cur.Row, m.cur.Col)
	switch {
	case err != nil:
		m.status = err.Error()
	case changed:
		m.status = ""
	case m.sess.State() == domain.Ready:
		m.status = "Dig a cell before placing flags"
	case m.sess.RemainingBombBudget() == 0:
		m.status = "No flags left"
	default:
		m.status = "Open cells cannot be flagged"
	}
	return m, nil
}

func (m Model) showHint() (tea.Model, tea.Cmd) {
	h, ok, err := m.sess.Hint(context.Background())
	switch {
	case err != nil:
		m.status = err.Error()
	case !ok:
		m.status = "No certain move in sight"
	default:
		m.cur = h.Cell
		m.status = h.Message
	}
	return m, nil
}

func (m Model) updateOver(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actUp, actDown:
		m.overIdx = 1 - m.overIdx
	case actMine:
		return m.chooseOver(m.overIdx)
	case actQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) chooseOver(i int) (tea.Model, tea.Cmd) {
	if i == 0 {
		return m.startGame(m.diff)
	}
	m.sess = nil
	m.screen = screenMenu
	m.status = ""
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenMenu:
		i := msg.Y - menuTop
		if msg.Button == tea.MouseButtonLeft && i >= 0 && i < len(domain.Difficulties) {
			m.menuIdx = i
			return m.startGame(domain.Difficulties[i])
		}
	case screenGame:
		cfg := m.sess.Config()
		m.cur = domain.CellCoord{
			Row: clamp(msg.Y-boardTop, 0, cfg.Height-1),
			Col: clamp(msg.X/cellWidth, 0, cfg.Width-1),
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.reveal()
		case tea.MouseButtonRight:
			return m.flag()
		}
	case screenOver:
		i := msg.Y - (boardTop + m.sess.Config().Height + 1)
		if msg.Button == tea.MouseButtonLeft && i >= 0 && i < len(overItems) {
			m.overIdx = i
			return m.chooseOver(i)
		}
	}
	return m, nil
}

// closeSession ends a running game; finished sessions ignore it.
func (m Model) closeSession() {
	if m.sess != nil {
		m.sess.Close()
	}
}
