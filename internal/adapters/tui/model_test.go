package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"svw.info/minesweeper/internal/config"
	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/generator"
	"svw.info/minesweeper/internal/hint"
	"svw.info/minesweeper/internal/usecase"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	var sessions []*usecase.Session
	t.Cleanup(func() {
		for _, s := range sessions {
			s.Close()
		}
	})
	seed := int64(0)
	return NewModel(Options{
		Keys:       config.DefaultKeymap(),
		Difficulty: domain.Simple,
		NewSession: func(cfg domain.GameConfig, onTick func(uint64)) (*usecase.Session, error) {
			seed++
			s, err := usecase.NewSession(cfg, usecase.Deps{
				Generator: generator.NewBalanced(nil),
				Hinter:    hint.NewSingles(),
				Rand:      rand.New(rand.NewSource(seed)),
				Tick:      time.Hour,
				OnTick:    onTick,
			})
			if err == nil {
				sessions = append(sessions, s)
			}
			return s, err
		},
	})
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func click(btn tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: btn}
}

func TestMenuNavigationWraps(t *testing.T) {
	m := newTestModel(t)
	if m.menuIdx != 0 {
		t.Fatalf("initial selection %d, want simple", m.menuIdx)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.menuIdx != len(domain.Difficulties)-1 {
		t.Fatalf("up from top = %d, want last item", m.menuIdx)
	}
	m = send(t, m, runes("j"))
	if m.menuIdx != 0 {
		t.Fatalf("down from bottom = %d, want 0", m.menuIdx)
	}
	if !strings.Contains(m.View(), "simple") {
		t.Fatalf("menu view missing items:\n%s", m.View())
	}
}

func TestMenuQuit(t *testing.T) {
	m := newTestModel(t)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatal("quit key returned no command")
	}
}

func TestStartGameAndCursorClamp(t *testing.T) {
	m := send(t, newTestModel(t), runes("d"))
	if m.screen != screenGame || m.sess == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	m = send(t, m, runes("k"), runes("h"), tea.KeyMsg{Type: tea.KeyLeft})
	if m.cur != (domain.CellCoord{}) {
		t.Fatalf("cursor escaped top-left: %v", m.cur)
	}
	for i := 0; i < 20; i++ {
		m = send(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cur != (domain.CellCoord{Row: 8, Col: 8}) {
		t.Fatalf("cursor = %v, want clamped to (8,8)", m.cur)
	}
	if v := m.View(); !strings.Contains(v, "Bombs 10") || !strings.Contains(v, "Time 000") {
		t.Fatalf("status line missing:\n%s", v)
	}
}

func TestFlagBeforeFirstDig(t *testing.T) {
	m := send(t, newTestModel(t), runes("d"), runes("f"))
	if m.sess.State() != domain.Ready || m.sess.RemainingBombBudget() != 10 {
		t.Fatalf("flag before dig changed state: %v budget %d", m.sess.State(), m.sess.RemainingBombBudget())
	}
	if !strings.Contains(m.status, "before placing flags") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestMouseDigAndFlag(t *testing.T) {
	m := send(t, newTestModel(t), click(tea.MouseButtonLeft, 0, menuTop))
	if m.screen != screenGame || m.diff != domain.Simple {
		t.Fatalf("menu click: screen %v diff %v", m.screen, m.diff)
	}
	m = send(t, m, click(tea.MouseButtonLeft, 4*cellWidth, boardTop+4))
	if m.cur != (domain.CellCoord{Row: 4, Col: 4}) {
		t.Fatalf("cursor = %v, want (4,4)", m.cur)
	}
	g := m.sess.Grid()
	if g.Cells[g.Index(4, 4)].Surface != domain.Open {
		t.Fatal("left click did not dig")
	}
	if m.screen != screenGame {
		t.Skip("board cleared on the first click")
	}
	covered := -1
	for i, c := range g.Cells {
		if c.Surface == domain.Covered {
			covered = i
			break
		}
	}
	at := g.Coord(covered)
	m = send(t, m, click(tea.MouseButtonRight, at.Col*cellWidth, boardTop+at.Row))
	if m.sess.Counters().FlagsPlaced != 1 {
		t.Fatalf("right click placed %d flags", m.sess.Counters().FlagsPlaced)
	}
	if !strings.Contains(m.View(), "Bombs 09") {
		t.Fatalf("budget not updated:\n%s", m.View())
	}
}

func TestLoseThenReplay(t *testing.T) {
	m := send(t, newTestModel(t), runes("d"), runes("d"))
	if m.screen != screenGame {
		t.Skip("board cleared on the first dig")
	}
	g := m.sess.Grid()
	for i, c := range g.Cells {
		if c.Content.IsBomb() {
			m.cur = g.Coord(i)
			break
		}
	}
	m = send(t, m, runes("d"))
	if m.screen != screenOver || m.sess.State() != domain.Lost {
		t.Fatalf("screen %v state %v after digging a bomb", m.screen, m.sess.State())
	}
	if !strings.Contains(m.View(), overItems[0]) {
		t.Fatalf("replay prompt missing:\n%s", m.View())
	}
	lost := m.sess
	m = send(t, m, runes("d"))
	if m.screen != screenGame || m.sess == lost || m.sess.State() != domain.Ready {
		t.Fatalf("one more time did not start a fresh game")
	}
	m = send(t, m, runes("q"))
	if m.screen != screenMenu || m.sess != nil {
		t.Fatalf("quit from game: screen %v", m.screen)
	}
}

func TestOverBackToMenu(t *testing.T) {
	m := send(t, newTestModel(t), runes("d"), runes("d"))
	if m.screen != screenGame {
		t.Skip("board cleared on the first dig")
	}
	m.sess.Close()
	m.screen = screenOver
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
}

func TestHintMovesCursor(t *testing.T) {
	m := send(t, newTestModel(t), runes("d"))
	m.cur = domain.CellCoord{Row: 4, Col: 4}
	m = send(t, m, runes("d"))
	if m.screen != screenGame {
		t.Skip("board cleared on the first dig")
	}
	m = send(t, m, runes("?"))
	h, ok, _ := m.sess.Hint(context.Background())
	if !ok {
		if m.status != "No certain move in sight" {
			t.Fatalf("status = %q", m.status)
		}
		return
	}
	if m.cur != h.Cell || m.status != h.Message {
		t.Fatalf("cursor %v status %q, want %v %q", m.cur, m.status, h.Cell, h.Message)
	}
}

func TestSymbolRowsModes(t *testing.T) {
	g := domain.NewGrid(1, 3)
	g.Cells[0].Content = domain.Bomb
	g.Cells[1] = domain.Cell{Content: domain.Count(1), Surface: domain.Open}
	g.Cells[2] = domain.Cell{Content: domain.Empty, Surface: domain.Open}

	cases := []struct {
		name string
		mode renderMode
		want string
	}{
		{"normal", modeNormal, domain.SymbolCovered + "1" + symbolEmpty},
		{"win", modeWin, domain.SymbolFlag + "1" + symbolEmpty},
		{"lose", modeLose, domain.SymbolBomb + "1" + symbolEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := symbolRows(g.Clone(), tc.mode)
			if got := strings.Join(rows[0], ""); got != tc.want {
				t.Fatalf("row = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusLine(t *testing.T) {
	if got := statusLine(7, 42); got != "Bombs 07  Time 042" {
		t.Fatalf("statusLine = %q", got)
	}
}

func TestExitFromGameClosesSession(t *testing.T) {
	cases := []struct {
		name   string
		key    tea.KeyMsg
		screen screen
		quits  bool
	}{
		{"quit key", runes("q"), screenMenu, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, screenGame, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := send(t, newTestModel(t), runes("d"), runes("d"))
			if m.screen != screenGame {
				t.Skip("board cleared on the first dig")
			}
			s := m.sess
			if s.State() != domain.Playing {
				t.Fatalf("state = %v after first dig", s.State())
			}
			next, cmd := m.Update(tc.key)
			m = next.(Model)
			if s.State() != domain.Quit {
				t.Fatalf("state = %v, want quit", s.State())
			}
			if (cmd != nil) != tc.quits {
				t.Fatalf("program quit = %v, want %v", cmd != nil, tc.quits)
			}
			if m.screen != tc.screen {
				t.Fatalf("screen = %v, want %v", m.screen, tc.screen)
			}
			if tc.screen == screenMenu && m.sess != nil {
				t.Fatal("abandoned session still attached")
			}
		})
	}
}
