// Package tui is the Bubble Tea front end: difficulty menu, board, status
// line and the replay prompt. It drives a usecase.Session and never touches
// the grid directly.
package tui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"svw.info/minesweeper/internal/config"
	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/usecase"
)

// SessionFactory builds a wired session; onTick must be passed through to
// the session's ticker.
type SessionFactory func(cfg domain.GameConfig, onTick func(elapsed uint64)) (*usecase.Session, error)

type Options struct {
	Keys       config.Keymap
	Difficulty domain.Difficulty
	NewSession SessionFactory
	Logger     *slog.Logger
}

type App struct {
	opts Options
}

func NewApp(opts Options) *App {
	return &App{opts: opts}
}

// Run blocks until the player quits or ctx is cancelled. Any running game is
// closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	m := NewModel(a.opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	m.out.set(p.Send)
	defer m.out.set(nil)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.closeSession()
	}
	return err
}

// tickMsg wakes the program so the status line shows the new time.
type tickMsg uint64

// sender forwards timer ticks into the running program.
type sender struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *sender) set(fn func(tea.Msg)) {
	s.mu.Lock()
	s.send = fn
	s.mu.Unlock()
}

// post never blocks: the ticker goroutine may be joined from inside Update,
// which is the only reader of Program.Send.
func (s *sender) post(msg tea.Msg) {
	s.mu.Lock()
	fn := s.send
	s.mu.Unlock()
	if fn != nil {
		go fn(msg)
	}
}
