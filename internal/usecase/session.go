package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/engine"
	"svw.info/minesweeper/internal/logger"
	"svw.info/minesweeper/internal/ports"
	"svw.info/minesweeper/internal/timer"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrOutOfBounds = errors.New("cell out of bounds")

	errNotConfigured = errors.New("usecase dependency not configured")
	errBadBoard      = errors.New("generated board failed validation")
)

// Deps are the providers a session is wired with. Only Generator is
// required.
type Deps struct {
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Recorder  ports.Recorder
	Logger    *slog.Logger
	Rand      *rand.Rand
	Tick      time.Duration
	OnTick    func(elapsed uint64)
}

// Session is one game: a lazily generated grid, its counters, and the
// ticker. It is not safe for concurrent use; the ticker goroutine never
// touches the grid.
type Session struct {
	ID uuid.UUID

	cfg  domain.GameConfig
	deps Deps
	log  *slog.Logger

	grid    *domain.Grid
	ctr     domain.Counters
	state   domain.GameState
	timer   *timer.Handle
	started time.Time
}

func NewSession(cfg domain.GameConfig, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Generator == nil {
		return nil, errNotConfigured
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	id := uuid.New()
	s := &Session{
		ID:    id,
		cfg:   cfg,
		deps:  deps,
		log:   deps.Logger.With("session", id.String()),
		ctr:   domain.NewCounters(cfg),
		state: domain.Ready,
	}
	s.log.Info("session created", "height", cfg.Height, "width", cfg.Width, "bombs", cfg.Bombs)
	return s, nil
}

func (s *Session) index(r, c int) (int, error) {
	if r < 0 || r >= s.cfg.Height || c < 0 || c >= s.cfg.Width {
		return 0, fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, r, c, s.cfg.Height, s.cfg.Width)
	}
	return r*s.cfg.Width + c, nil
}

// Reveal opens (r, c). The first call generates the board around it and
// starts the ticker.
func (s *Session) Reveal(r, c int) (domain.Outcome, error) {
	if s.state.Over() {
		return domain.Continue, ErrGameOver
	}
	i, err := s.index(r, c)
	if err != nil {
		return domain.Continue, err
	}
	if s.grid == nil {
		if err := s.begin(i); err != nil {
			return domain.Continue, err
		}
	}
	if s.grid.Cells[i].Surface == domain.Flagged {
		return domain.Continue, nil
	}

	before := s.ctr.RemainingCovered
	out := engine.Reveal(s.grid, i, &s.ctr, s.cfg.Bombs)
	opened := before - s.ctr.RemainingCovered
	if s.deps.Recorder != nil {
		s.deps.Recorder.Revealed(opened)
	}
	s.log.Debug("reveal", "row", r, "col", c, "opened", opened, "outcome", out.String())

	switch out {
	case domain.BombHit:
		s.finish(domain.Lost)
	case domain.AllClear:
		s.finish(domain.Won)
	}
	return out, nil
}

func (s *Session) begin(first int) error {
	ctx := context.Background()
	g, st, err := s.deps.Generator.Generate(ctx, s.cfg, first, s.deps.Rand)
	if err != nil {
		return fmt.Errorf("generate board: %w", err)
	}
	if s.deps.Validator != nil {
		ok, conflicts, err := s.deps.Validator.Validate(ctx, g, s.cfg)
		if err != nil {
			return fmt.Errorf("validate board: %w", err)
		}
		if !ok {
			s.log.Error("generated board is inconsistent", "conflicts", len(conflicts))
			return errBadBoard
		}
	}
	s.grid = g
	s.state = domain.Playing
	s.started = time.Now()
	s.timer = timer.Start(ctx, s.deps.Tick, s.deps.OnTick)
	if s.deps.Recorder != nil {
		s.deps.Recorder.GameStarted(s.cfg)
	}
	s.log.Info("game started", "first", s.grid.Coord(first), "bombs", st.Bombs, "gen_dur", st.Duration)
	return nil
}

// finish stops the ticker before recording the terminal state.
func (s *Session) finish(state domain.GameState) {
	wasPlaying := s.state == domain.Playing
	if s.timer != nil {
		s.timer.Cancel()
	}
	s.state = state
	if !wasPlaying {
		s.log.Info("session closed before play")
		return
	}
	dur := time.Since(s.started)
	if s.deps.Recorder != nil {
		s.deps.Recorder.GameEnded(state, dur)
	}
	s.log.Info("game ended", "state", state.String(), "elapsed", s.Elapsed(), "dur", dur.Round(time.Millisecond))
}

// ToggleFlag flags or unflags (r, c). Before the first reveal there is no
// board yet and the toggle is refused.
func (s *Session) ToggleFlag(r, c int) (bool, error) {
	if s.state.Over() {
		return false, ErrGameOver
	}
	i, err := s.index(r, c)
	if err != nil {
		return false, err
	}
	if s.grid == nil {
		s.log.Debug("flag refused before first reveal", "row", r, "col", c)
		return false, nil
	}
	changed := engine.ToggleFlag(s.grid, i, &s.ctr, s.cfg.Bombs)
	if s.deps.Recorder != nil {
		s.deps.Recorder.Flagged(changed)
	}
	if !changed {
		s.log.Debug("flag refused", "row", r, "col", c, "flags", s.ctr.FlagsPlaced)
	}
	return changed, nil
}

// Hint asks the hinter about the visible board.
func (s *Session) Hint(ctx context.Context) (domain.Hint, bool, error) {
	if s.deps.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	if s.state.Over() {
		return domain.Hint{}, false, ErrGameOver
	}
	if s.grid == nil {
		return domain.Hint{}, false, nil
	}
	return s.deps.Hinter.Hint(ctx, s.grid)
}

// Close quits the game if it is still running and joins the ticker.
func (s *Session) Close() {
	if s.state.Over() {
		return
	}
	s.finish(domain.Quit)
}

func (s *Session) Config() domain.GameConfig { return s.cfg }

func (s *Session) State() domain.GameState { return s.state }

func (s *Session) Counters() domain.Counters { return s.ctr }

func (s *Session) RemainingBombBudget() int { return engine.RemainingBudget(s.ctr, s.cfg.Bombs) }

// Grid returns a copy of the board; before the first reveal it is a blank
// covered board of the configured size.
func (s *Session) Grid() *domain.Grid {
	if s.grid == nil {
		return domain.NewGrid(s.cfg.Height, s.cfg.Width)
	}
	return s.grid.Clone()
}

// Elapsed is the number of ticks seen so far; it freezes when the game ends.
func (s *Session) Elapsed() uint64 {
	if s.timer == nil {
		return 0
	}
	return s.timer.Elapsed()
}
