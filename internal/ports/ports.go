package ports

import (
	"context"
	"math/rand"
	"time"

	"svw.info/minesweeper/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Bombs    int
	Duration time.Duration
}

// Generator lays out a fresh board whose first click is safe.
type Generator interface {
	Generate(ctx context.Context, cfg domain.GameConfig, firstClick int, rng *rand.Rand) (*domain.Grid, Stats, error)
}

// Validator checks a generated board: bomb total and neighbour counts.
type Validator interface {
	Validate(ctx context.Context, g *domain.Grid, cfg domain.GameConfig) (ok bool, conflicts []domain.CellCoord, err error)
}

// Hinter returns the next logical step visible from the open cells.
type Hinter interface {
	Hint(ctx context.Context, g *domain.Grid) (domain.Hint, bool, error)
}

// Recorder receives session lifecycle events for metrics.
type Recorder interface {
	GameStarted(d domain.GameConfig)
	Revealed(opened int)
	Flagged(changed bool)
	GameEnded(state domain.GameState, elapsed time.Duration)
}
