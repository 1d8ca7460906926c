package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/ports"
)

// Generate builds a covered grid for cfg with exactly cfg.Bombs bombs, none
// of them at firstClick.
func (g *Balanced) Generate(ctx context.Context, cfg domain.GameConfig, firstClick int, rng *rand.Rand) (*domain.Grid, ports.Stats, error) {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return nil, ports.Stats{}, err
	}
	if firstClick < 0 || firstClick >= cfg.Size() {
		panic(fmt.Sprintf("generator: first click %d outside board of %d cells", firstClick, cfg.Size()))
	}
	if err := ctx.Err(); err != nil {
		return nil, ports.Stats{}, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	bombs := make([]bool, cfg.Size())
	place(rng, cfg.Bombs, bombs)

	// 1) keep the opening click safe
	if bombs[firstClick] {
		for i, b := range bombs {
			if !b {
				bombs[i], bombs[firstClick] = true, false
				g.Logger.Debug("moved bomb off first click", "from", firstClick, "to", i)
				break
			}
		}
	}

	// 2) neighbour counts, one pass over the bombs
	grid := domain.NewGrid(cfg.Height, cfg.Width)
	placed := 0
	for i, b := range bombs {
		if !b {
			continue
		}
		placed++
		grid.Cells[i].Content = domain.Bomb
		grid.EachNeighbor(i, func(n int) {
			if !bombs[n] {
				grid.Cells[n].Content++
			}
		})
	}

	return grid, ports.Stats{Bombs: placed, Duration: time.Since(start)}, nil
}

// place marks k bombs in cells. A single bomb goes to a uniform index of the
// slice; more are split floor/ceil across the two halves. Callers keep
// k <= len(cells), which every split preserves.
func place(rng *rand.Rand, k int, cells []bool) {
	switch {
	case k == 0:
		return
	case k == 1:
		cells[rng.Intn(len(cells))] = true
		return
	}
	mid := len(cells) / 2
	place(rng, k/2, cells[:mid])
	place(rng, k-k/2, cells[mid:])
}
