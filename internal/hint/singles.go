package hint

import (
	"context"
	"fmt"

	"svw.info/minesweeper/internal/domain"
)

// Singles implements a minimal Hinter that looks at one open number at a
// time. Player flags are ignored as evidence, so a wrong flag can never turn
// into a wrong hint.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns a certain safe cell if one is visible, otherwise a certain
// bomb that is not flagged yet.
func (h *Singles) Hint(ctx context.Context, g *domain.Grid) (domain.Hint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}

	bombs := knownBombs(g)

	for i, cell := range g.Cells {
		n := openNumber(cell)
		if n <= 0 {
			continue
		}
		known := 0
		var candidates []int
		g.EachNeighbor(i, func(j int) {
			switch {
			case bombs[j]:
				known++
			case g.Cells[j].Surface == domain.Covered:
				candidates = append(candidates, j)
			}
		})
		if known == n && len(candidates) > 0 {
			at, from := g.Coord(candidates[0]), g.Coord(i)
			return domain.Hint{
				Message: fmt.Sprintf("Safe: the %d at (%d,%d) already has all its bombs", n, from.Row+1, from.Col+1),
				Cell:    at,
				Safe:    true,
			}, true, nil
		}
	}

	for i, isBomb := range bombs {
		if !isBomb || g.Cells[i].Surface == domain.Flagged {
			continue
		}
		at := g.Coord(i)
		return domain.Hint{
			Message: fmt.Sprintf("Bomb: (%d,%d) is the only place left for a neighbour's count", at.Row+1, at.Col+1),
			Cell:    at,
			Safe:    false,
		}, true, nil
	}
	return domain.Hint{}, false, nil
}

// knownBombs marks every unopened cell that some open number needs all of
// its unopened neighbours to be bombs.
func knownBombs(g *domain.Grid) []bool {
	out := make([]bool, g.Len())
	for i, cell := range g.Cells {
		n := openNumber(cell)
		if n <= 0 {
			continue
		}
		var hidden []int
		g.EachNeighbor(i, func(j int) {
			if g.Cells[j].Surface != domain.Open {
				hidden = append(hidden, j)
			}
		})
		if len(hidden) == n {
			for _, j := range hidden {
				out[j] = true
			}
		}
	}
	return out
}

// openNumber is the visible count of an open cell, or -1 when the cell
// gives no information.
func openNumber(c domain.Cell) int {
	if c.Surface != domain.Open || c.Content.IsBomb() {
		return -1
	}
	return c.Content.Number()
}
