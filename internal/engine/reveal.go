// Package engine mutates a generated grid in response to player commands.
// Counters are owned by the caller and passed in explicitly; nothing here
// keeps state between calls.
package engine

import "svw.info/minesweeper/internal/domain"

// Reveal opens start and flood-fills breadth-first through contiguous empty
// cells, stopping at the first ring of numbers. Each newly opened cell
// decrements c.RemainingCovered once. Opening a bomb stops the fill at once
// and reports BombHit with the grid left partially opened.
//
// Flagged cells are never opened: a flagged start is a no-op and flagged
// neighbours are not enqueued. start must be a valid index.
func Reveal(g *domain.Grid, start int, c *domain.Counters, bombs int) domain.Outcome {
	g.MustIndex(start)
	if g.Cells[start].Surface == domain.Flagged {
		return Judge(*c, bombs, false)
	}

	queue := []int{start}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		cell := &g.Cells[i]
		if cell.Surface == domain.Open {
			continue
		}
		cell.Surface = domain.Open
		c.RemainingCovered--

		switch cell.Content {
		case domain.Bomb:
			return domain.BombHit
		case domain.Empty:
			g.EachNeighbor(i, func(n int) {
				if g.Cells[n].Surface == domain.Covered {
					queue = append(queue, n)
				}
			})
		}
	}
	return Judge(*c, bombs, false)
}

// RevealAll opens every cell for the end-of-game board. Counters are left
// alone so the final tallies still describe the play.
func RevealAll(g *domain.Grid) {
	for i := range g.Cells {
		g.Cells[i].Surface = domain.Open
	}
}
