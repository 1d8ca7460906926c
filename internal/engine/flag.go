package engine

import "svw.info/minesweeper/internal/domain"

// ToggleFlag flips a cell between Covered and Flagged while keeping
// c.FlagsPlaced within [0, bombs]. It reports whether the surface changed.
func ToggleFlag(g *domain.Grid, i int, c *domain.Counters, bombs int) bool {
	g.MustIndex(i)
	cell := &g.Cells[i]
	switch cell.Surface {
	case domain.Covered:
		if c.FlagsPlaced >= bombs {
			return false
		}
		cell.Surface = domain.Flagged
		c.FlagsPlaced++
		return true
	case domain.Flagged:
		if c.FlagsPlaced <= 0 {
			return false
		}
		cell.Surface = domain.Covered
		c.FlagsPlaced--
		return true
	default:
		return false
	}
}
