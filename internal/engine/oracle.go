package engine

import "svw.info/minesweeper/internal/domain"

// Judge derives the verdict from the counters alone. The board is clear
// once only the bombs remain covered.
func Judge(c domain.Counters, bombs int, hitBomb bool) domain.Outcome {
	switch {
	case hitBomb:
		return domain.BombHit
	case c.RemainingCovered == bombs:
		return domain.AllClear
	default:
		return domain.Continue
	}
}

// RemainingBudget is the number of flags the player may still place.
func RemainingBudget(c domain.Counters, bombs int) int {
	return bombs - c.FlagsPlaced
}
