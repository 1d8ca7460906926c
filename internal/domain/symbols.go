package domain

const (
	SymbolCovered = "▓"
	SymbolFlag    = "P"
	SymbolBomb    = "*"
)

// ContentSymbol renders what lies under a cell regardless of its surface.
func ContentSymbol(c Cell) string {
	if c.Content == Bomb {
		return SymbolBomb
	}
	return string(rune('0' + c.Content))
}

// SurfaceSymbol renders the covering of a cell; Open cells show their
// content.
func SurfaceSymbol(c Cell) string {
	switch c.Surface {
	case Flagged:
		return SymbolFlag
	case Open:
		return ContentSymbol(c)
	default:
		return SymbolCovered
	}
}
