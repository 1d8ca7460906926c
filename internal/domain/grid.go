package domain

import "fmt"

// Grid is a row-major board of Height*Width cells.
type Grid struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Cells  []Cell `json:"cells"`
}

// NewGrid returns a fully covered, bomb-free grid.
func NewGrid(height, width int) *Grid {
	return &Grid{Height: height, Width: width, Cells: make([]Cell, height*width)}
}

func (g *Grid) Len() int { return len(g.Cells) }

func (g *Grid) Index(r, c int) int { return r*g.Width + c }

func (g *Grid) Coord(i int) CellCoord { return CellCoord{Row: i / g.Width, Col: i % g.Width} }

func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Height && c >= 0 && c < g.Width
}

// MustIndex panics when i is not a cell of g. Engine entry points use it to
// fail fast on caller bugs.
func (g *Grid) MustIndex(i int) {
	if i < 0 || i >= len(g.Cells) {
		panic(fmt.Sprintf("domain: cell index %d out of range [0,%d)", i, len(g.Cells)))
	}
}

var dirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// EachNeighbor calls fn for every in-bounds neighbour of i.
func (g *Grid) EachNeighbor(i int, fn func(n int)) {
	r, c := i/g.Width, i%g.Width
	for _, d := range dirs {
		nr, nc := r+d[0], c+d[1]
		if g.InBounds(nr, nc) {
			fn(nr*g.Width + nc)
		}
	}
}

// Neighbors returns the up-to-8 neighbour indices of i.
func (g *Grid) Neighbors(i int) []int {
	out := make([]int, 0, 8)
	g.EachNeighbor(i, func(n int) { out = append(out, n) })
	return out
}

// BombCount counts cells whose content is Bomb.
func (g *Grid) BombCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Content == Bomb {
			n++
		}
	}
	return n
}

// Clone returns a deep copy for read-only consumers.
func (g *Grid) Clone() *Grid {
	out := &Grid{Height: g.Height, Width: g.Width, Cells: make([]Cell, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}
