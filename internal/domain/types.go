package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a board cannot hold the requested bombs.
var ErrInvalidConfig = errors.New("invalid game config")

// Content is the fixed identity of a cell: Empty, a count 1..8, or Bomb.
type Content uint8

const (
	Empty Content = 0
	Bomb  Content = 9
)

// Count returns the content for n bomb neighbours.
func Count(n int) Content {
	if n < 0 || n > 8 {
		panic(fmt.Sprintf("domain: neighbour count %d out of range", n))
	}
	return Content(n)
}

func (c Content) IsBomb() bool { return c == Bomb }

// Number returns the neighbour count, or -1 for a bomb.
func (c Content) Number() int {
	if c == Bomb {
		return -1
	}
	return int(c)
}

// Surface is what the player currently sees on a cell.
type Surface uint8

const (
	Covered Surface = iota
	Open
	Flagged
)

func (s Surface) String() string {
	switch s {
	case Open:
		return "open"
	case Flagged:
		return "flagged"
	default:
		return "covered"
	}
}

// Cell is the minimal member of a grid.
type Cell struct {
	Content Content `json:"content"`
	Surface Surface `json:"surface"`
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameConfig holds board dimensions and bomb count.
type GameConfig struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	Bombs  int `json:"bombs"`
}

func (c GameConfig) Size() int { return c.Height * c.Width }

// Validate reports ErrInvalidConfig when the board cannot hold at least one
// safe cell.
func (c GameConfig) Validate() error {
	if c.Height < 1 || c.Width < 1 {
		return fmt.Errorf("%w: %dx%d board", ErrInvalidConfig, c.Height, c.Width)
	}
	if c.Bombs < 0 {
		return fmt.Errorf("%w: negative bomb count %d", ErrInvalidConfig, c.Bombs)
	}
	if c.Bombs >= c.Size() {
		return fmt.Errorf("%w: %d bombs on %d cells", ErrInvalidConfig, c.Bombs, c.Size())
	}
	return nil
}

// Counters are the per-session tallies mutated by the engine.
type Counters struct {
	RemainingCovered int `json:"remainingCovered"`
	FlagsPlaced      int `json:"flagsPlaced"`
}

// NewCounters returns counters for a fresh board of cfg.
func NewCounters(cfg GameConfig) Counters {
	return Counters{RemainingCovered: cfg.Size()}
}

// Hint describes a deduction for the UI.
type Hint struct {
	Message string    `json:"message,omitempty"`
	Cell    CellCoord `json:"cell"`
	Safe    bool      `json:"safe"` // false means the cell is a certain bomb
}
