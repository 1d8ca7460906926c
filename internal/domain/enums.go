package domain

import "strings"

// Difficulty labels the board presets offered by the menu.
type Difficulty int

const (
	Simple Difficulty = iota
	Normal
	Hard
)

// Difficulties lists presets in menu order.
var Difficulties = []Difficulty{Simple, Normal, Hard}

func (d Difficulty) String() string {
	switch d {
	case Simple:
		return "simple"
	case Hard:
		return "hard"
	default:
		return "normal"
	}
}

// ConfigFor returns the board size and bomb count of a preset.
func ConfigFor(d Difficulty) GameConfig {
	switch d {
	case Simple:
		return GameConfig{Height: 9, Width: 9, Bombs: 10}
	case Hard:
		return GameConfig{Height: 16, Width: 30, Bombs: 99}
	default:
		return GameConfig{Height: 16, Width: 16, Bombs: 40}
	}
}

// ParseDifficulty maps a case-insensitive name to a preset. Unknown names
// fall back to Normal, reported through ok.
func ParseDifficulty(s string) (d Difficulty, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "easy", "beginner":
		return Simple, true
	case "normal", "medium", "intermediate":
		return Normal, true
	case "hard", "expert":
		return Hard, true
	default:
		return Normal, false
	}
}

// Outcome is the verdict after a reveal.
type Outcome int

const (
	Continue Outcome = iota
	BombHit
	AllClear
)

func (o Outcome) String() string {
	switch o {
	case BombHit:
		return "bomb_hit"
	case AllClear:
		return "all_clear"
	default:
		return "continue"
	}
}

// GameState tracks a session through its lifecycle.
type GameState int

const (
	Ready   GameState = iota // no grid yet, waiting for the first reveal
	Playing                  // grid generated, timer running
	Won
	Lost
	Quit
)

func (s GameState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "quit"
	}
}

// Over reports whether the session has reached a terminal state.
func (s GameState) Over() bool { return s == Won || s == Lost || s == Quit }
