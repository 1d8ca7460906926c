package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"svw.info/minesweeper/internal/config"
)

type action int

const (
	actNone action = iota
	actUp
	actDown
	actLeft
	actRight
	actMine
	actFlag
	actQuit
	actHint
)

type keyMap map[string]action

// newKeyMap binds the configured characters on top of the arrow keys.
// Enter always digs so menus work without learning the layout.
func newKeyMap(k config.Keymap) keyMap {
	km := keyMap{
		"up":    actUp,
		"down":  actDown,
		"left":  actLeft,
		"right": actRight,
		"enter": actMine,
	}
	km[k.Up] = actUp
	km[k.Down] = actDown
	km[k.Left] = actLeft
	km[k.Right] = actRight
	km[k.Mine] = actMine
	km[k.Flag] = actFlag
	km[k.Quit] = actQuit
	km[k.Hint] = actHint
	return km
}

func (km keyMap) action(msg tea.KeyMsg) action {
	return km[msg.String()]
}

func helpLine(k config.Keymap) string {
	return fmt.Sprintf("move %s%s%s%s/arrows  dig %s  flag %s  hint %s  quit %s",
		k.Left, k.Down, k.Up, k.Right, k.Mine, k.Flag, k.Hint, k.Quit)
}
