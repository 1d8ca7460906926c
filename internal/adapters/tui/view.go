package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/engine"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	coverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	flagStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	bombStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	numberStyles = [...]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	}
)

const symbolEmpty = "·"

type renderMode int

const (
	modeNormal renderMode = iota
	modeWin               // bombs shown as flags
	modeLose              // everything opened
)

func (m Model) View() string {
	switch m.screen {
	case screenGame, screenOver:
		return m.viewBoard()
	default:
		return m.viewMenu()
	}
}

// viewMenu keeps items on lines menuTop.. so mouse rows map to them.
func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MINESWEEPER") + "\n")
	b.WriteString("Pick a difficulty\n")
	for i, d := range domain.Difficulties {
		cfg := domain.ConfigFor(d)
		line := fmt.Sprintf("%-7s %2dx%-2d %3d bombs", d.String(), cfg.Height, cfg.Width, cfg.Bombs)
		if i == m.menuIdx {
			b.WriteString(selectStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.help))
	return b.String()
}

func (m Model) viewBoard() string {
	s := m.sess
	var b strings.Builder
	b.WriteString(titleStyle.Render("MINESWEEPER "+m.diff.String()) + "\n")
	b.WriteString(statusStyle.Render(statusLine(s.RemainingBombBudget(), s.Elapsed())) + "\n")

	mode := modeNormal
	switch s.State() {
	case domain.Won:
		mode = modeWin
	case domain.Lost:
		mode = modeLose
	}
	cursor := &m.cur
	if m.screen == screenOver {
		cursor = nil
	}
	b.WriteString(renderBoard(s.Grid(), mode, cursor))
	b.WriteString(statusStyle.Render(m.status) + "\n")

	if m.screen == screenOver {
		for i, item := range overItems {
			if i == m.overIdx {
				b.WriteString(selectStyle.Render("> "+item) + "\n")
			} else {
				b.WriteString("  " + item + "\n")
			}
		}
		return b.String()
	}
	b.WriteString(helpStyle.Render(m.help))
	return b.String()
}

func statusLine(budget int, elapsed uint64) string {
	return fmt.Sprintf("Bombs %02d  Time %03d", budget, elapsed)
}

// symbolRows maps g to plain symbols for mode. g is modified in modeLose.
func symbolRows(g *domain.Grid, mode renderMode) [][]string {
	if mode == modeLose {
		engine.RevealAll(g)
	}
	rows := make([][]string, g.Height)
	for r := range rows {
		rows[r] = make([]string, g.Width)
		for c := range rows[r] {
			cell := g.Cells[g.Index(r, c)]
			sym := domain.SurfaceSymbol(cell)
			if mode == modeWin && cell.Content.IsBomb() {
				sym = domain.SymbolFlag
			}
			if sym == "0" {
				sym = symbolEmpty
			}
			rows[r][c] = sym
		}
	}
	return rows
}

func styleFor(sym string) lipgloss.Style {
	switch sym {
	case domain.SymbolCovered:
		return coverStyle
	case domain.SymbolFlag:
		return flagStyle
	case domain.SymbolBomb:
		return bombStyle
	case symbolEmpty:
		return numberStyles[0]
	}
	if len(sym) == 1 && sym[0] >= '1' && sym[0] <= '8' {
		return numberStyles[sym[0]-'0']
	}
	return lipgloss.NewStyle()
}

// renderBoard draws one terminal line per row, cellWidth columns per cell.
func renderBoard(g *domain.Grid, mode renderMode, cursor *domain.CellCoord) string {
	var b strings.Builder
	for r, row := range symbolRows(g, mode) {
		for c, sym := range row {
			st := styleFor(sym)
			if cursor != nil && cursor.Row == r && cursor.Col == c {
				st = st.Inherit(cursorStyle)
			}
			b.WriteString(st.Render(sym))
			b.WriteString(strings.Repeat(" ", cellWidth-1))
		}
		b.WriteString("\n")
	}
	return b.String()
}
