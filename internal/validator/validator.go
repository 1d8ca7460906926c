package validator

import (
	"context"
	"errors"

	"svw.info/minesweeper/internal/domain"
)

var errShape = errors.New("grid shape does not match config")

type GridValidator struct{}

func New() *GridValidator { return &GridValidator{} }

// Validate checks the bomb total and recounts every number by brute force.
// Cells whose content disagrees with their neighbourhood are returned as
// conflicts; a wrong bomb total alone yields ok=false with no conflicts.
func (v *GridValidator) Validate(ctx context.Context, g *domain.Grid, cfg domain.GameConfig) (bool, []domain.CellCoord, error) {
	if g.Height != cfg.Height || g.Width != cfg.Width || len(g.Cells) != cfg.Size() {
		return false, nil, errShape
	}
	conf := make([]domain.CellCoord, 0, 8)
	bombs := 0
	for r := 0; r < g.Height; r++ {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		for c := 0; c < g.Width; c++ {
			cell := g.Cells[g.Index(r, c)]
			if cell.Content == domain.Bomb {
				bombs++
				continue
			}
			if cell.Content > domain.Count(8) {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
				continue
			}
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if (dr != 0 || dc != 0) && g.InBounds(r+dr, c+dc) &&
						g.Cells[g.Index(r+dr, c+dc)].Content == domain.Bomb {
						n++
					}
				}
			}
			if cell.Content.Number() != n {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
		}
	}
	return len(conf) == 0 && bombs == cfg.Bombs, conf, nil
}
