package generator

import (
	"io"
	"log/slog"
)

// Balanced lays out bombs by recursive halving of the flat index space, so
// every half of the board receives its share without rejection sampling.
type Balanced struct {
	Logger *slog.Logger
}

// NewBalanced wires a generator; a nil logger discards debug output.
func NewBalanced(logger *slog.Logger) *Balanced {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Balanced{Logger: logger}
}

// Note: The Generate method is implemented in balanced.go.
