// Package metrics records game lifecycle counters in a private Prometheus
// registry that can be dumped to a node-exporter textfile on exit.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"svw.info/minesweeper/internal/domain"
)

// Recorder implements ports.Recorder.
type Recorder struct {
	reg *prometheus.Registry

	started  *prometheus.CounterVec
	ended    *prometheus.CounterVec
	reveals  prometheus.Counter
	opened   prometheus.Counter
	flags    *prometheus.CounterVec
	duration prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minesweeper_games_started_total",
				Help: "Games whose board was generated, by board shape",
			},
			[]string{"board"},
		),
		ended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minesweeper_games_ended_total",
				Help: "Finished games by final state",
			},
			[]string{"state"},
		),
		reveals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minesweeper_reveals_total",
			Help: "Reveal commands applied to a board",
		}),
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minesweeper_cells_opened_total",
			Help: "Cells opened by reveals and flood fills",
		}),
		flags: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minesweeper_flag_toggles_total",
				Help: "Flag toggles by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "minesweeper_game_duration_seconds",
			Help:    "Wall time from first reveal to the end of a game",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 1200},
		}),
	}
	r.reg.MustRegister(r.started, r.ended, r.reveals, r.opened, r.flags, r.duration)
	return r
}

// Registry exposes the underlying registry for scraping or tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) GameStarted(cfg domain.GameConfig) {
	r.started.WithLabelValues(fmt.Sprintf("%dx%d/%d", cfg.Height, cfg.Width, cfg.Bombs)).Inc()
}

func (r *Recorder) Revealed(opened int) {
	r.reveals.Inc()
	if opened > 0 {
		r.opened.Add(float64(opened))
	}
}

func (r *Recorder) Flagged(changed bool) {
	if changed {
		r.flags.WithLabelValues("applied").Inc()
		return
	}
	r.flags.WithLabelValues("refused").Inc()
}

// GameEnded counts the terminal state. Durations are only observed for
// games that reached Won or Lost.
func (r *Recorder) GameEnded(state domain.GameState, elapsed time.Duration) {
	r.ended.WithLabelValues(state.String()).Inc()
	if state == domain.Won || state == domain.Lost {
		r.duration.Observe(elapsed.Seconds())
	}
}

// WriteTextfile writes the registry in text exposition format, atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
