package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"svw.info/minesweeper/internal/adapters/tui"
	"svw.info/minesweeper/internal/config"
	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/generator"
	"svw.info/minesweeper/internal/hint"
	"svw.info/minesweeper/internal/logger"
	"svw.info/minesweeper/internal/metrics"
	"svw.info/minesweeper/internal/usecase"
	"svw.info/minesweeper/internal/validator"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env and MINES_* provide defaults; flags win.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	diffStr := flag.String("difficulty", cfg.Difficulty.String(), "initial menu selection: simple|normal|hard")
	seed := flag.Int64("seed", cfg.Seed, "board seed, 0 seeds from the clock")
	tick := flag.Duration("tick", cfg.Tick, "timer interval")
	levelStr := flag.String("log-level", cfg.LogLevel, "debug|info|warn|error")
	logFile := flag.String("log-file", cfg.LogFile, "log file, empty discards logs")
	logJSON := flag.Bool("log-json", cfg.LogJSON, "write JSON log lines")
	metricsFile := flag.String("metrics-file", cfg.MetricsFile, "write Prometheus metrics to this textfile on exit")
	flag.Parse()

	diff, ok := domain.ParseDifficulty(*diffStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown difficulty %q\n", *diffStr)
		return 2
	}

	w, err := logger.OpenFile(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log file:", err)
		return 1
	}
	defer w.Close()
	log := logger.Init(w, *levelStr, *logJSON)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	// Wire providers → session factory → terminal UI
	rec := metrics.New()
	gen := generator.NewBalanced(log)
	val := validator.New()
	hin := hint.NewSingles()
	newSession := func(gc domain.GameConfig, onTick func(uint64)) (*usecase.Session, error) {
		return usecase.NewSession(gc, usecase.Deps{
			Generator: gen,
			Validator: val,
			Hinter:    hin,
			Recorder:  rec,
			Logger:    log,
			Rand:      rng,
			Tick:      *tick,
			OnTick:    onTick,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting", "difficulty", diff.String(), "seed", *seed, "tick", *tick)
	app := tui.NewApp(tui.Options{
		Keys:       cfg.Keys,
		Difficulty: diff,
		NewSession: newSession,
		Logger:     log,
	})
	runErr := app.Run(ctx)

	if *metricsFile != "" {
		if err := rec.WriteTextfile(*metricsFile); err != nil {
			log.Error("metrics", "err", err)
		}
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Error("tui", "err", runErr)
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	log.Info("bye")
	return 0
}
