// Package config resolves key bindings and game settings from a .env file
// and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"svw.info/minesweeper/internal/domain"
)

var (
	ErrKeyConflict  = errors.New("key bound to more than one action")
	ErrInvalidValue = errors.New("invalid config value")
)

// Keymap holds the single-character bindings. Arrow keys always work in
// addition to Up/Down/Left/Right.
type Keymap struct {
	Up    string
	Down  string
	Left  string
	Right string
	Mine  string
	Flag  string
	Quit  string
	Hint  string
}

// Config is everything the binary needs before the first frame.
type Config struct {
	Keys        Keymap
	Difficulty  domain.Difficulty
	Seed        int64 // 0 seeds from the clock
	Tick        time.Duration
	LogLevel    string
	LogFile     string
	LogJSON     bool
	MetricsFile string
}

// DefaultKeymap mirrors the vi-style layout of the classic terminal game.
func DefaultKeymap() Keymap {
	return Keymap{Up: "k", Down: "j", Left: "h", Right: "l", Mine: "d", Flag: "f", Quit: "q", Hint: "?"}
}

func Default() Config {
	return Config{
		Keys:       DefaultKeymap(),
		Difficulty: domain.Normal,
		Tick:       time.Second,
		LogLevel:   "info",
	}
}

// Load reads files (".env" when none are given) and layers the process
// environment on top. Missing files are not an error; the process
// environment is never modified.
func Load(files ...string) (Config, error) {
	fileEnv, err := godotenv.Read(files...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		fileEnv = map[string]string{}
	}
	return FromEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// FromEnv builds a Config from lookup, falling back to Default for unset keys.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("MINES_KEY_UP", &cfg.Keys.Up)
	str("MINES_KEY_DOWN", &cfg.Keys.Down)
	str("MINES_KEY_LEFT", &cfg.Keys.Left)
	str("MINES_KEY_RIGHT", &cfg.Keys.Right)
	str("MINES_KEY_MINE", &cfg.Keys.Mine)
	str("MINES_KEY_FLAG", &cfg.Keys.Flag)
	str("MINES_KEY_QUIT", &cfg.Keys.Quit)
	str("MINES_KEY_HINT", &cfg.Keys.Hint)
	str("MINES_LOG_LEVEL", &cfg.LogLevel)
	str("MINES_LOG_FILE", &cfg.LogFile)
	str("MINES_METRICS_FILE", &cfg.MetricsFile)

	if v, ok := lookup("MINES_DIFFICULTY"); ok && v != "" {
		d, known := domain.ParseDifficulty(v)
		if !known {
			return Config{}, fmt.Errorf("%w: MINES_DIFFICULTY=%q", ErrInvalidValue, v)
		}
		cfg.Difficulty = d
	}
	if v, ok := lookup("MINES_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: MINES_SEED=%q", ErrInvalidValue, v)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup("MINES_TICK"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: MINES_TICK=%q", ErrInvalidValue, v)
		}
		cfg.Tick = d
	}
	if v, ok := lookup("MINES_LOG_JSON"); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: MINES_LOG_JSON=%q", ErrInvalidValue, v)
		}
		cfg.LogJSON = b
	}

	if err := cfg.Keys.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (k Keymap) bindings() []struct{ action, key string } {
	return []struct{ action, key string }{
		{"up", k.Up}, {"down", k.Down}, {"left", k.Left}, {"right", k.Right},
		{"mine", k.Mine}, {"flag", k.Flag}, {"quit", k.Quit}, {"hint", k.Hint},
	}
}

// Validate requires one character per action and no shared keys.
func (k Keymap) Validate() error {
	seen := make(map[string]string, 8)
	for _, b := range k.bindings() {
		if utf8.RuneCountInString(b.key) != 1 {
			return fmt.Errorf("%w: %s key %q must be a single character", ErrInvalidValue, b.action, b.key)
		}
		if prev, dup := seen[b.key]; dup {
			return fmt.Errorf("%w: %q used for %s and %s", ErrKeyConflict, b.key, prev, b.action)
		}
		seen[b.key] = b.action
	}
	return nil
}
