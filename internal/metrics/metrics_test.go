package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"svw.info/minesweeper/internal/domain"
	"svw.info/minesweeper/internal/ports"
)

var _ ports.Recorder = (*Recorder)(nil)

func TestRecorderCounters(t *testing.T) {
	r := New()
	r.GameStarted(domain.ConfigFor(domain.Simple))
	r.GameStarted(domain.ConfigFor(domain.Simple))
	r.Revealed(12)
	r.Revealed(0)
	r.Flagged(true)
	r.Flagged(false)
	r.Flagged(false)
	r.GameEnded(domain.Won, 42*time.Second)
	r.GameEnded(domain.Quit, time.Second)

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"started 9x9", testutil.ToFloat64(r.started.WithLabelValues("9x9/10")), 2},
		{"reveals", testutil.ToFloat64(r.reveals), 2},
		{"opened", testutil.ToFloat64(r.opened), 12},
		{"flags applied", testutil.ToFloat64(r.flags.WithLabelValues("applied")), 1},
		{"flags refused", testutil.ToFloat64(r.flags.WithLabelValues("refused")), 2},
		{"won", testutil.ToFloat64(r.ended.WithLabelValues("won")), 1},
		{"quit", testutil.ToFloat64(r.ended.WithLabelValues("quit")), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if n := testutil.CollectAndCount(r.duration); n != 1 {
		t.Fatalf("duration collected %d metrics, want 1", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.GameEnded(domain.Lost, 3*time.Second)
	path := filepath.Join(t.TempDir(), "minesweeper.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`minesweeper_games_ended_total{state="lost"} 1`,
		"minesweeper_game_duration_seconds_count 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestRegistryGather(t *testing.T) {
	r := New()
	r.GameStarted(domain.ConfigFor(domain.Hard))
	r.Flagged(true)

	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	got := map[string]bool{}
	for _, f := range families {
		got[f.GetName()] = true
	}
	for _, want := range []string{
		"minesweeper_games_started_total",
		"minesweeper_flag_toggles_total",
		"minesweeper_reveals_total",
	} {
		if !got[want] {
			t.Fatalf("registry missing %s, gathered %v", want, got)
		}
	}
}
