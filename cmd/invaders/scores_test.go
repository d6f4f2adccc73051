package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func openScores(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestClearScoresCommand(t *testing.T) {
	store := openScores(t)
	for _, s := range []struct {
		server string
		score  int
	}{
		{"a:1", 100},
		{"a:1", 200},
		{"b:2", 300},
	} {
		if _, err := store.SaveScore(s.server, 1, s.score, 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var out bytes.Buffer
	if err := clearScores(store, "a:1", &out); err != nil {
		t.Fatalf("clearScores() failed: %v", err)
	}
	if got := out.String(); got != "Cleared 2 score(s) for a:1\n" {
		t.Errorf("clearScores() wrote %q", got)
	}

	if left, _ := store.TopScores("a:1", 10); len(left) != 0 {
		t.Errorf("TopScores(a:1) = %d entries, expected 0", len(left))
	}
	if kept, _ := store.TopScores("b:2", 10); len(kept) != 1 {
		t.Errorf("TopScores(b:2) = %d entries, expected 1", len(kept))
	}
}

func TestPrintScores(t *testing.T) {
	tests := []struct {
		name   string
		server string
		saved  []int
		want   []string
	}{
		{"empty", "", nil, []string{"High Scores - all servers", "No scores recorded yet."}},
		{"one server", "a:1", []int{50, 70}, []string{"High Scores - a:1", "Rank", "Best: 70"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openScores(t)
			for _, score := range tt.saved {
				if _, err := store.SaveScore(tt.server, 1, score, 0); err != nil {
					t.Fatalf("SaveScore() failed: %v", err)
				}
			}

			var out bytes.Buffer
			if err := printScores(store, tt.server, &out); err != nil {
				t.Fatalf("printScores() failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("printScores() output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}
