package watch

import (
	"context"
	"testing"
	"time"
)

func TestMatches(t *testing.T) {
	w := New(t.TempDir(), "state.vscdb", time.Second, func(string) {})

	tests := []struct {
		path string
		want bool
	}{
		{"/snaps/ws1/state.vscdb", true},
		{"/snaps/ws1/state.vscdb-wal", true},
		{"/snaps/ws1/state.vscdb-journal", true},
		{"/snaps/ws1/other.db", false},
		{"/snaps/ws1/state.vscdb.backup", false},
	}
	for _, tt := range tests {
		if got := w.matches(tt.path); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDebounceDefault(t *testing.T) {
	w := New(t.TempDir(), "state.vscdb", 0, func(string) {})
	if w.debounce != 2*time.Second {
		t.Errorf("debounce = %v, want 2s", w.debounce)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w := New(t.TempDir(), "state.vscdb", 10*time.Millisecond, func(string) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
