package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDebouncesSourceChanges(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w, err := New(dir, ".cy", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()

	a := filepath.Join(dir, "a.cy")
	b := filepath.Join(dir, "b.cy")
	for _, path := range []string{a, b, a} {
		if err := os.WriteFile(path, []byte("shared class A() {}\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case changed := <-batches:
		if len(changed) != 2 || changed[0] != a || changed[1] != b {
			t.Fatalf("unexpected batch %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no re-run after writes")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, ".cy", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 8)
	go func() {
		_ = w.Run(ctx, func(_ context.Context, changed []string) { batches <- changed })
	}()

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(sub, "box.cy")
	deadline := time.After(5 * time.Second)
	for {
		// директория регистрируется асинхронно, поэтому пишем до первого события
		if err := os.WriteFile(target, []byte("class Box() {}\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case changed := <-batches:
			for _, path := range changed {
				if path == target {
					return
				}
			}
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatalf("changes in a new directory were not seen")
		}
	}
}

func TestNewMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), ".cy", 0); err == nil {
		t.Fatalf("expected error for a missing root")
	}
}
