// Package watch re-runs a check whenever source files under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"refcheck/internal/trace"
)

// DefaultDebounce is the quiet period after the last change before a re-run.
const DefaultDebounce = 150 * time.Millisecond

// RunFunc is called with the sorted set of changed source paths.
type RunFunc func(ctx context.Context, changed []string)

// Watcher follows a directory tree. fsnotify is not recursive, so every
// non-hidden directory is registered separately and new ones are picked up on create.
type Watcher struct {
	fw       *fsnotify.Watcher
	root     string
	ext      string
	debounce time.Duration
	// OnError receives watcher errors; nil drops them.
	OnError func(error)
}

// New starts watching root for files with extension ext.
func New(root, ext string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{fw: fw, root: root, ext: ext, debounce: debounce}
	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying OS watches.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Ext(ev.Name) == w.ext
}

// Run blocks until ctx is cancelled, calling fn once per burst of changes.
// fn runs on the watcher goroutine, so bursts never overlap.
func (w *Watcher) Run(ctx context.Context, fn RunFunc) error {
	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.report(err)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			sort.Strings(changed)
			clear(pending)
			trace.Point(tracer, trace.ScopeDriver, "watch_rerun", trace.CurrentSpan(ctx).SpanID, "changed="+strconv.Itoa(len(changed)))
			fn(ctx, changed)
		}
	}
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
