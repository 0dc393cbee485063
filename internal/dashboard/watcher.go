package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces editor save bursts into one reload.
const debounceWindow = 150 * time.Millisecond

// Watcher emits an event when any spec file in the store changes. It
// watches the store root and its immediate group subdirectories; new
// groups are picked up as they appear.
type Watcher struct {
	root   string
	logger *slog.Logger
	events chan struct{}
}

// NewWatcher creates a Watcher over the given store root.
func NewWatcher(root string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:   root,
		logger: logger,
		events: make(chan struct{}, 1),
	}
}

// Events is the change notification channel. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start begins watching until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	abs, err := filepath.Abs(w.root)
	if err != nil {
		fsw.Close()
		return fmt.Errorf("resolving store root: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", abs, err)
	}
	entries, err := os.ReadDir(abs)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				if err := fsw.Add(filepath.Join(abs, e.Name())); err != nil {
					w.logger.Warn("dashboard watcher: add group failed",
						"dir", e.Name(), "error", err)
				}
			}
		}
	}

	go func() {
		defer func() {
			_ = fsw.Close()
			close(w.events)
		}()

		var pending bool
		var timer *time.Timer
		var timerC <-chan time.Time
		flush := func() {
			if !pending {
				return
			}
			pending = false
			select {
			case w.events <- struct{}{}:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}

				// New group directories join the watch set.
				if ev.Op&fsnotify.Create != 0 {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						_ = fsw.Add(ev.Name)
					}
				}
				if !relevant(ev.Name) {
					continue
				}

				pending = true
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounceWindow)
				}
			case <-timerC:
				flush()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("dashboard watcher", "error", err)
			}
		}
	}()

	return nil
}

// relevant reports whether a change to the named path should trigger
// a reload. Only spec files and directories matter; editor temp files
// are ignored.
func relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if strings.HasSuffix(base, ".md") {
		return true
	}
	fi, err := os.Stat(name)
	return err == nil && fi.IsDir()
}
