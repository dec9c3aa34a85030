package config

import (
	"fmt"
	"time"

	"github.com/zuedev/zedit/internal/config/watcher"
)

// ReloadFunc receives freshly loaded settings, or the error that prevented
// loading them. It runs on the watcher goroutine.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the file at path whenever it changes on disk and passes
// the result to fn. Removing the file is ignored; the previous settings
// stay in effect. Notifier errors reach fn with a nil config. Stop the
// returned watcher to end watching.
func Watch(path string, fn ReloadFunc, debounce time.Duration) (*watcher.Watcher, error) {
	w, err := watcher.New(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		fn(Load(path))
	}, watcher.WithDebounce(debounce), watcher.WithErrorHandler(func(err error) {
		fn(nil, fmt.Errorf("watch %s: %w", path, err))
	}))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}
