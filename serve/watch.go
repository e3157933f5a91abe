package main

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// ConfigWatcher calls onChange after the config file is written or created.
// Bursts of events are coalesced.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// WatchConfig watches the directory holding path. Editors often replace files
// by rename, so watching the file itself would lose track of it.
func WatchConfig(path string, onChange func()) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	cw := &ConfigWatcher{watcher: w}
	target := filepath.Clean(path)

	cw.wg.Add(1)
	go func() {
		defer cw.wg.Done()
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				slog.Debug("config file changed", "path", ev.Name, "op", ev.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, onChange)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "error", err)
			}
		}
	}()

	return cw, nil
}

// Close stops watching.
func (cw *ConfigWatcher) Close() {
	if cw == nil {
		return
	}
	cw.watcher.Close()
	cw.wg.Wait()
}
