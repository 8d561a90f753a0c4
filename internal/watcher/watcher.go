// Package watcher observes the data directory for edits to the record
// collections. The collections are plain JSON files a single admin may
// edit by hand; a change notification lets an open admin UI refresh.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// NotifyFunc receives the base name of the changed collection file.
type NotifyFunc func(name string)

// Watch observes dataDir until ctx is cancelled, calling notify for each
// settled change to a .json file. Events also fire for the process's own
// saves; consumers treat the notification as a cheap refresh hint.
func Watch(ctx context.Context, dataDir string, logger *slog.Logger, notify NotifyFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}
	logger.Info("watcher: started", slog.String("dir", dataDir))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			for name := range pending {
				logger.Debug("watcher: collection changed", slog.String("file", name))
				if notify != nil {
					notify(name)
				}
				delete(pending, name)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending[name] = struct{}{}
			schedule()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
