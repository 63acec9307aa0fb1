package content

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called after the watcher swaps in a new snapshot.
type ReloadCallback func()

// Watch starts an fsnotify watcher on the content directory and reloads
// the store when files change, until ctx is cancelled.
//
// Reloads are debounced: editors commonly fire several events per save.
// A reload that fails validation keeps the last good snapshot, and a
// reload whose fingerprint matches the current snapshot is discarded
// without notifying.
func Watch(ctx context.Context, store *Store, dir string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, dir); err != nil {
		return err
	}

	logger.Info("content watcher: started", slog.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("content watcher: stopped")
			return nil

		case <-reloadCh:
			snap, loadErr := Load(dir)
			if loadErr != nil {
				logger.Warn("content watcher: reload failed, keeping previous snapshot",
					slog.String("error", loadErr.Error()))
				continue
			}
			if snap.Fingerprint() == store.Fingerprint() {
				logger.Debug("content watcher: no content change")
				continue
			}
			store.Replace(snap)
			logger.Info("content watcher: content reloaded")
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// New subdirectories must be added to the watch list.
			if ev.Op&fsnotify.Create != 0 {
				if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
					logger.Debug("content watcher: add path skipped",
						slog.String("path", ev.Name),
						slog.String("error", addErr.Error()))
				}
			}
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("content watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
// Non-directory paths are ignored.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
