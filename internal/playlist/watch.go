package playlist

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 250 * time.Millisecond

// Watch reloads the playlist file whenever it changes on disk and passes the
// new tracks to onChange. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so editors that
// replace the file on save are handled. Reload errors are logged and the
// previous playlist stays in effect.
func Watch(ctx context.Context, filename string, opts LoadOptions, onChange func([]*Track), log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("playlist watcher error", zap.Error(err))

		case <-timer.C:
			tracks, err := Load(abs, opts)
			if err != nil {
				log.Warn("reload playlist failed", zap.String("path", abs), zap.Error(err))
				continue
			}
			log.Info("playlist reloaded", zap.String("path", abs), zap.Int("tracks", len(tracks)))
			onChange(tracks)
		}
	}
}
