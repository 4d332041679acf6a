package content

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Watch invalidates lib whenever the file at path is written, replaced or
// removed. It blocks until ctx is done. The parent directory is watched so
// editors that save by rename are picked up.
func Watch(ctx context.Context, lib *Library, path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create content watcher")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				lib.Invalidate()
				logger.Info("content document changed",
					zap.String("path", abs), zap.String("op", event.Op.String()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("content watcher error", zap.Error(err))
		}
	}
}
