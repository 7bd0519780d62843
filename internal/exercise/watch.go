package exercise

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/faizmokh/liftlog/internal/files"
)

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// WatchIndex rebuilds index.json once and then again whenever an exercise document
// is created, written, removed, or renamed. onRebuild, if set, receives every result,
// including failures caused by a corrupt document; watching continues after those.
// It returns nil once ctx is cancelled.
func (s *Store) WatchIndex(ctx context.Context, onRebuild func([]IndexEntry, error)) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.manager.EnsureDir(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.manager.BasePath()); err != nil {
		return fmt.Errorf("watch %s: %w", s.manager.BasePath(), err)
	}

	rebuild := func() {
		entries, err := s.RebuildIndex(ctx)
		if err != nil {
			s.logger.Warn("index rebuild failed", zap.Error(err))
		}
		if onRebuild != nil {
			onRebuild(entries, err)
		}
	}
	rebuild()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files.IsExerciseFile(event.Name) || event.Op&watchedOps == 0 {
				continue
			}
			s.logger.Debug("store changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
