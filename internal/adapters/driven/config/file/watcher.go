package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// Watch reloads the configuration whenever another process changes the
// file and signals on the returned channel. Writes made through this store
// do not signal. The channel is closed when ctx is done.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(s.filePath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(s.filePath)

	go func() {
		defer close(changes)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher: %v", err)
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				changed, err := s.reload()
				if err != nil {
					logger.Warn("Reload config: %v", err)
					continue
				}
				if !changed {
					continue
				}
				logger.Debug("Config %s changed", target)
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()

	return changes, nil
}
