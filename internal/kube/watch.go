package kube

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"kubedash/pkg/logging"
)

// WatchKubeconfig sends a Contexts event whenever the kubeconfig at path is
// written, created or replaced. The directory is watched so that editors
// which rename a temporary file over the original are noticed.
func WatchKubeconfig(ctx context.Context, path string, out chan<- Event) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create kubeconfig watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	logging.Debug("Watch", "Watching kubeconfig %s", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			names, current, err := LoadContexts(path)
			if err != nil {
				logging.Warn("Watch", "Reloading kubeconfig failed: %v", err)
				continue
			}
			logging.Info("Watch", "Kubeconfig changed, %d contexts", len(names))
			if !send(ctx, out, Contexts{Items: names, Current: current}) {
				return ctx.Err()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watch", err, "Kubeconfig watcher error")
		}
	}
}
