package fixture

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the path of every file matching pattern that is
// written, created, renamed or removed, until ctx is done. Every directory
// under the pattern's base is watched, so files added after startup and
// editors that replace files on save are both seen.
func Watch(ctx context.Context, logger *slog.Logger, pattern string, onChange func(path string)) error {
	pattern = filepath.Clean(pattern)
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, filepath.FromSlash(base)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := addTree(w, evt.Name); err != nil {
						logger.Warn("fixture watcher", "error", err)
					}
					continue
				}
			}
			if evt.Op == fsnotify.Chmod {
				continue
			}
			if match, _ := doublestar.PathMatch(pattern, filepath.Clean(evt.Name)); !match {
				continue
			}
			logger.Debug("fixture changed", "path", evt.Name, "op", evt.Op.String())
			onChange(evt.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fixture watcher", "error", err)
		}
	}
}

// addTree watches root and every directory below it.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
