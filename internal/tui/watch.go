package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/jjk-go/internal/debounce"
)

const autoReloadDebounceDelay = 350 * time.Millisecond

// watcher observes repository metadata directories and invokes the
// callback, debounced, whenever the repo changes underneath the viewer.
type watcher struct {
	fs       *fsnotify.Watcher
	debounce *debounce.Debouncer
}

func startWatcher(root string, onChange func()) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	paths := watchPaths(root)
	if len(paths) == 0 {
		err := errors.Join(errors.New("no watchable repository paths"), fs.Close())
		return nil, err
	}
	for _, path := range paths {
		slog.Debug("adding path to FS watcher", slog.String("path", path))
		if err := fs.Add(path); err != nil {
			err := errors.Join(err, fs.Close())
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}
	w := &watcher{
		fs:       fs,
		debounce: debounce.New(autoReloadDebounceDelay, onChange),
	}
	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if shouldIgnoreWatchPath(ev.Name) {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			w.debounce.Trigger()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *watcher) Close() {
	w.debounce.Stop()
	if err := w.fs.Close(); err != nil {
		slog.Error("watcher close", slog.Any("error", err))
	}
}

// watchPaths picks the metadata directories whose mutation means the
// visible history may be stale. Watching the whole worktree would be
// too noisy; op heads and git refs cover the interesting transitions.
func watchPaths(root string) []string {
	if root == "" {
		return nil
	}
	var paths []string
	appendDir := func(p string) {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			paths = append(paths, p)
		}
	}
	appendDir(filepath.Join(root, ".jj", "repo", "op_heads", "heads"))
	appendDir(filepath.Join(root, ".git"))
	appendDir(filepath.Join(root, ".git", "refs", "heads"))
	if len(paths) == 0 {
		appendDir(root)
	}
	return paths
}

func shouldIgnoreWatchPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
