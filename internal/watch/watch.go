// Package watch rebuilds the site whenever one of its inputs changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDuration is how long the watcher waits after the last change
// before rebuilding, so an editor's burst of writes causes one build.
const DebounceDuration = 300 * time.Millisecond

var dayDirRe = regexp.MustCompile(`^day \d+$`)

// Targets lists the inputs of a build.
type Targets struct {
	SourceRoot string   // its "day NN" directories are watched recursively
	Files      []string // watched through their parent directory
	Dirs       []string // watched recursively
}

// BuildFunc performs a full build.
type BuildFunc func(ctx context.Context) error

// Run builds once, then rebuilds after every change to the targets until
// ctx is cancelled. Failed rebuilds are logged and watching continues.
func Run(ctx context.Context, targets Targets, build BuildFunc, logger *slog.Logger) error {
	if err := build(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	w := &watchSet{watcher: watcher, watched: make(map[string]bool), logger: logger}
	for _, file := range targets.Files {
		w.add(filepath.Dir(file))
	}
	for _, dir := range targets.Dirs {
		w.addTree(dir)
	}
	w.add(targets.SourceRoot)
	entries, err := os.ReadDir(targets.SourceRoot)
	if err != nil {
		return fmt.Errorf("could not read source root %s: %w", targets.SourceRoot, err)
	}
	for _, e := range entries {
		if e.IsDir() && dayDirRe.MatchString(e.Name()) {
			w.addTree(filepath.Join(targets.SourceRoot, e.Name()))
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
		last  string
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addTree(event.Name)
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			last = event.Name
			if timer == nil {
				timer = time.NewTimer(DebounceDuration)
			} else {
				timer.Reset(DebounceDuration)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			logger.Info("change detected, rebuilding", "path", last)
			if err := build(ctx); err != nil {
				logger.Error("rebuild failed", "err", err)
				continue
			}
			logger.Info("site rebuilt")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

// relevant reports whether a changed path is an input of the build.
// Paths are compared in absolute form.
func (t Targets) relevant(name string) bool {
	name = absPath(name)
	for _, f := range t.Files {
		if name == absPath(f) {
			return true
		}
	}
	for _, d := range t.Dirs {
		if within(name, absPath(d)) {
			return true
		}
	}
	rel, err := filepath.Rel(absPath(t.SourceRoot), name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return dayDirRe.MatchString(first)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func within(name, dir string) bool {
	rel, err := filepath.Rel(dir, name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// watchSet tracks watched directories to avoid duplicates.
type watchSet struct {
	watcher *fsnotify.Watcher
	watched map[string]bool
	logger  *slog.Logger
}

func (w *watchSet) add(dir string) {
	dir = absPath(dir)
	if w.watched[dir] {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("could not watch directory", "dir", dir, "err", err)
		return
	}
	w.logger.Debug("watching directory", "dir", dir)
	w.watched[dir] = true
}

func (w *watchSet) addTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			w.add(path)
		}
		return nil
	})
}
