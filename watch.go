package folio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// rebuildDelay coalesces the bursts of events editors emit on save.
const rebuildDelay = 300 * time.Millisecond

// Watch rebuilds the site whenever something below the content directory
// changes, until ctx is done. When configPath is set that file is watched
// too, and a change to it reloads the configuration through reload before
// the rebuild. Rebuilds run one at a time on the calling goroutine; a failed
// reload or rebuild is logged and the watch continues.
func (b *Builder) Watch(ctx context.Context, configPath string, reload func() (SiteConfig, error)) error {
	w, err := b.newSiteWatcher(configPath, reload)
	if err != nil {
		return err
	}
	defer w.Close()
	b.Logger.Infof("watching %s for changes", w.contentDir)
	return w.run(ctx)
}

// Reconfigure switches b to cfg and recreates the loader and card generator
// from it.
func (b *Builder) Reconfigure(cfg SiteConfig) {
	cfg.setDefaults()
	b.Config = cfg
	b.Loader = NewLoader(os.DirFS(cfg.ContentDir), ".")
	b.Images = NewCardGenerator(cfg)
}

type siteWatcher struct {
	b          *Builder
	fsw        *fsnotify.Watcher
	contentDir string
	outputDir  string
	configPath string
	reload     func() (SiteConfig, error)
}

func (b *Builder) newSiteWatcher(configPath string, reload func() (SiteConfig, error)) (*siteWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &siteWatcher{b: b, fsw: fsw, reload: reload}
	if err := w.watchContent(); err != nil {
		fsw.Close()
		return nil, err
	}
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("config path: %w", err)
		}
		// Editors replace the file on save, which drops a watch on the file
		// itself. The directory is watched and events matched by name.
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", configPath, err)
		}
		w.configPath = abs
	}
	return w, nil
}

func (w *siteWatcher) Close() error { return w.fsw.Close() }

// watchContent points the watcher at the builder's current content and
// output directories, dropping the watches of a previous content directory.
func (w *siteWatcher) watchContent() error {
	content, err := filepath.Abs(w.b.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("content dir: %w", err)
	}
	output, err := filepath.Abs(w.b.Config.OutputDir)
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	w.outputDir = output
	if content == w.contentDir {
		return nil
	}
	if err := w.addDirsRecursive(content); err != nil {
		return err
	}
	if old := w.contentDir; old != "" {
		for _, p := range w.fsw.WatchList() {
			if within(old, p) && !within(content, p) && (w.configPath == "" || p != filepath.Dir(w.configPath)) {
				_ = w.fsw.Remove(p)
			}
		}
	}
	w.contentDir = content
	return nil
}

func (w *siteWatcher) run(ctx context.Context) error {
	timer := time.NewTimer(rebuildDelay)
	timer.Stop()
	reloadPending := false
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			switch {
			case w.isConfig(ev.Name):
				if ev.Op == fsnotify.Chmod {
					continue
				}
				reloadPending = true
			case w.isContent(ev.Name):
				if ignoreEvent(ev) {
					continue
				}
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						_ = w.addDirsRecursive(ev.Name)
					}
				}
			default:
				continue
			}
			w.b.Logger.Debugf("change: %s", ev)
			timer.Reset(rebuildDelay)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.b.Logger.Warnf("watcher error: %v", err)
		case <-timer.C:
			if reloadPending {
				reloadPending = false
				if err := w.reconfigure(); err != nil {
					w.b.Logger.Errorf("reload %s: %v", w.configPath, err)
					continue
				}
			}
			w.b.Logger.Info("change detected; rebuilding site")
			if _, err := w.b.Build(ctx); err != nil {
				w.b.Logger.Errorf("rebuild failed: %v", err)
			}
		}
	}
}

func (w *siteWatcher) reconfigure() error {
	if w.reload == nil {
		return nil
	}
	cfg, err := w.reload()
	if err != nil {
		return err
	}
	w.b.Reconfigure(cfg)
	if err := w.watchContent(); err != nil {
		return err
	}
	w.b.Logger.Infof("reloaded %s", w.configPath)
	return nil
}

func (w *siteWatcher) isConfig(name string) bool {
	return w.configPath != "" && filepath.Clean(name) == w.configPath
}

func (w *siteWatcher) isContent(name string) bool {
	return within(w.contentDir, name) && !within(w.outputDir, name)
}

func (w *siteWatcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if within(w.outputDir, p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			w.b.Logger.Warnf("watch add %s: %v", p, err)
		}
		return nil
	})
}

// within reports whether p is root or below it.
func within(root, p string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ignoreEvent filters permission changes plus hidden and editor temp files.
func ignoreEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(ev.Name)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}
