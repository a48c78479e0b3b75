package generator

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the project root and triggers a full regeneration after
// source changes settle. Every trigger is a from-scratch run; there is no
// incremental path.
type Watcher struct {
	rootDir      string
	outputDir    string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	regenerate   func(ctx context.Context)
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a file watcher over rootDir. The regenerate callback
// runs after the debounce window closes; outputDir events are ignored so a
// run does not retrigger itself.
func NewWatcher(rootDir, outputDir string, regenerate func(ctx context.Context)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(rootDir, outputDir)
	}

	w := &Watcher{
		rootDir:      rootDir,
		outputDir:    outputDir,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		regenerate:   regenerate,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addDirectoriesRecursively(event.Name)
				}
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounceTime)
			timerCh = debounceTimer.C
		case <-timerCh:
			timerCh = nil
			log.Println("Source changed, regenerating documentation...")
			w.regenerate(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// relevant filters out events that can never affect the artifact tree:
// anything under the output root, hidden paths, and non-source files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	if outRel, err := filepath.Rel(w.outputDir, event.Name); err == nil && !strings.HasPrefix(outRel, "..") {
		return false
	}
	for _, seg := range strings.Split(relPath, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".docignore" {
			return false
		}
	}

	// Removals and renames of directories matter too; only filter by
	// extension when the path clearly names a file.
	ext := filepath.Ext(relPath)
	if ext != "" && ext != sourceExtension {
		return false
	}
	return true
}

// addDirectoriesRecursively registers path and every directory beneath it,
// skipping hidden directories and the output root.
func (w *Watcher) addDirectoriesRecursively(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != w.rootDir {
			return filepath.SkipDir
		}
		if outRel, err := filepath.Rel(w.outputDir, p); err == nil && !strings.HasPrefix(outRel, "..") {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}
