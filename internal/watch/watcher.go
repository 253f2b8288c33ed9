package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a snapshot directory tree and invokes a callback when a
// state database file changes. Bursts of filesystem events are coalesced
// through a debounce window so one save triggers one callback.
type Watcher struct {
	root     string
	basename string
	debounce time.Duration
	onChange func(path string)
	logger   *log.Logger
}

// New builds a watcher over root. onChange receives the path of the changed
// database file after the debounce window closes.
func New(root, basename string, debounce time.Duration, onChange func(path string)) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		root:     root,
		basename: basename,
		debounce: debounce,
		onChange: onChange,
		logger:   log.New(log.Writer(), "[watch] ", log.Flags()),
	}
}

// Run watches until ctx is cancelled. Directories created under the root
// while running are added to the watch set.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	var pending string

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Printf("watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !w.matches(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-fire
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.logger.Printf("change detected: %s", pending)
			w.onChange(pending)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("watch error: %v", err)
		}
	}
}

// matches reports whether path names a state database file. WAL and journal
// side files count too, since writes often land there first.
func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	return base == w.basename ||
		strings.HasPrefix(base, w.basename+"-") // state.vscdb-wal, -shm, -journal
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			w.logger.Printf("watch %s: %v", path, err)
		}
		return nil
	})
}
