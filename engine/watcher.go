package engine

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads shaders when their files change. File events are
// collected in the background, the reloads run in Poll, which has to be
// called from the GL thread.
type Watcher struct {
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	reloads map[string][]func() error
	dirty   map[string]bool

	done chan struct{}
}

func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		reloads: map[string][]func() error{},
		dirty:   map[string]bool{},
		done:    make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Add registers reload for a file. The parent directory is watched since
// editors often replace files instead of writing them in place.
func (w *Watcher) Add(path string, reload func() error) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	w.reloads[path] = append(w.reloads[path], reload)
	return nil
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			path, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			if _, found := w.reloads[path]; found {
				w.dirty[path] = true
			}
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Println("watcher:", err)
		}
	}
}

// Poll runs the reload functions of all files changed since the last call
// and returns how many ran. Failed reloads are logged.
func (w *Watcher) Poll() int {
	w.mu.Lock()
	var pending []func() error
	for path := range w.dirty {
		pending = append(pending, w.reloads[path]...)
		delete(w.dirty, path)
	}
	w.mu.Unlock()

	for _, reload := range pending {
		if err := reload(); err != nil {
			log.Println("reload:", err)
		}
	}

	return len(pending)
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
