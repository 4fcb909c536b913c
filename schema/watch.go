// ABOUTME: Reloads a JSON5 schema file into a fresh registry whenever it changes on disk
// ABOUTME: Dev-workflow convenience only; the write-once-at-startup registry itself never mutates in place
package schema

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a schema file from disk on every write and hands the
// caller a brand new Registry over a channel. It never mutates a Registry
// that is already in use — callers swap their reference on each event,
// which keeps the concurrent-readers-without-locking guarantee intact for
// any in-flight encode/decode call holding the old registry.
type Watcher struct {
	w        *fsnotify.Watcher
	path     string
	Reloaded chan *Registry
	Errors   chan error
}

// WatchFile starts watching path for writes, loading it once immediately
// and again after every subsequent write. Call Close to stop.
func WatchFile(path string) (*Watcher, error) {
	reg := NewRegistry()
	if _, err := LoadFile(reg, path); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return nil, err
	}

	watcher := &Watcher{
		w:        fw,
		path:     path,
		Reloaded: make(chan *Registry, 1),
		Errors:   make(chan error, 1),
	}
	watcher.Reloaded <- reg
	go watcher.loop()
	return watcher, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reg := NewRegistry()
			if _, err := LoadFile(reg, w.path); err != nil {
				w.Errors <- err
				continue
			}
			w.Reloaded <- reg
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		}
	}
}

// Close stops watching and releases the underlying OS resources.
func (w *Watcher) Close() error {
	return w.w.Close()
}
