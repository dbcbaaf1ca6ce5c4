package agent

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the write bursts editors produce when saving.
const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reloads the agent config when its file changes on disk.
type ConfigWatcher struct {
	path    string
	agent   *Agent
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	done   chan struct{}
	closed bool
}

// WatchConfig starts watching path and applies each successful reload to
// the agent via Agent.Reload. Reload failures are logged and the previous
// config stays in effect.
func WatchConfig(path string, a *Agent) (*ConfigWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save
	// and a watch on the old inode would go stale.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	w := &ConfigWatcher{
		path:    path,
		agent:   a,
		watcher: fw,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// run consumes watcher events until Close.
func (w *ConfigWatcher) run() {
	defer close(w.done)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.agent.Logger().Warn("config watch error: %v", err)
		}
	}
}

// scheduleReload debounces reloads across rapid write bursts.
func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.reload)
}

// reload reads and applies the config file.
func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.agent.Logger().Warn("config reload failed: %v", err)
		return
	}
	if err := w.agent.Reload(cfg); err != nil {
		w.agent.Logger().Warn("config reload rejected: %v", err)
	}
}

// Close stops watching. Pending debounced reloads are cancelled.
func (w *ConfigWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
