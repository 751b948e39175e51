package config

import (
	"os"
	"time"
)

// Watcher polls the files of one profile and reloads the configuration when
// any of them changes. Invalid configurations are reported through onError and
// the previous one stays in effect.
type Watcher struct {
	loader    *Loader
	profile   string
	interval  time.Duration
	onReload  func(Config)
	onError   func(error)
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher for a loader profile.
func NewWatcher(l *Loader, profile string, interval time.Duration, onReload func(Config), onError func(error)) *Watcher {
	return &Watcher{
		loader:    l,
		profile:   profile,
		interval:  interval,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *Watcher) Start() {
	ticker := time.NewTicker(w.interval)
	w.scan() // prime mtimes
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if w.scan() {
					w.reload()
				}
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// scan records mtimes and reports whether any file appeared or changed
// since the previous scan.
func (w *Watcher) scan() bool {
	changed := false
	for _, p := range w.loader.Paths(w.profile) {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		if last, ok := w.lastMTime[p]; !ok || !mt.Equal(last) {
			w.lastMTime[p] = mt
			changed = true
		}
	}
	return changed
}

func (w *Watcher) reload() {
	w.loader.Invalidate()
	cfg, err := w.loader.Load(w.profile)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
