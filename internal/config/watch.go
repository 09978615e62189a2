// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces editor write bursts into one reload.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands
// the fresh value to a callback.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	onLoad  func(*Config)
	done    chan struct{}
}

// Watch starts watching path for changes. onLoad is called with each
// successfully reloaded config; parse failures keep the previous value
// and are logged, never fatal.
func Watch(path string, onLoad func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fsw,
		onLoad:  onLoad,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			cfg, err := LoadFrom(w.path)
			if err != nil {
				log.Printf("CONFIG: reload failed, keeping previous: %v", err)
				continue
			}
			log.Printf("CONFIG: reloaded %s", w.path)
			w.onLoad(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG: watch error: %v", err)
		}
	}
}
