// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay - wait after the last event before re-reading
const DefaultSettleDelay = time.Second

// ReloadFunc - receives each successfully re-read configuration
type ReloadFunc func(*Configuration)

// Watcher - re-reads the configuration file when it changes
//
// the directory is watched rather than the file so that editors which
// replace the file are also seen
type Watcher struct {
	log      *logger.L
	fileName string
	delay    time.Duration
	reload   ReloadFunc
	watcher  *fsnotify.Watcher
}

// NewWatcher - start watching, events are handled once Run is started
func NewWatcher(log *logger.L, fileName string, delay time.Duration, reload ReloadFunc) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		watcher.Close()
		return nil, err
	}

	if delay <= 0 {
		delay = DefaultSettleDelay
	}

	return &Watcher{
		log:      log,
		fileName: filePath,
		delay:    delay,
		reload:   reload,
		watcher:  watcher,
	}, nil
}

// Run - handle file events until shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Infof("watching: %q", w.fileName)

	var settle <-chan time.Time
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != filepath.Base(w.fileName) {
				continue loop
			}
			log.Debugf("file event: %v", event)

			if eventFileRemove(event) {
				log.Warnf("file: %q removed, keeping current settings", w.fileName)
				continue loop
			}
			if eventFileChange(event) {
				settle = time.After(w.delay)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case <-settle:
			settle = nil
			w.refresh()
		}
	}

	w.watcher.Close()
	log.Info("stopped")
}

func (w *Watcher) refresh() {
	options, err := Get(w.fileName)
	if nil != err {
		w.log.Errorf("failed to read configuration from: %q  error: %s", w.fileName, err)
		return
	}
	w.log.Info("configuration reloaded")
	if nil != w.reload {
		w.reload(options)
	}
}

func eventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func eventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
