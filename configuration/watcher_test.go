// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/background"
	"github.com/datastories-org/aisstream/configuration"
)

func TestWatcherReload(t *testing.T) {
	directory := t.TempDir()
	fileName := writeFile(t, directory, "watch.conf", `return { data_directory = "." }`)

	reloaded := make(chan *configuration.Configuration, 5)
	w, err := configuration.NewWatcher(logger.New(category), fileName, 10*time.Millisecond, func(c *configuration.Configuration) {
		reloaded <- c
	})
	assert.Nil(t, err, "new watcher")

	processes := background.Start(background.Processes{w}, nil)
	defer processes.Stop()

	// unrelated files are ignored
	writeFile(t, directory, "other.conf", `return {}`)
	writeFile(t, directory, "watch.conf", `return { data_directory = ".", store = { moving_ttl = "90s" } }`)

	select {
	case c := <-reloaded:
		assert.Equal(t, 90*time.Second, c.Durations().MovingTTL, "moving ttl")
	case <-time.After(5 * time.Second):
		t.Fatal("configuration not reloaded")
	}
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := configuration.NewWatcher(logger.New(category), filepath.Join(t.TempDir(), "absent.conf"), 0, nil)
	assert.NotNil(t, err, "missing file")
}
