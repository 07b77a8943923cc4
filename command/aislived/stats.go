// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/messagebus"
	"github.com/datastories-org/aisstream/positions"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

type stats struct {
	log   *logger.L
	store *positions.Store
	queue *messagebus.Queue
}

func newStats(store *positions.Store, queue *messagebus.Queue) *stats {
	return &stats{
		log:   logger.New("memory"),
		store: store,
		queue: queue,
	}
}

func (s *stats) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		s.report()

		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}
	}
}

func (s *stats) report() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	text, err := json.Marshal(m)
	if nil != err {
		s.log.Errorf("marshal error: %s", err)
	} else {
		s.log.Debugf("stats: %s", text)
	}
	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	o := m.Sys / mega
	s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)
	s.log.Infof("rows: %d  version: %d  queued: %d/%d", s.store.Len(), s.store.Version(), s.queue.Len(), s.queue.Cap())
}
