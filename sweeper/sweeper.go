// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sweeper - periodic TTL eviction of the position table
package sweeper

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/positions"
)

// DefaultInterval - time between sweeps
const DefaultInterval = 10 * time.Second

// Sweeper - background eviction process
type Sweeper struct {
	movingTTL     int64 // accessed atomically
	stationaryTTL int64

	log      *logger.L
	store    *positions.Store
	metrics  *metrics.Metrics
	interval time.Duration
	now      func() time.Time
}

// New - create a sweeper, zero interval gives the default
func New(log *logger.L, store *positions.Store, m *metrics.Metrics, interval time.Duration, ttl positions.TTL) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Sweeper{
		log:      log,
		store:    store,
		metrics:  m,
		interval: interval,
		now:      time.Now,
	}
	s.SetTTL(ttl)
	return s
}

// SetTTL - change the TTLs for the following sweeps
func (s *Sweeper) SetTTL(ttl positions.TTL) {
	atomic.StoreInt64(&s.movingTTL, ttl.Moving)
	atomic.StoreInt64(&s.stationaryTTL, ttl.Stationary)
}

// TTL - the TTLs in use
func (s *Sweeper) TTL() positions.TTL {
	return positions.TTL{
		Moving:     atomic.LoadInt64(&s.movingTTL),
		Stationary: atomic.LoadInt64(&s.stationaryTTL),
	}
}

// Run - sweep on every tick until shutdown
func (s *Sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Infof("starting… interval: %s", s.interval)

	ticker := time.NewTicker(s.interval)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			s.Sweep()
		}
	}
	ticker.Stop()
	log.Info("stopped")
}

// Sweep - one eviction pass, returns rows removed
func (s *Sweeper) Sweep() int {
	nowMillis := s.now().UnixNano() / int64(time.Millisecond)
	ttl := s.TTL()

	removed := s.store.EvictExpired(nowMillis, ttl)
	rows := s.store.Len()

	s.metrics.Swept(removed)
	s.metrics.Rows(rows)

	if removed > 0 {
		s.log.Infof("evicted: %d  remaining: %d", removed, rows)
	} else {
		s.log.Debugf("nothing to evict  rows: %d", rows)
	}
	return removed
}
