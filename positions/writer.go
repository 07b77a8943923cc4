// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package positions

import (
	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/messagebus"
	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/vessel"
)

// Writer - the only consumer of the update queue
type Writer struct {
	log     *logger.L
	store   *Store
	queue   *messagebus.Queue
	metrics *metrics.Metrics

	indexCheck bool
}

// NewWriter - writer process for a store and queue
func NewWriter(log *logger.L, store *Store, queue *messagebus.Queue, m *metrics.Metrics) *Writer {
	return &Writer{
		log:     log,
		store:   store,
		queue:   queue,
		metrics: m,
	}
}

// SetIndexCheck - verify the index after every applied update
//
// must be called before the writer is started
func (w *Writer) SetIndexCheck(enabled bool) {
	w.indexCheck = enabled
}

// Run - apply queued items in arrival order until shutdown
func (w *Writer) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-w.queue.Chan():
			w.process(item)
		}
	}
	log.Infof("stopped: rows: %d  pending: %d", w.store.Len(), w.queue.Len())
}

func (w *Writer) process(item messagebus.Message) {
	log := w.log

	switch v := item.Item.(type) {
	case vessel.Delta:
		outcome, err := w.store.Upsert(v)
		w.metrics.Upsert(outcome.String())
		switch {
		case fault.ErrTableFull == err:
			log.Warnf("from: %s  mmsi: %s  error: %s", item.From, v.MMSI, err)
		case nil != err:
			log.Debugf("from: %s  mmsi: %s  error: %s", item.From, v.MMSI, err)
		default:
			log.Tracef("from: %s  mmsi: %s  outcome: %s", item.From, v.MMSI, outcome)
		}

		if w.indexCheck && Dropped != outcome {
			if err := w.store.CheckIndex(); nil != err {
				fault.Panicf("writer: from: %s  mmsi: %s  outcome: %s  error: %s", item.From, v.MMSI, outcome, err)
			}
			log.Debugf("index verified: rows: %d", w.store.Len())
		}

	default:
		log.Errorf("from: %s  unexpected item: %T", item.From, item.Item)
	}

	w.metrics.Rows(w.store.Len())
	w.metrics.QueueDepth(w.queue.Len())
}
