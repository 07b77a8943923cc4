// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingestor

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/decoder"
	"github.com/datastories-org/aisstream/messagebus"
	"github.com/datastories-org/aisstream/metrics"
)

// defaults
const (
	DefaultPollTimeout = time.Second
	DefaultBackoff     = 100 * time.Millisecond

	checkTimeout = 10 * time.Second
	sender       = "ingestor"
)

// Options - stream settings
type Options struct {
	Topics      []string
	PollTimeout time.Duration
	Backoff     time.Duration
}

// Ingestor - background process feeding the writer queue
type Ingestor struct {
	log      *logger.L
	consumer Consumer
	codes    decoder.Describer
	queue    *messagebus.Queue
	metrics  *metrics.Metrics
	options  Options
}

// New - create the process, the consumer is owned and closed by it
func New(log *logger.L, consumer Consumer, codes decoder.Describer, queue *messagebus.Queue, m *metrics.Metrics, options Options) *Ingestor {
	if options.PollTimeout <= 0 {
		options.PollTimeout = DefaultPollTimeout
	}
	if options.Backoff <= 0 {
		options.Backoff = DefaultBackoff
	}
	return &Ingestor{
		log:      log,
		consumer: consumer,
		codes:    codes,
		queue:    queue,
		metrics:  m,
		options:  options,
	}
}

// Run - consume until shutdown
//
// a failed startup check leaves the process idle until shutdown
func (ing *Ingestor) Run(args interface{}, shutdown <-chan struct{}) {
	log := ing.log

	defer func() {
		if err := ing.consumer.Close(); nil != err {
			log.Warnf("close consumer error: %s", err)
		}
		log.Info("stopped")
	}()

	log.Infof("starting… topics: %q", ing.options.Topics)

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	err := ing.consumer.CheckTopics(ctx, ing.options.Topics)
	cancel()
	if nil != err {
		log.Errorf("topics: %q  error: %s", ing.options.Topics, err)
		return
	}

	err = ing.consumer.Subscribe(ing.options.Topics)
	if nil != err {
		log.Errorf("subscribe error: %s", err)
		return
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		data, err := ing.consumer.Poll(ing.options.PollTimeout)
		if nil != err {
			log.Warnf("poll error: %s", err)
			ing.metrics.BusError()
			if !ing.pause(shutdown) {
				break loop
			}
			continue loop
		}
		if nil == data {
			if !ing.pause(shutdown) {
				break loop
			}
			continue loop
		}

		ing.metrics.Received()

		delta, err := decoder.Decode(data, ing.codes)
		if nil != err {
			log.Debugf("decode error: %s  data: %q", err, data)
			ing.metrics.DecodeError()
			continue loop
		}

		if !ing.queue.SendOrAbandon(sender, delta, shutdown) {
			ing.metrics.Abandoned()
			break loop
		}
		ing.metrics.QueueDepth(ing.queue.Len())
	}
}

// wait for the backoff period, false if shutdown came first
func (ing *Ingestor) pause(shutdown <-chan struct{}) bool {
	select {
	case <-shutdown:
		return false
	case <-time.After(ing.options.Backoff):
		return true
	}
}
