// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus instrumentation of ingestion, the
// position table and eviction
//
// all methods accept a nil receiver so components can run without
// instrumentation
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
)

const namespace = "aislived"

// Metrics - the set of collectors
type Metrics struct {
	received     prometheus.Counter
	decodeErrors prometheus.Counter
	busErrors    prometheus.Counter
	abandoned    prometheus.Counter
	upserts      *prometheus.CounterVec
	evicted      prometheus.Counter
	sweeps       prometheus.Counter
	loaded       prometheus.Counter
	rows         prometheus.Gauge
	queueDepth   prometheus.Gauge
	version      prometheus.Gauge
}

// New - create the collectors and register them
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Messages received from the bus",
		}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Messages skipped because they could not be decoded",
		}),
		busErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_errors_total",
			Help:      "Transient errors returned by the bus consumer",
		}),
		abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deltas_abandoned_total",
			Help:      "Decoded updates dropped because of shutdown",
		}),
		upserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upserts_total",
			Help:      "Updates applied to the position table by outcome",
		}, []string{"outcome"}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_total",
			Help:      "Rows removed because their age exceeded the TTL",
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Eviction sweeps run",
		}),
		loaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_rows_total",
			Help:      "Rows created from the cache snapshot",
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Rows in the position table",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Decoded updates waiting for the writer",
		}),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_version",
			Help:      "Version of the position table seen by readers",
		}),
	}

	if nil != registerer {
		registerer.MustRegister(
			m.received,
			m.decodeErrors,
			m.busErrors,
			m.abandoned,
			m.upserts,
			m.evicted,
			m.sweeps,
			m.loaded,
			m.rows,
			m.queueDepth,
			m.version,
			version.NewCollector(namespace),
		)
	}
	return m
}

// Received - one message taken from the bus
func (m *Metrics) Received() {
	if nil == m {
		return
	}
	m.received.Inc()
}

// DecodeError - one message skipped
func (m *Metrics) DecodeError() {
	if nil == m {
		return
	}
	m.decodeErrors.Inc()
}

// BusError - one transient consumer error
func (m *Metrics) BusError() {
	if nil == m {
		return
	}
	m.busErrors.Inc()
}

// Abandoned - one decoded update not queued
func (m *Metrics) Abandoned() {
	if nil == m {
		return
	}
	m.abandoned.Inc()
}

// Upsert - count an applied update by its outcome name
func (m *Metrics) Upsert(outcome string) {
	if nil == m {
		return
	}
	m.upserts.WithLabelValues(outcome).Inc()
}

// Swept - one sweep and the rows it removed
func (m *Metrics) Swept(removed int) {
	if nil == m {
		return
	}
	m.sweeps.Inc()
	m.evicted.Add(float64(removed))
}

// Loaded - rows created by the snapshot loader
func (m *Metrics) Loaded(created int) {
	if nil == m {
		return
	}
	m.loaded.Add(float64(created))
}

// Rows - current table size
func (m *Metrics) Rows(n int) {
	if nil == m {
		return
	}
	m.rows.Set(float64(n))
}

// QueueDepth - current writer backlog
func (m *Metrics) QueueDepth(n int) {
	if nil == m {
		return
	}
	m.queueDepth.Set(float64(n))
}

// Version - latest table version, usable as a store observer
func (m *Metrics) Version(v uint64) {
	if nil == m {
		return
	}
	m.version.Set(float64(v))
}
