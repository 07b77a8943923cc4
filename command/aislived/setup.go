// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/datastories-org/aisstream/configuration"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/ingestor"
	"github.com/datastories-org/aisstream/messagebus"
	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/mode"
	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/rpc"
	"github.com/datastories-org/aisstream/snapshot"
	"github.com/datastories-org/aisstream/typecode"
)

const snapshotTimeout = 60 * time.Second

// convert the configured durations to table ages in milliseconds
func ttlFrom(durations configuration.Durations) positions.TTL {
	return positions.TTL{
		Moving:     int64(durations.MovingTTL / time.Millisecond),
		Stationary: int64(durations.StationaryTTL / time.Millisecond),
	}
}

// open the configured cache, nil source when the cache is disabled
func openSource(cache configuration.CacheType) (snapshot.Source, error) {
	switch cache.Driver {
	case configuration.CacheRedis:
		return snapshot.NewRedisSource(snapshot.RedisOptions{
			Address:  cache.Address,
			Password: cache.Password,
			DB:       cache.DB,
			CodeKey:  cache.CodeKey,
		}), nil
	case configuration.CacheLevelDB:
		source, err := snapshot.OpenLevelDB(cache.Directory)
		if nil != err {
			return nil, err
		}
		return source, nil
	case configuration.CacheNone:
		return nil, nil
	default:
		return nil, fault.ErrInvalidDriver
	}
}

// bootstrap the table, a failure leaves it empty
func loadSnapshot(log *logger.L, theConfiguration *configuration.Configuration, codes *typecode.Table, store *positions.Store, m *metrics.Metrics) {
	source, err := openSource(theConfiguration.Cache)
	if nil != err {
		log.Errorf("cache: %q open error: %s", theConfiguration.Cache.Driver, err)
		return
	}
	if nil == source {
		log.Info("cache disabled, starting with an empty table")
		return
	}
	defer source.Close()

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	result, err := snapshot.Load(ctx, logger.New("snapshot"), source, codes, store, m)
	if nil != err {
		log.Errorf("snapshot load error: %s", err)
		return
	}
	log.Infof("snapshot: codes: %d  scanned: %d  skipped: %d  created: %d", result.Codes, result.Scanned, result.Skipped, result.Created)
}

// create the configured bus consumer and the process that drains it
func newIngestor(theConfiguration *configuration.Configuration, session string, durations configuration.Durations, codes *typecode.Table, queue *messagebus.Queue, m *metrics.Metrics) (*ingestor.Ingestor, error) {
	bus := theConfiguration.Bus

	var consumer ingestor.Consumer
	switch bus.Driver {
	case configuration.BusKafka:
		c, err := ingestor.NewKafkaConsumer(bus.Brokers, session)
		if nil != err {
			return nil, err
		}
		consumer = c
	case configuration.BusZMQ:
		c, err := ingestor.NewZMQConsumer(bus.Brokers)
		if nil != err {
			return nil, err
		}
		consumer = c
	default:
		return nil, fault.ErrInvalidDriver
	}

	options := ingestor.Options{
		Topics:      bus.Topics,
		PollTimeout: durations.PollTimeout,
		Backoff:     durations.Backoff,
	}
	return ingestor.New(logger.New("ingestor"), consumer, codes, queue, m, options), nil
}

// the HTTP boundary, with TLS only when a certificate is configured
func newListener(theConfiguration *configuration.Configuration, store *positions.Store, state *mode.State, registry *prometheus.Registry) (*rpc.Listener, error) {
	log := logger.New("rpc")
	httpRPC := theConfiguration.HTTPRPC

	var tlsConfiguration *tls.Config
	if "" != httpRPC.Certificate {
		c, _, err := rpc.LoadTLS(log, httpRPC.Certificate, httpRPC.PrivateKey)
		if nil != err {
			return nil, err
		}
		tlsConfiguration = c
	}

	server := rpc.New(log, store, registry, rpc.Options{
		Version:   version,
		Mode:      state,
		RateLimit: httpRPC.RateLimit,
		RateBurst: httpRPC.RateBurst,
	})
	return rpc.NewListener(log, httpRPC.Listen, server.Handler(), tlsConfiguration), nil
}
