// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/datastories-org/aisstream/mode"
	"github.com/datastories-org/aisstream/positions"
)

// Options - request limits
type Options struct {
	Version   string
	Mode      *mode.State // optional, reported by /details
	RateLimit float64     // requests per second
	RateBurst int
}

// Server - handlers bound to one store
type Server struct {
	log      *logger.L
	store    *positions.Store
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
	start    time.Time
	version  string
	mode     *mode.State
}

// New - create the handlers, a nil gatherer disables /metrics
func New(log *logger.L, store *positions.Store, gatherer prometheus.Gatherer, options Options) *Server {
	return &Server{
		log:      log,
		store:    store,
		gatherer: gatherer,
		limiter:  rate.NewLimiter(rate.Limit(options.RateLimit), options.RateBurst),
		start:    time.Now(),
		version:  options.Version,
		mode:     options.Mode,
	}
}

// Handler - the routing table
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/vessels", s.vessels)
	router.GET("/vessels/:mmsi", s.vessel)
	router.GET("/selection", s.selection)
	router.PUT("/selection", s.setSelection)
	router.PUT("/visibility", s.setVisibility)
	router.GET("/details", s.details)

	if nil != s.gatherer {
		router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendNotFound(w)
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendMethodNotAllowed(w)
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		s.log.Criticalf("%s %s  panic: %v", r.Method, r.URL.Path, v)
		sendInternalServerError(w)
	}

	return limited(s.limiter, router)
}
