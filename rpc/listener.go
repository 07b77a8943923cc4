// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// Listener - serves a handler on every listen address
type Listener struct {
	log       *logger.L
	listen    []string
	handler   http.Handler
	tlsConfig *tls.Config
}

// NewListener - a nil TLS configuration means plain HTTP
func NewListener(log *logger.L, listen []string, handler http.Handler, tlsConfig *tls.Config) *Listener {
	return &Listener{
		log:       log,
		listen:    listen,
		handler:   handler,
		tlsConfig: tlsConfig,
	}
}

// Run - serve until shutdown then drain open requests
func (l *Listener) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.log

	servers := make([]*http.Server, 0, len(l.listen))
	for _, listen := range l.listen {
		address := canonicalAddress(listen)

		ln, err := net.Listen("tcp", address)
		if nil != err {
			log.Errorf("listen on: %q  error: %s", address, err)
			continue
		}
		if nil != l.tlsConfig {
			ln = tls.NewListener(ln, l.tlsConfig)
		}

		s := &http.Server{
			Handler:        l.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		servers = append(servers, s)

		log.Infof("serving on: %q  tls: %t", address, nil != l.tlsConfig)
		go func(s *http.Server, ln net.Listener) {
			err := s.Serve(ln)
			if http.ErrServerClosed != err {
				log.Errorf("serve error: %s", err)
			}
		}(s, ln)
	}

	<-shutdown

	for _, s := range servers {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := s.Shutdown(ctx); nil != err {
			log.Warnf("shutdown error: %s", err)
		}
		cancel()
	}
	log.Info("stopped")
}

// change "*:PORT" to "[::]:PORT"
// on the assumption that this will listen on tcp4 and tcp6
func canonicalAddress(listen string) string {
	if strings.HasPrefix(listen, "*:") {
		return "[::]" + listen[1:]
	}
	return listen
}
