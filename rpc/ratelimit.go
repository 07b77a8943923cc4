// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/datastories-org/aisstream/fault"
)

// longest a request is held back before being refused
const maximumDelay = 250 * time.Millisecond

// limit - wait for the limiter or refuse the request
//
// the wait ends early when the request is cancelled
func limit(ctx context.Context, limiter *rate.Limiter) error {
	ctx, cancel := context.WithTimeout(ctx, maximumDelay)
	defer cancel()

	if err := limiter.Wait(ctx); nil != err {
		return fault.ErrRateLimiting
	}
	return nil
}

// limited - wrap a handler with the shared limiter
func limited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := limit(r.Context(), limiter); nil != err {
			sendTooManyRequests(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
