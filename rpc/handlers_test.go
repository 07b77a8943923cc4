// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/mode"
	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/rpc"
	"github.com/datastories-org/aisstream/vessel"
)

func setup(t *testing.T) (*positions.Store, http.Handler) {
	log := logger.New(category)
	store := positions.New(log, 0)

	for i, mmsi := range []vessel.MMSI{237000001, 237000002, 237000003} {
		_, err := store.Upsert(vessel.Delta{
			MMSI:      mmsi,
			Kinematic: vessel.NewKinematic(int64(1000*(i+1)), 23.6, 37.9, vessel.Moving, 45),
		})
		assert.Nil(t, err, "upsert")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	m.Received()

	server := rpc.New(log, store, registry, rpc.Options{
		Version:   "1.2.3",
		RateLimit: 1000,
		RateBurst: 1000,
	})
	return store, server.Handler()
}

func do(handler http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if "" == body {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)
	return response
}

type errorReply struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func TestVessels(t *testing.T) {
	store, handler := setup(t)

	response := do(handler, http.MethodGet, "/vessels", "")
	assert.Equal(t, http.StatusOK, response.Code, "status")
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"), "content type")

	var snap positions.Snapshot
	err := json.Unmarshal(response.Body.Bytes(), &snap)
	assert.Nil(t, err, "decode")
	assert.Equal(t, []vessel.MMSI{237000001, 237000002, 237000003}, snap.Data.MMSI, "mmsi")
	assert.Equal(t, []float64{-45, -45, -45}, snap.Data.HeadingUp, "heading up")
	assert.Equal(t, []int{}, snap.Selected, "selected")
	assert.True(t, snap.Visible, "visible")
	assert.Equal(t, store.Version(), snap.Version, "version")
}

func TestVesselsNotModified(t *testing.T) {
	store, handler := setup(t)

	current := store.Version()
	target := "/vessels?since=" + jsonNumber(current)

	response := do(handler, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotModified, response.Code, "unchanged")
	assert.Equal(t, 0, response.Body.Len(), "body")

	store.SetVisible(false)

	response = do(handler, http.MethodGet, target, "")
	assert.Equal(t, http.StatusOK, response.Code, "changed")

	response = do(handler, http.MethodGet, "/vessels?since=x", "")
	assert.Equal(t, http.StatusBadRequest, response.Code, "bad since")
}

func TestVessel(t *testing.T) {
	_, handler := setup(t)

	response := do(handler, http.MethodGet, "/vessels/237000002", "")
	assert.Equal(t, http.StatusOK, response.Code, "status")

	var r vessel.Record
	err := json.Unmarshal(response.Body.Bytes(), &r)
	assert.Nil(t, err, "decode")
	assert.Equal(t, vessel.MMSI(237000002), r.MMSI, "mmsi")
	assert.Equal(t, int64(2000), r.Timestamp, "timestamp")

	response = do(handler, http.MethodGet, "/vessels/999999999", "")
	assert.Equal(t, http.StatusNotFound, response.Code, "unknown")

	var e errorReply
	err = json.Unmarshal(response.Body.Bytes(), &e)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, errorReply{Code: http.StatusNotFound, Error: "vessel not found"}, e, "error body")

	response = do(handler, http.MethodGet, "/vessels/abc", "")
	assert.Equal(t, http.StatusBadRequest, response.Code, "invalid")
}

func TestSelectionRoundTrip(t *testing.T) {
	store, handler := setup(t)

	response := do(handler, http.MethodPut, "/selection", `{"selected":[2,0,7]}`)
	assert.Equal(t, http.StatusOK, response.Code, "put status")

	var reply rpc.SelectionReply
	err := json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode")
	assert.Equal(t, []int{2, 0}, reply.Selected, "selected")
	assert.Equal(t, []vessel.MMSI{237000003, 237000001}, reply.MMSI, "mmsi")
	assert.Equal(t, store.Version(), reply.Version, "version")

	response = do(handler, http.MethodGet, "/selection", "")
	assert.Equal(t, http.StatusOK, response.Code, "get status")
	reply = rpc.SelectionReply{}
	_ = json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Equal(t, []int{2, 0}, reply.Selected, "selected after get")

	response = do(handler, http.MethodPut, "/selection", `{"mmsi":[237000002]}`)
	assert.Equal(t, http.StatusOK, response.Code, "put by mmsi")
	assert.Equal(t, []int{1}, store.Selection(), "selected by mmsi")

	response = do(handler, http.MethodPut, "/selection", `{"selected":"all"}`)
	assert.Equal(t, http.StatusBadRequest, response.Code, "invalid body")
	assert.Equal(t, []int{1}, store.Selection(), "selection after invalid body")
}

func TestSelectionDuringEviction(t *testing.T) {
	log := logger.New(category)
	store := positions.New(log, 0)
	server := rpc.New(log, store, nil, rpc.Options{
		RateLimit: 1e9,
		RateBurst: 1e6,
	})
	handler := server.Handler()

	ttl := positions.TTL{Moving: 500, Stationary: 500}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	defer func() {
		close(stop)
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			_, _ = store.Upsert(vessel.Delta{MMSI: 237000001, Kinematic: vessel.NewKinematic(0, 23.6, 37.9, vessel.Moving, 45)})
			_, _ = store.Upsert(vessel.Delta{MMSI: 237000002, Kinematic: vessel.NewKinematic(1000, 23.6, 37.9, vessel.Moving, 45)})
			store.SetSelection([]int{0, 1})
			store.EvictExpired(1000, ttl)
			store.EvictExpired(2000, ttl)
		}
	}()

	consistent := map[string]bool{
		"[0 1] [237000001 237000002]": true,
		"[0] [237000002]":             true,
		"[] []":                       true,
	}

	torn := 0
	for i := 0; i < 5000; i += 1 {
		response := do(handler, http.MethodGet, "/selection", "")
		var reply rpc.SelectionReply
		if err := json.Unmarshal(response.Body.Bytes(), &reply); nil != err {
			t.Fatalf("decode error: %s", err)
		}
		key := fmt.Sprintf("%v %v", reply.Selected, reply.MMSI)
		if !consistent[key] {
			torn += 1
			t.Logf("inconsistent reply: %s", key)
		}
	}
	assert.Equal(t, 0, torn, "inconsistent replies")
}

func TestVisibilityRoundTrip(t *testing.T) {
	store, handler := setup(t)

	response := do(handler, http.MethodPut, "/visibility", `{"visible":false}`)
	assert.Equal(t, http.StatusOK, response.Code, "status")

	var reply rpc.VisibilityReply
	err := json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode")
	assert.False(t, reply.Visible, "visible")
	assert.False(t, store.Visible(), "store visible")
	assert.Equal(t, store.Version(), reply.Version, "installed version")

	response = do(handler, http.MethodPut, "/visibility", `{}`)
	assert.Equal(t, http.StatusBadRequest, response.Code, "missing field")

	response = do(handler, http.MethodPut, "/visibility", `{"visible":true}`)
	assert.Equal(t, http.StatusOK, response.Code, "status")
	assert.True(t, store.Visible(), "store visible")
}

func TestDetails(t *testing.T) {
	_, handler := setup(t)

	response := do(handler, http.MethodGet, "/details", "")
	assert.Equal(t, http.StatusOK, response.Code, "status")

	var reply rpc.DetailsReply
	err := json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Nil(t, err, "decode")
	assert.Equal(t, 3, reply.Rows, "rows")
	assert.Equal(t, "1.2.3", reply.Software, "software")
	assert.True(t, reply.Visible, "visible")
	assert.Equal(t, "", reply.Mode, "no mode state")
}

func TestDetailsMode(t *testing.T) {
	log := logger.New(category)
	state := mode.New(log)
	server := rpc.New(log, positions.New(log, 0), nil, rpc.Options{
		Mode:      state,
		RateLimit: 1000,
		RateBurst: 1000,
	})
	handler := server.Handler()

	var reply rpc.DetailsReply
	response := do(handler, http.MethodGet, "/details", "")
	_ = json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Equal(t, "Loading", reply.Mode, "loading")

	state.Set(mode.Normal)
	response = do(handler, http.MethodGet, "/details", "")
	_ = json.Unmarshal(response.Body.Bytes(), &reply)
	assert.Equal(t, "Normal", reply.Mode, "normal")
}

func TestMetrics(t *testing.T) {
	_, handler := setup(t)

	response := do(handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, response.Code, "status")
	assert.Contains(t, response.Body.String(), "aislived_messages_received_total 1", "counter")
}

func TestRouting(t *testing.T) {
	_, handler := setup(t)

	response := do(handler, http.MethodGet, "/nothing", "")
	assert.Equal(t, http.StatusNotFound, response.Code, "not found")

	response = do(handler, http.MethodDelete, "/selection", "")
	assert.Equal(t, http.StatusMethodNotAllowed, response.Code, "method")
}

func TestRateLimit(t *testing.T) {
	log := logger.New(category)
	server := rpc.New(log, positions.New(log, 0), nil, rpc.Options{
		RateLimit: 0.001,
		RateBurst: 1,
	})
	handler := server.Handler()

	response := do(handler, http.MethodGet, "/details", "")
	assert.Equal(t, http.StatusOK, response.Code, "first request")

	response = do(handler, http.MethodGet, "/details", "")
	assert.Equal(t, http.StatusTooManyRequests, response.Code, "second request")

	response = do(handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusTooManyRequests, response.Code, "limited before routing")
}

func TestRateLimitWait(t *testing.T) {
	log := logger.New(category)
	server := rpc.New(log, positions.New(log, 0), nil, rpc.Options{
		RateLimit: 10,
		RateBurst: 1,
	})
	handler := server.Handler()

	response := do(handler, http.MethodGet, "/details", "")
	assert.Equal(t, http.StatusOK, response.Code, "first request")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	request := httptest.NewRequest(http.MethodGet, "/details", nil).WithContext(ctx)
	response = httptest.NewRecorder()
	handler.ServeHTTP(response, request)
	assert.Equal(t, http.StatusTooManyRequests, response.Code, "cancelled while waiting")

	response = do(handler, http.MethodGet, "/details", "")
	assert.Equal(t, http.StatusOK, response.Code, "short wait is served")
}

func jsonNumber(v uint64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
