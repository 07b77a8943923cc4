// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/vessel"
)

// largest request body accepted
const maximumBodySize = 1 << 20

// SelectionRequest - body of PUT /selection
//
// if MMSI is present the rows are selected by identifier instead of by
// position
type SelectionRequest struct {
	Selected []int         `json:"selected"`
	MMSI     []vessel.MMSI `json:"mmsi,omitempty"`
}

// SelectionReply - current selection
type SelectionReply struct {
	Selected []int         `json:"selected"`
	MMSI     []vessel.MMSI `json:"mmsi"`
	Version  uint64        `json:"version"`
}

// VisibilityRequest - body of PUT /visibility
type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// VisibilityReply - toggle state
type VisibilityReply struct {
	Visible bool   `json:"visible"`
	Version uint64 `json:"version"`
}

// DetailsReply - GET /details
type DetailsReply struct {
	Rows     int    `json:"rows"`
	Selected int    `json:"selected"`
	Visible  bool   `json:"visible"`
	Version  uint64 `json:"version"`
	Uptime   string `json:"uptime"`
	Software string `json:"software"`
	Mode     string `json:"mode,omitempty"`
}

func (s *Server) vessels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	since := r.URL.Query().Get("since")
	if "" != since {
		v, err := strconv.ParseUint(since, 10, 64)
		if nil != err {
			sendBadRequest(w, fault.ErrInvalidNumber)
			return
		}
		if v == s.store.Version() {
			sendNotModified(w)
			return
		}
	}

	sendReply(w, s.store.Snapshot())
}

func (s *Server) vessel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mmsi, err := vessel.ParseMMSI(ps.ByName("mmsi"))
	if nil != err {
		sendBadRequest(w, err)
		return
	}

	record, err := s.store.Get(mmsi)
	if nil != err {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendReply(w, record)
}

func (s *Server) selection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sendReply(w, selectionReply(s.store.SelectionState()))
}

func selectionReply(state positions.SelectionState) SelectionReply {
	return SelectionReply{
		Selected: state.Selected,
		MMSI:     state.MMSI,
		Version:  state.Version,
	}
}

func (s *Server) setSelection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request SelectionRequest
	if err := decodeBody(r, &request); nil != err {
		sendBadRequest(w, fault.ErrInvalidSelection)
		return
	}

	var state positions.SelectionState
	if nil != request.MMSI {
		state = s.store.SelectIdentifiers(request.MMSI)
	} else {
		state = s.store.SetSelection(request.Selected)
	}
	s.log.Debugf("selection: %v  version: %d", state.Selected, state.Version)

	sendReply(w, selectionReply(state))
}

func (s *Server) setVisibility(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request VisibilityRequest
	if err := decodeBody(r, &request); nil != err || nil == request.Visible {
		sendBadRequest(w, fault.ErrInvalidPayload)
		return
	}

	version := s.store.SetVisible(*request.Visible)
	s.log.Debugf("visible: %t  version: %d", *request.Visible, version)

	sendReply(w, VisibilityReply{
		Visible: *request.Visible,
		Version: version,
	})
}

func (s *Server) details(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m := ""
	if nil != s.mode {
		m = s.mode.String()
	}
	snap := s.store.Snapshot()
	sendReply(w, DetailsReply{
		Rows:     snap.Data.Len(),
		Selected: len(snap.Selected),
		Visible:  snap.Visible,
		Version:  snap.Version,
		Uptime:   time.Since(s.start).Round(time.Second).String(),
		Software: s.version,
		Mode:     m,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maximumBodySize))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
