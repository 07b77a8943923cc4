// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON over HTTP access to the position table
//
//   GET  /vessels[?since=V]   columnar snapshot, 304 if version V is current
//   GET  /vessels/:mmsi       one record
//   GET  /selection           selected positions and their MMSIs
//   PUT  /selection           {"selected":[...]} or {"mmsi":[...]}
//   PUT  /visibility          {"visible":true|false}
//   GET  /details             counters and uptime
//   GET  /metrics             prometheus exposition
//
// all errors are returned as {"code":N,"error":"text"}
package rpc
