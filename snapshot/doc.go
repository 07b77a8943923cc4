// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - one-time bootstrap of the position table
//
// the cache store holds one hash per vessel keyed by MMSI and a global
// hash of vessel type code descriptions; the cache is only ever read
package snapshot
