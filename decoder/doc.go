// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package decoder - turn bus messages and cached hashes into vessel
// deltas
//
// a bus message is a JSON object whose "payload" member holds either
// the kinematic fields:
//
//   mmsi timestamp longitude latitude speed heading
//
// or the identity fields:
//
//   mmsi shipname shiptype
//
// a payload with more than four members is taken as kinematic.
// numbers are accepted either as JSON numbers or as numeric strings.
package decoder
