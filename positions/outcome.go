// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package positions

// Outcome - result of applying one delta
type Outcome int

// possible outcomes
const (
	Dropped Outcome = iota
	Created
	Updated
)

// String - name used in logs and metric labels
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "dropped"
	}
}

// TTL - maximum age in milliseconds before a row is evicted
type TTL struct {
	Moving     int64
	Stationary int64
}

// default TTLs
const (
	DefaultMovingTTL     = int64(720000)
	DefaultStationaryTTL = int64(1800000)
)

// DefaultTTL - twelve minutes moving, thirty minutes stationary
func DefaultTTL() TTL {
	return TTL{
		Moving:     DefaultMovingTTL,
		Stationary: DefaultStationaryTTL,
	}
}
