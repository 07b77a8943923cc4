// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vessel

import (
	"github.com/datastories-org/aisstream/fault"
)

// Movement - moving or stationary, rendered as "Y" or "N"
type Movement string

// movement classes
const (
	Moving     Movement = "Y"
	Stationary Movement = "N"
)

// MovementFromSpeed - any positive reported speed is moving
func MovementFromSpeed(speed float64) Movement {
	if speed > 0 {
		return Moving
	}
	return Stationary
}

// ParseMovement - accept the cached "Y"/"N" flag
func ParseMovement(s string) (Movement, error) {
	switch Movement(s) {
	case Moving:
		return Moving, nil
	case Stationary:
		return Stationary, nil
	default:
		return Stationary, fault.ErrInvalidPayload
	}
}

// IsMoving - true for the moving class
func (m Movement) IsMoving() bool {
	return Moving == m
}
