// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vessel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

func TestDerivedHeading(t *testing.T) {
	for _, h := range []float64{0, 1, 90, 180, 270, 359.5} {
		k := vessel.NewKinematic(1, 23.6, 37.9, vessel.Moving, h)
		r := vessel.New(237000001, k)

		assert.Equal(t, -h, r.HeadingUp, "heading up for %v", h)
		assert.Equal(t, 270-h, r.HeadingAcross, "heading across for %v", h)
		assert.Equal(t, h, r.Heading)
	}
}

func TestMercator(t *testing.T) {
	x, y := vessel.Mercator(0, 0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, _ = vessel.Mercator(180, 0)
	assert.InDelta(t, 20037508.342789244, x, 1e-6)

	// Piraeus
	x, y = vessel.Mercator(23.6, 37.9)
	assert.InDelta(t, 2627139.98, x, 0.01)
	assert.InDelta(t, 4565308.78, y, 0.01)

	// clamped at the poles
	_, yn := vessel.Mercator(0, 90)
	assert.False(t, math.IsInf(yn, 0))
	_, ys := vessel.Mercator(0, -90)
	assert.InDelta(t, -yn, ys, 1e-6)
}

func TestMovement(t *testing.T) {
	assert.Equal(t, vessel.Moving, vessel.MovementFromSpeed(0.1))
	assert.Equal(t, vessel.Stationary, vessel.MovementFromSpeed(0))
	assert.Equal(t, vessel.Stationary, vessel.MovementFromSpeed(-1))

	m, err := vessel.ParseMovement("Y")
	assert.Nil(t, err)
	assert.True(t, m.IsMoving())

	_, err = vessel.ParseMovement("maybe")
	assert.Equal(t, fault.ErrInvalidPayload, err)
}

func TestMergeSections(t *testing.T) {
	r := vessel.New(237000001, vessel.NewKinematic(100, 23.6, 37.9, vessel.Moving, 45))
	assert.Equal(t, "", r.Name)
	assert.Equal(t, "", r.Type)

	r.ApplyIdentity(&vessel.Identity{Name: "ARIADNE", Type: "Passenger"})
	assert.Equal(t, int64(100), r.Timestamp)
	assert.Equal(t, 45.0, r.Heading)
	assert.Equal(t, vessel.Moving, r.Movement)

	r.ApplyKinematic(vessel.NewKinematic(200, 23.7, 37.8, vessel.Stationary, 0))
	assert.Equal(t, "ARIADNE", r.Name)
	assert.Equal(t, "Passenger", r.Type)
	assert.Equal(t, int64(200), r.Timestamp)
	assert.Equal(t, 270.0, r.HeadingAcross)

	// nil sections are ignored
	before := r
	r.ApplyKinematic(nil)
	r.ApplyIdentity(nil)
	assert.Equal(t, before, r)
}

func TestParseMMSI(t *testing.T) {
	m, err := vessel.ParseMMSI(" 237000001 ")
	assert.Nil(t, err)
	assert.Equal(t, vessel.MMSI(237000001), m)
	assert.Equal(t, "237000001", m.String())

	for _, s := range []string{"", "abc", "0", "-5", "99999999999"} {
		_, err := vessel.ParseMMSI(s)
		assert.Equal(t, fault.ErrInvalidIdentifier, err, "input: %q", s)
	}
}
