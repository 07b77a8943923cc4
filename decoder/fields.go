// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package decoder

import (
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

// FromFields - convert a cached per-vessel hash
//
// the hash key is the identifier; a hash without a timestamp has never
// carried a position and gives fault.ErrNotKinematic.  The delta has
// both sections so a cached vessel materialises exactly like a
// kinematic update followed by an identity update.
func FromFields(key string, fields map[string]string, codes Describer) (vessel.Delta, error) {

	mmsi, err := vessel.ParseMMSI(key)
	if nil != err {
		return vessel.Delta{}, err
	}

	ts, ok := fields["timestamp"]
	if !ok {
		return vessel.Delta{}, fault.ErrNotKinematic
	}
	timestamp, err := parseInt(ts)
	if nil != err {
		return vessel.Delta{}, err
	}

	lon, okLon := fields["longitude"]
	lat, okLat := fields["latitude"]
	if !okLon || !okLat {
		return vessel.Delta{}, fault.ErrMissingField
	}
	longitude, err := parseFloat(lon)
	if nil != err {
		return vessel.Delta{}, err
	}
	latitude, err := parseFloat(lat)
	if nil != err {
		return vessel.Delta{}, err
	}

	heading, err := optionalString(fields, "heading")
	if nil != err {
		return vessel.Delta{}, err
	}

	var movement vessel.Movement
	if m, ok := fields["moving"]; ok {
		movement, err = vessel.ParseMovement(m)
		if nil != err {
			return vessel.Delta{}, err
		}
	} else {
		speed, err := optionalString(fields, "speed")
		if nil != err {
			return vessel.Delta{}, err
		}
		movement = vessel.MovementFromSpeed(speed)
	}

	name, ok := fields["vessel_name"]
	if !ok {
		name = fields["shipname"]
	}

	vesselType, ok := fields["vessel_type"]
	if !ok {
		code, present := fields["shiptype"]
		vesselType = describe(codes, code, present)
	}

	return vessel.Delta{
		MMSI:      mmsi,
		Kinematic: vessel.NewKinematic(timestamp, longitude, latitude, movement, heading),
		Identity: &vessel.Identity{
			Name: name,
			Type: vesselType,
		},
	}, nil
}

func optionalString(fields map[string]string, key string) (float64, error) {
	s, ok := fields[key]
	return optionalFloat(s, ok, 0)
}
