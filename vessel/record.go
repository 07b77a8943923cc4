// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vessel

// Record - current known state of one vessel
type Record struct {
	MMSI          MMSI     `json:"mmsi"`
	Timestamp     int64    `json:"ts"`
	Longitude     float64  `json:"lon"`
	Latitude      float64  `json:"lat"`
	MercatorX     float64  `json:"lon_merc"`
	MercatorY     float64  `json:"lat_merc"`
	Movement      Movement `json:"moving"`
	Heading       float64  `json:"heading"`
	HeadingUp     float64  `json:"heading_up"`
	HeadingAcross float64  `json:"heading_across"`
	Name          string   `json:"vessel_name"`
	Type          string   `json:"vessel_type"`
}

// Kinematic - motion part of an update
//
// all fields are private so the derived values can only come from
// NewKinematic
type Kinematic struct {
	timestamp     int64
	longitude     float64
	latitude      float64
	movement      Movement
	heading       float64
	headingUp     float64
	headingAcross float64
	mercatorX     float64
	mercatorY     float64
}

// Identity - static part of an update
type Identity struct {
	Name string
	Type string
}

// Delta - one decoded update for a vessel
type Delta struct {
	MMSI      MMSI
	Kinematic *Kinematic
	Identity  *Identity
}

// NewKinematic - build a motion update and its derived fields
func NewKinematic(timestamp int64, longitude float64, latitude float64, movement Movement, heading float64) *Kinematic {
	x, y := Mercator(longitude, latitude)
	if "" == movement {
		movement = Stationary
	}
	return &Kinematic{
		timestamp:     timestamp,
		longitude:     longitude,
		latitude:      latitude,
		movement:      movement,
		heading:       heading,
		headingUp:     HeadingUp(heading),
		headingAcross: HeadingAcross(heading),
		mercatorX:     x,
		mercatorY:     y,
	}
}

// Timestamp - milliseconds since the epoch
func (k *Kinematic) Timestamp() int64 { return k.timestamp }

// Longitude - degrees
func (k *Kinematic) Longitude() float64 { return k.longitude }

// Latitude - degrees
func (k *Kinematic) Latitude() float64 { return k.latitude }

// Movement - moving or stationary
func (k *Kinematic) Movement() Movement { return k.movement }

// Heading - degrees
func (k *Kinematic) Heading() float64 { return k.heading }

// New - a row for an identifier seen for the first time
//
// identity fields start empty
func New(mmsi MMSI, k *Kinematic) Record {
	r := Record{
		MMSI: mmsi,
	}
	r.ApplyKinematic(k)
	return r
}

// ApplyKinematic - overwrite the motion fields, leaving identity alone
func (r *Record) ApplyKinematic(k *Kinematic) {
	if nil == k {
		return
	}
	r.Timestamp = k.timestamp
	r.Longitude = k.longitude
	r.Latitude = k.latitude
	r.MercatorX = k.mercatorX
	r.MercatorY = k.mercatorY
	r.Movement = k.movement
	r.Heading = k.heading
	r.HeadingUp = k.headingUp
	r.HeadingAcross = k.headingAcross
}

// ApplyIdentity - overwrite name and type, leaving motion alone
func (r *Record) ApplyIdentity(i *Identity) {
	if nil == i {
		return
	}
	r.Name = i.Name
	r.Type = i.Type
}

// Age - milliseconds since the last report
func (r *Record) Age(nowMillis int64) int64 {
	return nowMillis - r.Timestamp
}

// IsKinematic - true if the delta carries a motion update
func (d Delta) IsKinematic() bool {
	return nil != d.Kinematic
}
