// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package decoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/decoder"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/typecode"
	"github.com/datastories-org/aisstream/vessel"
)

func codes() *typecode.Table {
	table := typecode.New()
	table.Load(map[string]string{
		"60": "Passenger, all ships of this type",
		"70": "Cargo, all ships of this type",
	})
	return table
}

func TestDecodeKinematic(t *testing.T) {
	raw := `{"payload":{"mmsi":237000001,"timestamp":1650000000000,"longitude":23.6,"latitude":37.9,"speed":12.5,"heading":90}}`

	d, err := decoder.Decode([]byte(raw), codes())
	assert.Nil(t, err)
	assert.Equal(t, vessel.MMSI(237000001), d.MMSI)
	assert.True(t, d.IsKinematic())
	assert.Nil(t, d.Identity)

	k := d.Kinematic
	assert.Equal(t, int64(1650000000000), k.Timestamp())
	assert.Equal(t, 23.6, k.Longitude())
	assert.Equal(t, 37.9, k.Latitude())
	assert.Equal(t, vessel.Moving, k.Movement())
	assert.Equal(t, 90.0, k.Heading())

	r := vessel.New(d.MMSI, k)
	assert.Equal(t, -90.0, r.HeadingUp)
	assert.Equal(t, 180.0, r.HeadingAcross)
}

func TestDecodeKinematicDefaults(t *testing.T) {
	// five members so kinematic, but no speed or heading
	raw := `{"payload":{"mmsi":"237000002","timestamp":"1650000000000","longitude":"23.6","latitude":"37.9","status":0}}`

	d, err := decoder.Decode([]byte(raw), nil)
	assert.Nil(t, err)
	assert.True(t, d.IsKinematic())
	assert.Equal(t, vessel.Stationary, d.Kinematic.Movement())
	assert.Equal(t, 0.0, d.Kinematic.Heading())

	r := vessel.New(d.MMSI, d.Kinematic)
	assert.Equal(t, 0.0, r.HeadingUp)
	assert.Equal(t, 270.0, r.HeadingAcross)
}

func TestDecodeNullHeading(t *testing.T) {
	raw := `{"payload":{"mmsi":237000003,"timestamp":1.65e12,"longitude":23.6,"latitude":37.9,"speed":0,"heading":null}}`

	d, err := decoder.Decode([]byte(raw), nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(1650000000000), d.Kinematic.Timestamp())
	assert.Equal(t, 0.0, d.Kinematic.Heading())
}

func TestDecodeIdentity(t *testing.T) {
	raw := `{"payload":{"mmsi":237000001,"shipname":"ARIADNE","shiptype":60}}`

	d, err := decoder.Decode([]byte(raw), codes())
	assert.Nil(t, err)
	assert.False(t, d.IsKinematic())
	assert.Equal(t, &vessel.Identity{Name: "ARIADNE", Type: "Passenger"}, d.Identity)
}

func TestDecodeIdentityDefaults(t *testing.T) {
	d, err := decoder.Decode([]byte(`{"payload":{"mmsi":237000001,"shiptype":"99"}}`), codes())
	assert.Nil(t, err)
	assert.Equal(t, &vessel.Identity{}, d.Identity)

	d, err = decoder.Decode([]byte(`{"payload":{"mmsi":237000001,"shipname":"ARIADNE","shiptype":70}}`), nil)
	assert.Nil(t, err)
	assert.Equal(t, &vessel.Identity{Name: "ARIADNE"}, d.Identity)
}

func TestDecodeErrors(t *testing.T) {
	items := []struct {
		raw string
		err error
	}{
		{`not json`, fault.ErrInvalidPayload},
		{`{"other":{}}`, fault.ErrInvalidPayload},
		{`{"payload":null}`, fault.ErrInvalidPayload},
		{`{"payload":{"shipname":"X"}}`, fault.ErrMissingField},
		{`{"payload":{"mmsi":"abc","shipname":"X"}}`, fault.ErrInvalidIdentifier},
		{`{"payload":{"mmsi":1,"longitude":1,"latitude":2,"speed":0,"heading":0}}`, fault.ErrMissingField},
		{`{"payload":{"mmsi":1,"timestamp":5,"latitude":2,"speed":0,"heading":0}}`, fault.ErrMissingField},
		{`{"payload":{"mmsi":1,"timestamp":5,"longitude":"east","latitude":2,"speed":0}}`, fault.ErrInvalidNumber},
		{`{"payload":{"mmsi":1,"timestamp":5.5,"longitude":1,"latitude":2,"speed":0}}`, fault.ErrInvalidNumber},
		{`{"payload":{"mmsi":1,"timestamp":5,"longitude":1,"latitude":2,"speed":"fast"}}`, fault.ErrInvalidNumber},
	}

	for i, item := range items {
		_, err := decoder.Decode([]byte(item.raw), nil)
		assert.Equal(t, item.err, err, "%d: %s", i, item.raw)
	}
}

func TestFromFields(t *testing.T) {
	fields := map[string]string{
		"timestamp": "1650000000000",
		"longitude": "23.6",
		"latitude":  "37.9",
		"moving":    "Y",
		"heading":   "45",
		"shipname":  "ARIADNE",
		"shiptype":  "60",
	}

	d, err := decoder.FromFields("237000001", fields, codes())
	assert.Nil(t, err)
	assert.Equal(t, vessel.MMSI(237000001), d.MMSI)
	assert.Equal(t, vessel.Moving, d.Kinematic.Movement())
	assert.Equal(t, 45.0, d.Kinematic.Heading())
	assert.Equal(t, &vessel.Identity{Name: "ARIADNE", Type: "Passenger"}, d.Identity)
}

func TestFromFieldsPreferStoredNames(t *testing.T) {
	fields := map[string]string{
		"timestamp":   "1650000000000",
		"longitude":   "23.6",
		"latitude":    "37.9",
		"speed":       "0",
		"vessel_name": "BLUE STAR",
		"shipname":    "IGNORED",
		"vessel_type": "",
		"shiptype":    "60",
	}

	d, err := decoder.FromFields("237000004", fields, codes())
	assert.Nil(t, err)
	assert.Equal(t, vessel.Stationary, d.Kinematic.Movement())
	assert.Equal(t, 0.0, d.Kinematic.Heading())
	assert.Equal(t, &vessel.Identity{Name: "BLUE STAR", Type: ""}, d.Identity)
}

func TestFromFieldsErrors(t *testing.T) {
	_, err := decoder.FromFields("237000001", map[string]string{"shipname": "X"}, nil)
	assert.Equal(t, fault.ErrNotKinematic, err)

	_, err = decoder.FromFields("ais_code_descriptions", map[string]string{"60": "Passenger"}, nil)
	assert.Equal(t, fault.ErrInvalidIdentifier, err)

	_, err = decoder.FromFields("237000001", map[string]string{"timestamp": "1"}, nil)
	assert.Equal(t, fault.ErrMissingField, err)

	_, err = decoder.FromFields("237000001", map[string]string{"timestamp": "1", "longitude": "1", "latitude": "2", "moving": "?"}, nil)
	assert.Equal(t, fault.ErrInvalidPayload, err)
}
