// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package decoder

import (
	"encoding/json"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

// payloads with more members than this are kinematic
const identityFieldLimit = 4

// Describer - resolves a vessel type code to its short description
type Describer interface {
	Describe(code string) string
}

type envelope struct {
	Payload map[string]json.RawMessage `json:"payload"`
}

// Decode - parse one raw bus message
func Decode(raw []byte, codes Describer) (vessel.Delta, error) {
	var e envelope
	if err := json.Unmarshal(raw, &e); nil != err {
		return vessel.Delta{}, fault.ErrInvalidPayload
	}
	if nil == e.Payload {
		return vessel.Delta{}, fault.ErrInvalidPayload
	}
	return DecodePayload(e.Payload, codes)
}

// DecodePayload - classify and convert the members of a payload
func DecodePayload(payload map[string]json.RawMessage, codes Describer) (vessel.Delta, error) {

	s, ok, err := text(payload, "mmsi")
	if nil != err {
		return vessel.Delta{}, err
	}
	if !ok {
		return vessel.Delta{}, fault.ErrMissingField
	}
	mmsi, err := vessel.ParseMMSI(s)
	if nil != err {
		return vessel.Delta{}, err
	}

	if len(payload) > identityFieldLimit {
		k, err := kinematic(payload)
		if nil != err {
			return vessel.Delta{}, err
		}
		return vessel.Delta{MMSI: mmsi, Kinematic: k}, nil
	}

	i, err := identity(payload, codes)
	if nil != err {
		return vessel.Delta{}, err
	}
	return vessel.Delta{MMSI: mmsi, Identity: i}, nil
}

func kinematic(payload map[string]json.RawMessage) (*vessel.Kinematic, error) {

	required := func(key string) (string, error) {
		s, ok, err := text(payload, key)
		if nil != err {
			return "", err
		}
		if !ok {
			return "", fault.ErrMissingField
		}
		return s, nil
	}

	s, err := required("timestamp")
	if nil != err {
		return nil, err
	}
	timestamp, err := parseInt(s)
	if nil != err {
		return nil, err
	}

	s, err = required("longitude")
	if nil != err {
		return nil, err
	}
	longitude, err := parseFloat(s)
	if nil != err {
		return nil, err
	}

	s, err = required("latitude")
	if nil != err {
		return nil, err
	}
	latitude, err := parseFloat(s)
	if nil != err {
		return nil, err
	}

	s, ok, err := text(payload, "speed")
	if nil != err {
		return nil, err
	}
	speed, err := optionalFloat(s, ok, 0)
	if nil != err {
		return nil, err
	}

	s, ok, err = text(payload, "heading")
	if nil != err {
		return nil, err
	}
	heading, err := optionalFloat(s, ok, 0)
	if nil != err {
		return nil, err
	}

	return vessel.NewKinematic(timestamp, longitude, latitude, vessel.MovementFromSpeed(speed), heading), nil
}

func identity(payload map[string]json.RawMessage, codes Describer) (*vessel.Identity, error) {

	name, _, err := text(payload, "shipname")
	if nil != err {
		return nil, err
	}

	code, ok, err := text(payload, "shiptype")
	if nil != err {
		return nil, err
	}

	return &vessel.Identity{
		Name: name,
		Type: describe(codes, code, ok),
	}, nil
}

func describe(codes Describer, code string, present bool) string {
	if !present || nil == codes {
		return ""
	}
	return codes.Describe(code)
}
