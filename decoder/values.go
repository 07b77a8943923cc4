// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package decoder

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/datastories-org/aisstream/fault"
)

var null = []byte("null")

// text of a member: strings are unquoted, numbers kept as written
//
// absent and null members are reported as not present
func text(fields map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return "", false, nil
	}
	raw = bytes.TrimSpace(raw)
	if 0 == len(raw) || bytes.Equal(raw, null) {
		return "", false, nil
	}
	if '"' == raw[0] {
		s := ""
		if err := json.Unmarshal(raw, &s); nil != err {
			return "", false, fault.ErrInvalidPayload
		}
		return s, true, nil
	}
	return string(raw), true, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fault.ErrInvalidNumber
	}
	return f, nil
}

// integers may arrive in exponent form, e.g. 1.6e+12
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); nil == err {
		return i, nil
	}
	f, err := parseFloat(s)
	if nil != err {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fault.ErrInvalidNumber
	}
	return int64(f), nil
}

// optional number, absent gives the default
func optionalFloat(s string, present bool, defaultValue float64) (float64, error) {
	if !present || "" == strings.TrimSpace(s) {
		return defaultValue, nil
	}
	return parseFloat(s)
}
