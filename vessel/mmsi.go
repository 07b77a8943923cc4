// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vessel

import (
	"strconv"
	"strings"

	"github.com/datastories-org/aisstream/fault"
)

// MMSI - maritime mobile service identity, the vessel identifier
type MMSI uint32

// ParseMMSI - convert decimal text to an identifier
func ParseMMSI(s string) (MMSI, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return 0, fault.ErrInvalidIdentifier
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if nil != err || 0 == n {
		return 0, fault.ErrInvalidIdentifier
	}
	return MMSI(n), nil
}

// String - decimal form
func (m MMSI) String() string {
	return strconv.FormatUint(uint64(m), 10)
}
