// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweeper

import (
	"time"
)

// SetClock - replace the time source
func (s *Sweeper) SetClock(now func() time.Time) {
	s.now = now
}
