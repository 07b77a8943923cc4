// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/mode"
)

func TestSet(t *testing.T) {
	s := mode.New(logger.New(category))
	assert.True(t, s.Is(mode.Loading), "initial")
	assert.Equal(t, "Loading", s.String())

	s.Set(mode.Normal)
	assert.True(t, s.Is(mode.Normal), "normal")
	assert.True(t, s.IsNot(mode.Loading), "not loading")

	s.Set(mode.Mode(17))
	assert.True(t, s.Is(mode.Normal), "invalid set ignored")

	s.Set(mode.Stopped)
	assert.Equal(t, "Stopped", s.String())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Normal", mode.Normal.String())
	assert.Equal(t, "*Unknown*", mode.Mode(-1).String())
}
