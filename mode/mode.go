// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - daemon lifecycle state
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Loading
	Normal
	maximum
)

// State - current mode of one daemon
type State struct {
	sync.RWMutex
	log  *logger.L
	mode Mode
}

// New - start in Loading mode
func New(log *logger.L) *State {
	s := &State{
		log:  log,
		mode: Loading,
	}
	log.Infof("set: %s", s.mode)
	return s
}

// Set - change mode
func (s *State) Set(mode Mode) {

	if mode >= Stopped && mode < maximum {
		s.Lock()
		s.mode = mode
		s.Unlock()

		s.log.Infof("set: %s", mode)
	} else {
		s.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func (s *State) Is(mode Mode) bool {
	s.RLock()
	defer s.RUnlock()
	return mode == s.mode
}

// IsNot - detect mode
func (s *State) IsNot(mode Mode) bool {
	s.RLock()
	defer s.RUnlock()
	return mode != s.mode
}

// String - current mode represented as a string
func (s *State) String() string {
	s.RLock()
	defer s.RUnlock()
	return s.mode.String()
}

// String - mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
