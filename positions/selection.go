// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package positions

import (
	"github.com/datastories-org/aisstream/vessel"
)

// SelectionState - selected positions, their identifiers and the
// table version, all taken under one lock
type SelectionState struct {
	Selected []int
	MMSI     []vessel.MMSI
	Version  uint64
}

// Selection - copy of the selected row positions
func (s *Store) Selection() []int {
	s.RLock()
	defer s.RUnlock()

	selected := make([]int, len(s.selected))
	copy(selected, s.selected)
	return selected
}

// SelectedIdentifiers - MMSIs of the selected rows in selection order
func (s *Store) SelectedIdentifiers() []vessel.MMSI {
	s.RLock()
	defer s.RUnlock()
	return s.identifiersLocked()
}

// SelectionState - consistent view of the selection
func (s *Store) SelectionState() SelectionState {
	s.RLock()
	defer s.RUnlock()
	return s.selectionLocked()
}

// SetSelection - replace the selection
//
// positions outside the table and repeated positions are dropped; the
// state installed is returned
func (s *Store) SetSelection(positions []int) SelectionState {
	s.Lock()
	state, observers := s.replaceLocked(positions)
	s.Unlock()

	notify(observers, state.Version)
	return state
}

// SelectIdentifiers - select rows by MMSI
//
// unknown identifiers are ignored; the state installed is returned
func (s *Store) SelectIdentifiers(ids []vessel.MMSI) SelectionState {
	s.Lock()
	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		if position, ok := s.index[id]; ok {
			positions = append(positions, position)
		}
	}
	state, observers := s.replaceLocked(positions)
	s.Unlock()

	notify(observers, state.Version)
	return state
}

// install a selection, lock must be held
func (s *Store) replaceLocked(positions []int) (SelectionState, []Observer) {
	accepted := s.validLocked(positions)
	changed := !equalPositions(s.selected, accepted)
	s.selected = accepted
	_, observers := s.changedLocked(changed)
	return s.selectionLocked(), observers
}

// lock must be held
func (s *Store) selectionLocked() SelectionState {
	selected := make([]int, len(s.selected))
	copy(selected, s.selected)
	return SelectionState{
		Selected: selected,
		MMSI:     s.identifiersLocked(),
		Version:  s.version,
	}
}

// lock must be held
func (s *Store) identifiersLocked() []vessel.MMSI {
	ids := make([]vessel.MMSI, 0, len(s.selected))
	for _, position := range s.selected {
		ids = append(ids, s.rows[position].MMSI)
	}
	return ids
}

// filter positions against the current table, lock must be held
func (s *Store) validLocked(positions []int) []int {
	seen := make(map[int]struct{}, len(positions))
	accepted := make([]int, 0, len(positions))
	for _, position := range positions {
		if position < 0 || position >= len(s.rows) {
			continue
		}
		if _, ok := seen[position]; ok {
			continue
		}
		seen[position] = struct{}{}
		accepted = append(accepted, position)
	}
	return accepted
}

func equalPositions(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
