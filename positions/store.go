// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package positions

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

// Observer - called with the new version after every visible change
//
// observers run after the store lock is released and must not block
type Observer func(version uint64)

// Store - ordered rows plus the MMSI index, selection and visibility
type Store struct {
	sync.RWMutex

	log   *logger.L
	limit int

	rows     []vessel.Record
	index    map[vessel.MMSI]int
	selected []int
	visible  bool
	version  uint64

	observers []Observer
}

// New - create an empty store
//
// a limit of zero or less means no row limit
func New(log *logger.L, limit int) *Store {
	if nil == log {
		fault.Panic("positions: nil logger")
	}
	return &Store{
		log:      log,
		limit:    limit,
		rows:     make([]vessel.Record, 0, initialCapacity(limit)),
		index:    make(map[vessel.MMSI]int),
		selected: []int{},
		visible:  true,
	}
}

func initialCapacity(limit int) int {
	if limit <= 0 || limit > 1024 {
		return 1024
	}
	return limit
}

// Observe - register a change observer
func (s *Store) Observe(o Observer) {
	if nil == o {
		return
	}
	s.Lock()
	s.observers = append(s.observers, o)
	s.Unlock()
}

// Upsert - apply one delta
//
// an unknown MMSI with motion data creates a row, a known MMSI is
// merged section by section and an identity-only update for an unknown
// MMSI is dropped
func (s *Store) Upsert(delta vessel.Delta) (Outcome, error) {
	s.Lock()
	outcome, err := s.apply(delta)
	version, observers := s.changedLocked(Dropped != outcome)
	s.Unlock()

	notify(observers, version)
	return outcome, err
}

// SnapshotLoad - apply a batch of deltas under a single lock
//
// returns the number of rows created
func (s *Store) SnapshotLoad(deltas []vessel.Delta) int {
	created := 0
	changed := false
	refused := 0

	s.Lock()
	for _, delta := range deltas {
		outcome, err := s.apply(delta)
		switch outcome {
		case Created:
			created += 1
			changed = true
		case Updated:
			changed = true
		}
		if nil != err {
			refused += 1
		}
	}
	version, observers := s.changedLocked(changed)
	s.Unlock()

	if refused > 0 {
		s.log.Warnf("snapshot load: refused: %d of %d", refused, len(deltas))
	}
	notify(observers, version)
	return created
}

// apply one delta, lock must be held
func (s *Store) apply(delta vessel.Delta) (Outcome, error) {
	if 0 == delta.MMSI {
		return Dropped, fault.ErrInvalidIdentifier
	}

	if position, ok := s.index[delta.MMSI]; ok {
		if nil == delta.Kinematic && nil == delta.Identity {
			return Dropped, nil
		}
		row := &s.rows[position]
		row.ApplyKinematic(delta.Kinematic)
		row.ApplyIdentity(delta.Identity)
		return Updated, nil
	}

	if !delta.IsKinematic() {
		s.log.Debugf("identity for unknown mmsi: %s dropped", delta.MMSI)
		return Dropped, nil
	}

	if s.limit > 0 && len(s.rows) >= s.limit {
		return Dropped, fault.ErrTableFull
	}

	row := vessel.New(delta.MMSI, delta.Kinematic)
	row.ApplyIdentity(delta.Identity)
	s.index[delta.MMSI] = len(s.rows)
	s.rows = append(s.rows, row)
	return Created, nil
}

// EvictExpired - remove every row older than its TTL
//
// the surviving rows keep their relative order, the index is rebuilt
// and the held selection is remapped before the lock is released;
// returns the number of rows removed
func (s *Store) EvictExpired(nowMillis int64, ttl TTL) int {
	s.Lock()

	keep := make([]bool, len(s.rows))
	removed := 0
	for i := range s.rows {
		limit := ttl.Stationary
		if s.rows[i].Movement.IsMoving() {
			limit = ttl.Moving
		}
		keep[i] = s.rows[i].Age(nowMillis) <= limit
		if !keep[i] {
			removed += 1
		}
	}

	if 0 == removed {
		s.Unlock()
		return 0
	}

	n := 0
	for i := range s.rows {
		if keep[i] {
			s.rows[n] = s.rows[i]
			n += 1
		}
	}
	for i := n; i < len(s.rows); i += 1 {
		s.rows[i] = vessel.Record{}
	}
	s.rows = s.rows[:n]

	s.index = make(map[vessel.MMSI]int, n)
	for i := range s.rows {
		s.index[s.rows[i].MMSI] = i
	}

	s.selected = RemapSelection(s.selected, keep)

	version, observers := s.changedLocked(true)
	s.Unlock()

	notify(observers, version)
	return removed
}

// RemapSelection - new positions of the selected rows that survive
//
// keep[i] is true for each row that remains after compaction; entries
// outside keep are discarded and the order of the rest is preserved
func RemapSelection(selected []int, keep []bool) []int {
	shift := make([]int, len(keep))
	kept := 0
	for i, k := range keep {
		shift[i] = kept
		if k {
			kept += 1
		}
	}

	remapped := make([]int, 0, len(selected))
	for _, position := range selected {
		if position < 0 || position >= len(keep) || !keep[position] {
			continue
		}
		remapped = append(remapped, shift[position])
	}
	return remapped
}

// SetVisible - presentation layer toggle, returns the version installed
func (s *Store) SetVisible(visible bool) uint64 {
	s.Lock()
	changed := s.visible != visible
	s.visible = visible
	version, observers := s.changedLocked(changed)
	s.Unlock()

	notify(observers, version)
	return version
}

// Visible - current toggle state
func (s *Store) Visible() bool {
	s.RLock()
	defer s.RUnlock()
	return s.visible
}

// Get - copy of the row for an MMSI
func (s *Store) Get(mmsi vessel.MMSI) (vessel.Record, error) {
	s.RLock()
	defer s.RUnlock()

	position, ok := s.index[mmsi]
	if !ok {
		return vessel.Record{}, fault.ErrVesselNotFound
	}
	return s.rows[position], nil
}

// Records - copy of all rows in table order
func (s *Store) Records() []vessel.Record {
	s.RLock()
	defer s.RUnlock()

	records := make([]vessel.Record, len(s.rows))
	copy(records, s.rows)
	return records
}

// Len - number of rows
func (s *Store) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.rows)
}

// Version - incremented on every visible change
func (s *Store) Version() uint64 {
	s.RLock()
	defer s.RUnlock()
	return s.version
}

// CheckIndex - verify that the index and the table agree
func (s *Store) CheckIndex() error {
	s.RLock()
	defer s.RUnlock()

	if len(s.index) != len(s.rows) {
		return fault.ErrIndexInconsistent
	}
	for i := range s.rows {
		position, ok := s.index[s.rows[i].MMSI]
		if !ok || position != i {
			return fault.ErrIndexInconsistent
		}
	}
	return nil
}

// bump the version if something changed, lock must be held
func (s *Store) changedLocked(changed bool) (uint64, []Observer) {
	if !changed {
		return s.version, nil
	}
	s.version += 1
	if 0 == len(s.observers) {
		return s.version, nil
	}
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	return s.version, observers
}

func notify(observers []Observer, version uint64) {
	for _, o := range observers {
		o(version)
	}
}
