// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package positions

import (
	"github.com/datastories-org/aisstream/vessel"
)

// Columns - the table in column form, every column has one entry per row
type Columns struct {
	MMSI          []vessel.MMSI     `json:"mmsi"`
	Timestamp     []int64           `json:"ts"`
	Longitude     []float64         `json:"lon"`
	Latitude      []float64         `json:"lat"`
	MercatorX     []float64         `json:"lon_merc"`
	MercatorY     []float64         `json:"lat_merc"`
	Movement      []vessel.Movement `json:"moving"`
	Heading       []float64         `json:"heading"`
	HeadingUp     []float64         `json:"heading_up"`
	HeadingAcross []float64         `json:"heading_across"`
	Name          []string          `json:"vessel_name"`
	Type          []string          `json:"vessel_type"`
}

// Snapshot - consistent view for the presentation layer
type Snapshot struct {
	Data     Columns `json:"data"`
	Selected []int   `json:"selected"`
	Visible  bool    `json:"visible"`
	Version  uint64  `json:"version"`
}

// Snapshot - columns, selection, visibility and version read under one lock
func (s *Store) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()

	selected := make([]int, len(s.selected))
	copy(selected, s.selected)

	return Snapshot{
		Data:     columnsOf(s.rows),
		Selected: selected,
		Visible:  s.visible,
		Version:  s.version,
	}
}

// Columns - just the table data
func (s *Store) Columns() Columns {
	s.RLock()
	defer s.RUnlock()
	return columnsOf(s.rows)
}

// Len - number of rows
func (c *Columns) Len() int {
	return len(c.MMSI)
}

func columnsOf(rows []vessel.Record) Columns {
	n := len(rows)
	c := Columns{
		MMSI:          make([]vessel.MMSI, n),
		Timestamp:     make([]int64, n),
		Longitude:     make([]float64, n),
		Latitude:      make([]float64, n),
		MercatorX:     make([]float64, n),
		MercatorY:     make([]float64, n),
		Movement:      make([]vessel.Movement, n),
		Heading:       make([]float64, n),
		HeadingUp:     make([]float64, n),
		HeadingAcross: make([]float64, n),
		Name:          make([]string, n),
		Type:          make([]string, n),
	}
	for i := range rows {
		r := &rows[i]
		c.MMSI[i] = r.MMSI
		c.Timestamp[i] = r.Timestamp
		c.Longitude[i] = r.Longitude
		c.Latitude[i] = r.Latitude
		c.MercatorX[i] = r.MercatorX
		c.MercatorY[i] = r.MercatorY
		c.Movement[i] = r.Movement
		c.Heading[i] = r.Heading
		c.HeadingUp[i] = r.HeadingUp
		c.HeadingAcross[i] = r.HeadingAcross
		c.Name[i] = r.Name
		c.Type[i] = r.Type
	}
	return c
}
