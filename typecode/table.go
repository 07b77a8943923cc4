// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package typecode - vessel type code to description mapping
//
// the table is filled by the snapshot loader and read by the stream
// decoder, so every access goes through the cache's own lock
package typecode

import (
	"strings"

	cache "github.com/patrickmn/go-cache"
)

// Table - code → description
type Table struct {
	cache *cache.Cache
}

// New - empty table, entries never expire
func New() *Table {
	return &Table{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Load - add or replace all entries of a mapping
func (t *Table) Load(mapping map[string]string) int {
	for code, description := range mapping {
		t.Set(code, description)
	}
	return len(mapping)
}

// Set - add or replace one entry
func (t *Table) Set(code string, description string) {
	t.cache.Set(strings.TrimSpace(code), description, cache.NoExpiration)
}

// Lookup - full description of a code
func (t *Table) Lookup(code string) (string, bool) {
	obj, found := t.cache.Get(strings.TrimSpace(code))
	if !found {
		return "", false
	}
	return obj.(string), true
}

// Describe - first comma separated part of the description
//
// unknown codes give an empty string
func (t *Table) Describe(code string) string {
	description, found := t.Lookup(code)
	if !found {
		return ""
	}
	return strings.SplitN(description, ",", 2)[0]
}

// Len - number of entries
func (t *Table) Len() int {
	return t.cache.ItemCount()
}
