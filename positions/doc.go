// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package positions - the live table of current vessel state
//
// rows are kept in arrival order in a slice together with an index from
// MMSI to row position; the presentation layer refers to rows by
// position, so every compaction also remaps the held selection
//
// stream updates are applied by a single Writer draining a message
// queue; the bootstrap loader and the eviction sweep call the store
// directly, all under the same lock
package positions
