// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/datastories-org/aisstream/fault"
)

// common errors - keep in alphabetic order
const (
	ErrConflictingSelection = fault.InvalidError("only one of positions, mmsi or clear may be given")
	ErrMissingDirectory     = fault.InvalidError("directory is required")
	ErrMissingFile          = fault.InvalidError("file is required")
	ErrMissingMMSI          = fault.InvalidError("mmsi is required")
	ErrMissingVisible       = fault.InvalidError("visible is required")
)
